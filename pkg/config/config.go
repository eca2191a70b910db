// Package config parses command line flags and environment variables.
package config

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/adfharrison1/go-kvgate/pkg/storage"
)

// Config holds every runtime setting. Each flag can also be set through
// the environment variable named in its env tag.
type Config struct {
	Host string `help:"Interface to listen on (empty for all)." env:"KVGATE_HOST" default:""`
	Port string `help:"Server port." env:"KVGATE_PORT" default:"3000"`

	Backend       string `help:"Store backend: redis, memory, bolt or sqlite." enum:"redis,memory,bolt,sqlite" env:"KVGATE_BACKEND" default:"redis"`
	RedisAddr     string `name:"redis-addr" help:"Redis address (host:port)." env:"KVGATE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `name:"redis-password" help:"Redis password." env:"KVGATE_REDIS_PASSWORD" default:""`
	RedisDB       int    `name:"redis-db" help:"Redis database number." env:"KVGATE_REDIS_DB" default:"0"`

	DataDir        string        `name:"data-dir" help:"Directory for bolt and sqlite files." env:"KVGATE_DATA_DIR" default:"data"`
	SnapshotFile   string        `name:"snapshot-file" help:"Snapshot file for the memory backend (empty disables persistence)." env:"KVGATE_SNAPSHOT_FILE" default:""`
	BackgroundSave time.Duration `name:"background-save" help:"Memory backend snapshot interval (e.g. 5m, 30s). 0 saves only on shutdown." env:"KVGATE_BACKGROUND_SAVE" default:"0s"`
	WAL            bool          `name:"wal" help:"Log memory backend writes next to the snapshot file so they survive a crash." env:"KVGATE_WAL" default:"false"`
	WALSync        bool          `name:"wal-sync" help:"Fsync the WAL after every write." env:"KVGATE_WAL_SYNC" default:"false"`

	SeedFile        string        `name:"seed-file" help:"JSON dataset loaded by POST /seed." env:"KVGATE_SEED_FILE" default:"data/tecnomega.json"`
	MaxBody         int64         `name:"max-body" help:"Maximum request body size in bytes." env:"KVGATE_MAX_BODY" default:"1048576"`
	ShutdownTimeout time.Duration `name:"shutdown-timeout" help:"Grace period for in-flight requests on shutdown." env:"KVGATE_SHUTDOWN_TIMEOUT" default:"30s"`
}

// Options controls how Parse reports errors and help output
type Options struct {
	Name   string
	Exit   func(int)
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultOptions returns options that write to the process stdio and exit
// the process on --help or parse errors
func DefaultOptions() *Options {
	return &Options{
		Name:   "go-kvgate",
		Exit:   os.Exit,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Parse builds a Config from args (without the program name) and the
// environment.
//
// We use kong.New instead of kong.Parse so tests can pass their own args.
func Parse(args []string, opts *Options) (*Config, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var cfg Config
	parser, err := kong.New(&cfg,
		kong.Name(opts.Name),
		kong.Description("HTTP gateway that stores JSON records of arbitrary collections in a key-value store."),
		kong.Exit(opts.Exit),
		kong.Writers(opts.Stdout, opts.Stderr),
	)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Storage returns the backend settings
func (c *Config) Storage() storage.Config {
	return storage.Config{
		Backend:        c.Backend,
		RedisAddr:      c.RedisAddr,
		RedisPassword:  c.RedisPassword,
		RedisDB:        c.RedisDB,
		DataDir:        c.DataDir,
		SnapshotFile:   c.SnapshotFile,
		BackgroundSave: c.BackgroundSave,
		WAL:            c.WAL,
		WALSync:        c.WALSync,
	}
}
