package domain

import "errors"

// Kind classifies gateway failures so the HTTP layer can pick a status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInvalidFormat
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFound"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindStore:
		return "StoreError"
	default:
		return "UnknownError"
	}
}

var (
	// ErrKeyNotFound is returned by KVStore.Get when the key holds no value.
	ErrKeyNotFound = errors.New("key not found")

	ErrMissingID      = errors.New(`el registro debe tener un campo "id"`)
	ErrInvalidID      = errors.New(`el campo "id" debe ser texto o número`)
	ErrRecordNotFound = errors.New("registro no encontrado")
)

// Error carries a Kind alongside the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and operation name.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Error returns the underlying message unchanged; it is what clients see.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StoreErr wraps a backend failure for op. The backend message is kept
// as-is since it is passed through to clients.
func StoreErr(op string, err error) error {
	return NewError(KindStore, op, err)
}
