package gateway

import "strings"

const (
	// KeySeparator joins a collection name and a record id.
	KeySeparator = ":"
	// IndexSuffix names the per-collection id set.
	IndexSuffix = "index"
)

// RecordKey returns the storage key for a record: "<collection>:<id>".
func RecordKey(collection, id string) string {
	return collection + KeySeparator + id
}

// IndexKey returns the key of the id set for a collection: "<collection>:index".
func IndexKey(collection string) string {
	return collection + KeySeparator + IndexSuffix
}

// reservedID reports whether a record with this id would land on an index
// key. "index" hits its own collection's set; "b:index" in collection "a"
// hits the set of collection "a:b".
func reservedID(id string) bool {
	return id == IndexSuffix || strings.HasSuffix(id, KeySeparator+IndexSuffix)
}
