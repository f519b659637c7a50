package aggregate

import (
	"fmt"

	"github.com/aretw0/cadence/pkg/domain"
)

// Resolve returns the nested record stored under a relationship key.
// Both domain.Record and plain map[string]any values are accepted, since
// decoded JSON produces the latter.
func Resolve(record domain.Record, key string) (domain.Record, bool) {
	if record == nil || key == "" {
		return nil, false
	}
	switch v := record[key].(type) {
	case domain.Record:
		return v, v != nil
	case map[string]any:
		return domain.Record(v), v != nil
	}
	return nil, false
}

// ResolvePath follows a chain of relationship keys. It returns the key that
// could not be resolved when the chain breaks.
func ResolvePath(record domain.Record, keys ...string) (domain.Record, string, bool) {
	current := record
	for _, key := range keys {
		next, ok := Resolve(current, key)
		if !ok {
			return nil, key, false
		}
		current = next
	}
	return current, "", true
}

// displayName reads the Name field of a resolved record as a string.
func displayName(record domain.Record) string {
	switch v := record[domain.FieldName].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
