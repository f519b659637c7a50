package domain

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DateGroup holds the records delivered under one date key.
type DateGroup struct {
	Key     string
	Records []Record
}

// Snapshot is the raw record source: date keys mapped to records, in the order
// the source delivered them. It decodes from and encodes to a JSON object
// without losing key order.
type Snapshot []DateGroup

// Len returns the total number of records across all groups.
func (s Snapshot) Len() int {
	n := 0
	for _, g := range s {
		n += len(g.Records)
	}
	return n
}

// UnmarshalJSON decodes a JSON object, keeping its key order. A repeated key
// keeps its first position and its last value.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	groups := orderedmap.New[string, []Record]()
	if err := groups.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	out := make(Snapshot, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, DateGroup{Key: pair.Key, Records: pair.Value})
	}
	*s = out
	return nil
}

// MarshalJSON encodes the snapshot as a JSON object in group order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	groups := orderedmap.New[string, []Record](orderedmap.WithCapacity[string, []Record](len(s)))
	for _, g := range s {
		records := g.Records
		if records == nil {
			records = []Record{}
		}
		groups.Set(g.Key, records)
	}
	return groups.MarshalJSON()
}
