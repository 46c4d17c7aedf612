package datastructure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Settlement model info
// @Description a settlement (city, village, ...) as listed in the raw data of one partition.
type Settlement struct {
	Name string `json:"name" msgpack:"name"` // canonical settlement name
}

func NewSettlement(name string) Settlement {
	return Settlement{Name: name}
}

// SearchHit is one approximate match of a query inside a partition. Position is the
// index of Record in the partition record list.
type SearchHit struct {
	Record   Settlement
	Position int
	Score    float64
}

func NewSearchHit(record Settlement, position int, score float64) SearchHit {
	return SearchHit{
		Record:   record,
		Position: position,
		Score:    score,
	}
}

var (
	ErrNotAList     = errors.New("settlement data must be a JSON array")
	ErrMissingName  = errors.New("settlement object has no string name field")
	ErrInvalidEntry = errors.New("settlement entry must be an object or a string")
)

// DecodeSettlements decodes a raw partition data file. Accepts a JSON array of
// objects having a string "name" field or a JSON array of bare strings. Order is kept.
func DecodeSettlements(data []byte) ([]Settlement, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAList
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAList, err)
	}

	settlements := make([]Settlement, 0, len(entries))
	for i, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 {
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidEntry)
		}

		switch entry[0] {
		case '"':
			var name string
			if err := json.Unmarshal(entry, &name); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidEntry)
			}
			if name == "" {
				return nil, fmt.Errorf("entry %d: %w", i, ErrMissingName)
			}
			settlements = append(settlements, NewSettlement(name))
		case '{':
			var obj struct {
				Name *string `json:"name"`
			}
			if err := json.Unmarshal(entry, &obj); err != nil || obj.Name == nil || *obj.Name == "" {
				return nil, fmt.Errorf("entry %d: %w", i, ErrMissingName)
			}
			settlements = append(settlements, NewSettlement(*obj.Name))
		default:
			return nil, fmt.Errorf("entry %d: %w", i, ErrInvalidEntry)
		}
	}
	return settlements, nil
}

// Names returns the name field of every settlement, in order.
func Names(settlements []Settlement) []string {
	names := make([]string, len(settlements))
	for i, s := range settlements {
		names[i] = s.Name
	}
	return names
}
