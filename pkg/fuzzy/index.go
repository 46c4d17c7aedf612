package fuzzy

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/blevesearch/vellum"
	"github.com/cespare/xxhash/v2"
	"github.com/lintang-b-s/settlement-search/pkg/compress"
)

const FormatVersion = 1

var (
	ErrCorruptIndex    = errors.New("corrupt index")
	ErrVersionMismatch = errors.New("index format version mismatch")
)

// Index. searchable form of one ordered list of settlement names.
// Keys[i] is the normalized name of the record at position i, Terms maps every token
// of every key to its term ordinal and Postings[ordinal] holds the gap encoded positions
// of the records containing that token.
type Index struct {
	Version     int      `msgpack:"version"`
	Keys        []string `msgpack:"keys"`
	Terms       []byte   `msgpack:"terms"`
	Postings    [][]byte `msgpack:"postings"`
	Fingerprint uint64   `msgpack:"fingerprint"`

	once   sync.Once
	fst    *vellum.FST
	fstErr error
}

// Len. number of indexed records.
func (idx *Index) Len() int {
	return len(idx.Keys)
}

// Fingerprint hashes the original names in order. an index and a record list
// belong together only if their fingerprints are equal.
func Fingerprint(names []string) uint64 {
	d := xxhash.New()
	for _, name := range names {
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// BuildIndex builds the index of names. position i of the index refers to names[i].
func (e *Engine) BuildIndex(names []string) (*Index, error) {
	keys := make([]string, len(names))
	termPositions := make(map[string][]int)
	for pos, name := range names {
		keys[pos] = Normalize(name)

		seen := make(map[string]struct{})
		for _, tok := range Tokenize(name) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			// positions are appended in increasing order
			termPositions[tok] = append(termPositions[tok], pos)
		}
	}

	terms := make([]string, 0, len(termPositions))
	for term := range termPositions {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("create term fst: %w", err)
	}
	postings := make([][]byte, len(terms))
	for ord, term := range terms {
		if err := builder.Insert([]byte(term), uint64(ord)); err != nil {
			return nil, fmt.Errorf("insert term %q: %w", term, err)
		}
		postings[ord] = compress.EncodePostingsList(termPositions[term])
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("close term fst: %w", err)
	}

	return &Index{
		Version:     FormatVersion,
		Keys:        keys,
		Terms:       buf.Bytes(),
		Postings:    postings,
		Fingerprint: Fingerprint(names),
	}, nil
}

// termFST loads the term fst once and checks that it agrees with the postings.
func (idx *Index) termFST() (*vellum.FST, error) {
	idx.once.Do(func() {
		fst, err := vellum.Load(idx.Terms)
		if err != nil {
			idx.fstErr = fmt.Errorf("%w: load term fst: %v", ErrCorruptIndex, err)
			return
		}
		if fst.Len() != len(idx.Postings) {
			idx.fstErr = fmt.Errorf("%w: %d terms but %d postings lists", ErrCorruptIndex, fst.Len(), len(idx.Postings))
			return
		}
		idx.fst = fst
	})
	return idx.fst, idx.fstErr
}

// Validate checks the internal consistency of a decoded index.
func (idx *Index) Validate() error {
	if idx.Version != FormatVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, idx.Version, FormatVersion)
	}
	_, err := idx.termFST()
	return err
}

func (idx *Index) positions(ord uint64) ([]int, error) {
	if ord >= uint64(len(idx.Postings)) {
		return nil, fmt.Errorf("%w: term ordinal %d out of range", ErrCorruptIndex, ord)
	}
	positions := compress.DecodePostingsList(idx.Postings[ord])
	for _, pos := range positions {
		if pos < 0 || pos >= len(idx.Keys) {
			return nil, fmt.Errorf("%w: record position %d out of range", ErrCorruptIndex, pos)
		}
	}
	return positions, nil
}
