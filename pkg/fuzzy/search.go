package fuzzy

import (
	"errors"
	"fmt"
	stdregexp "regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
	"github.com/blevesearch/vellum/regexp"
)

// Match. position of a record in the searched index together with its score.
type Match struct {
	Position int
	Score    float64
}

// Engine builds and searches indexes. An Engine is safe for concurrent use.
type Engine struct {
	opts Options

	// building a levenshtein automaton builder is expensive, keep one per edit distance
	lev [3]func() (*levenshtein.LevenshteinAutomatonBuilder, error)
}

func NewEngine(opts Options) *Engine {
	e := &Engine{opts: opts}
	for d := range e.lev {
		distance := uint8(d)
		e.lev[d] = sync.OnceValues(func() (*levenshtein.LevenshteinAutomatonBuilder, error) {
			return levenshtein.NewLevenshteinAutomatonBuilder(distance, false)
		})
	}
	return e
}

func (e *Engine) Options() Options {
	return e.opts
}

// Search scores every candidate record of idx against query and returns the ones whose
// score is at most threshold, ordered by score then by position.
// candidates don't depend on threshold, so a larger threshold never drops a match.
func (e *Engine) Search(idx *Index, query string, threshold float64) ([]Match, error) {
	matches := make([]Match, 0)
	q := Normalize(query)
	if q == "" || idx.Len() == 0 {
		return matches, nil
	}

	fst, err := idx.termFST()
	if err != nil {
		return nil, err
	}

	candidates, err := e.candidates(idx, fst, strings.Fields(q))
	if err != nil {
		return nil, err
	}

	qRunes := []rune(q)
	for _, pos := range candidates {
		score := e.opts.Score(qRunes, []rune(idx.Keys[pos]))
		if score <= threshold {
			matches = append(matches, Match{Position: pos, Score: score})
		}
	}

	// candidates are sorted by position, a stable sort keeps that order between equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	return matches, nil
}

// candidates. sorted positions of the records that contain a term matching any query token.
func (e *Engine) candidates(idx *Index, fst *vellum.FST, tokens []string) ([]int, error) {
	ordinals := make(map[uint64]struct{})
	for _, tok := range tokens {
		if err := e.matchTerms(fst, tok, ordinals); err != nil {
			return nil, fmt.Errorf("match token %q: %w", tok, err)
		}
	}

	seen := make(map[int]struct{})
	for ord := range ordinals {
		positions, err := idx.positions(ord)
		if err != nil {
			return nil, err
		}
		for _, pos := range positions {
			seen[pos] = struct{}{}
		}
	}

	result := make([]int, 0, len(seen))
	for pos := range seen {
		result = append(result, pos)
	}
	sort.Ints(result)
	return result, nil
}

// matchTerms adds to ordinals the terms equal to tok, within its edit distance budget
// of tok, or prefixed by tok.
func (e *Engine) matchTerms(fst *vellum.FST, tok string, ordinals map[uint64]struct{}) error {
	ord, exists, err := fst.Get([]byte(tok))
	if err != nil {
		return err
	}
	if exists {
		ordinals[ord] = struct{}{}
	}

	tokLen := utf8.RuneCountInString(tok)

	if d := e.opts.fuzziness(tokLen); d > 0 && int(d) < len(e.lev) {
		lb, err := e.lev[d]()
		if err != nil {
			return err
		}
		dfa, err := lb.BuildDfa(tok, d)
		if err != nil {
			return err
		}
		if err := collect(fst, dfa, ordinals); err != nil {
			return err
		}
	}

	if e.opts.MinPrefixLength > 0 && tokLen >= e.opts.MinPrefixLength {
		re, err := regexp.New(stdregexp.QuoteMeta(tok) + ".*")
		if err != nil {
			return err
		}
		if err := collect(fst, re, ordinals); err != nil {
			return err
		}
	}
	return nil
}

func collect(fst *vellum.FST, aut vellum.Automaton, ordinals map[uint64]struct{}) error {
	itr, err := fst.Search(aut, nil, nil)
	for err == nil {
		_, val := itr.Current()
		ordinals[val] = struct{}{}
		err = itr.Next()
	}
	if errors.Is(err, vellum.ErrIteratorDone) {
		return nil
	}
	return err
}
