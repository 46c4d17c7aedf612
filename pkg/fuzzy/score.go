package fuzzy

// Options tunes candidate generation and scoring of an Engine.
type Options struct {
	// weights of the three score components. they are normalized by their sum so
	// the final score always stays in [0,1].
	ErrorWeight    float64
	CoverageWeight float64
	LocationWeight float64
	// cost of a key rune the query left out. substitutions & extra query runes cost 1.
	OmissionCost float64

	// query tokens with at least this many runes also match every indexed term they prefix.
	MinPrefixLength int
	// query tokens with at least OneEditLength (TwoEditsLength) runes match indexed
	// terms within edit distance 1 (2).
	OneEditLength  int
	TwoEditsLength int
}

func DefaultOptions() Options {
	return Options{
		ErrorWeight:     0.8,
		CoverageWeight:  0.1,
		LocationWeight:  0.1,
		OmissionCost:    0.5,
		MinPrefixLength: 2,
		OneEditLength:   3,
		TwoEditsLength:  5,
	}
}

func (o Options) fuzziness(tokenLen int) uint8 {
	switch {
	case o.TwoEditsLength > 0 && tokenLen >= o.TwoEditsLength:
		return 2
	case o.OneEditLength > 0 && tokenLen >= o.OneEditLength:
		return 1
	default:
		return 0
	}
}

// Score. normalized distance between a normalized query and a normalized key.
// 0 means both are equal, 1 means nothing of the query was found in the key.
//
//	score = we*min(1, edits/|q|) + wc*(1 - |q|/max(|q|,|k|)) + wl*start/|k|
//
// edits is the semi-global edit distance of the query against any substring of the
// key and start is where that substring begins.
func (o Options) Score(query, key []rune) float64 {
	m, n := len(query), len(key)
	if m == 0 {
		if n == 0 {
			return 0
		}
		return 1
	}
	if equalRunes(query, key) {
		return 0
	}

	edits, start := o.semiGlobalDistance(query, key)

	errRatio := edits / float64(m)
	if errRatio > 1 {
		errRatio = 1
	}
	coverage := float64(m) / float64(maxInt(m, n))
	location := 0.0
	if n > 0 {
		location = float64(start) / float64(n)
	}

	total := o.ErrorWeight + o.CoverageWeight + o.LocationWeight
	if total <= 0 {
		return errRatio
	}
	score := (o.ErrorWeight*errRatio + o.CoverageWeight*(1-coverage) + o.LocationWeight*location) / total
	return clamp01(score)
}

// semiGlobalDistance. weighted edit distance between query and the best matching substring of key
// (leading & trailing key runes are free). returns the distance and the start of that substring.
func (o Options) semiGlobalDistance(query, key []rune) (float64, int) {
	m, n := len(query), len(key)

	prev := make([]float64, n+1)
	prevStart := make([]int, n+1)
	curr := make([]float64, n+1)
	currStart := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = 0
		prevStart[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = float64(i)
		currStart[0] = 0
		for j := 1; j <= n; j++ {
			cost := 1.0
			if query[i-1] == key[j-1] {
				cost = 0
			}

			best, start := prev[j-1]+cost, prevStart[j-1] // match / substitution
			if d := prev[j] + 1; d < best {
				// extra query rune
				best, start = d, prevStart[j]
			}
			if d := curr[j-1] + o.OmissionCost; d < best {
				// key rune left out of the query
				best, start = d, currStart[j-1]
			}
			curr[j] = best
			currStart[j] = start
		}
		prev, curr = curr, prev
		prevStart, currStart = currStart, prevStart
	}

	bestDist, bestStart := prev[0], prevStart[0]
	for j := 1; j <= n; j++ {
		if prev[j] < bestDist {
			bestDist, bestStart = prev[j], prevStart[j]
		}
	}
	return bestDist, bestStart
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
