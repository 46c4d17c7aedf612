package fuzzy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var names = []string{"Pezinok", "Čierna nad Tisou", "Čierna", "Čierne", "Čierna Lehota"}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Čierna nad Tisou", "cierna nad tisou"},
		{"  Banská-Bystrica ", "banska bystrica"},
		{"ĽUBOTÍN", "lubotin"},
		{"Štúrovo", "sturovo"},
		{"Nové  Zámky (okres)", "nove zamky okres"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "normalize %q", tt.in)
	}
	assert.Equal(t, []string{"cierna", "nad", "tisou"}, Tokenize("Čierna nad Tisou"))
}

func TestScore(t *testing.T) {
	opts := DefaultOptions()
	score := func(q, k string) float64 {
		return opts.Score([]rune(Normalize(q)), []rune(Normalize(k)))
	}

	assert.Equal(t, 0.0, score("Čierna", "Čierna"))
	assert.Equal(t, 0.0, score("cierna", "ČIERNA"))
	assert.InDelta(t, 0.1333, score("Čierna", "Čierne"), 1e-3)
	assert.InDelta(t, 0.0625, score("Čierna", "Čierna nad Tisou"), 1e-3)
	assert.InDelta(t, 0.0967, score("Čiera", "Čierna"), 1e-3)
	assert.InDelta(t, 0.1767, score("Čiera", "Čierne"), 1e-3)
	assert.InDelta(t, 0.1488, score("Čiera", "Čierna nad Tisou"), 1e-3)
	assert.Greater(t, score("qqq", "Pezinok"), 0.8)

	// later occurrences score worse than earlier ones
	assert.Less(t, score("nad", "Nad Ipľom"), score("nad", "Čierna nad Tisou"))
}

func TestSemiGlobalDistance(t *testing.T) {
	opts := DefaultOptions()

	d, start := opts.semiGlobalDistance([]rune("tisou"), []rune("cierna nad tisou"))
	assert.Equal(t, 0.0, d)
	assert.Equal(t, 11, start)

	d, start = opts.semiGlobalDistance([]rune("abc"), []rune(""))
	assert.Equal(t, 3.0, d)
	assert.Equal(t, 0, start)

	// a left out rune is cheaper than a wrong one
	d, _ = opts.semiGlobalDistance([]rune("ciera"), []rune("cierna"))
	assert.Equal(t, 0.5, d)
	d, _ = opts.semiGlobalDistance([]rune("cierna"), []rune("cierne"))
	assert.Equal(t, 1.0, d)
}

func TestSearch(t *testing.T) {
	e := NewEngine(DefaultOptions())
	idx, err := e.BuildIndex(names)
	require.NoError(t, err)
	require.Equal(t, len(names), idx.Len())

	t.Run("exact query ranks exact name first", func(t *testing.T) {
		got, err := e.Search(idx, "Čierna", 0.3)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, Match{Position: 2, Score: 0}, got[0])
		assert.Equal(t, []int{2, 4, 1, 3}, positions(got))
	})

	t.Run("threshold excludes worse matches", func(t *testing.T) {
		got, err := e.Search(idx, "Čierna", 0.1)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 1}, positions(got))
	})

	t.Run("typo", func(t *testing.T) {
		got, err := e.Search(idx, "Čiera", 0.3)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 1, 3}, positions(got))

		got, err = e.Search(idx, "Čiera", 0.1)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, positions(got))
	})

	t.Run("equal scores keep index order", func(t *testing.T) {
		dup, err := e.BuildIndex([]string{"Čierne", "Čierna", "Čierne"})
		require.NoError(t, err)
		got, err := e.Search(dup, "Čierne", 0.3)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 1}, positions(got))
	})

	t.Run("prefix", func(t *testing.T) {
		got, err := e.Search(idx, "pezi", 0.3)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Position)
	})

	t.Run("two typos on a long token", func(t *testing.T) {
		got, err := e.Search(idx, "Pezinek", 0.3)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, positions(got))
	})

	t.Run("blank query", func(t *testing.T) {
		got, err := e.Search(idx, "  ", 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("larger threshold never drops a match", func(t *testing.T) {
		prev := map[int]bool{}
		for _, th := range []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 1} {
			got, err := e.Search(idx, "Čierna", th)
			require.NoError(t, err)
			cur := map[int]bool{}
			for _, m := range got {
				assert.LessOrEqual(t, m.Score, th)
				cur[m.Position] = true
			}
			for pos := range prev {
				assert.True(t, cur[pos], "position %d dropped at threshold %v", pos, th)
			}
			prev = cur
		}
	})
}

func TestSearchEmptyIndex(t *testing.T) {
	e := NewEngine(DefaultOptions())
	idx, err := e.BuildIndex(nil)
	require.NoError(t, err)

	got, err := e.Search(idx, "Pezinok", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSingleRuneQueryMatchesWholeTermsOnly(t *testing.T) {
	e := NewEngine(DefaultOptions())
	idx, err := e.BuildIndex([]string{"A", "Bratislava", "Pezinok"})
	require.NoError(t, err)

	got, err := e.Search(idx, "a", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, positions(got))

	got, err = e.Search(idx, "b", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEveryNameFindsItself(t *testing.T) {
	e := NewEngine(DefaultOptions())
	idx, err := e.BuildIndex(names)
	require.NoError(t, err)

	for pos, name := range names {
		got, err := e.Search(idx, name, 0)
		require.NoError(t, err)
		assert.Contains(t, positions(got), pos, name)
	}
}

func TestEncodeDecode(t *testing.T) {
	e := NewEngine(DefaultOptions())
	idx, err := e.BuildIndex(names)
	require.NoError(t, err)

	blob, err := Encode(idx)
	require.NoError(t, err)
	assert.Equal(t, "SIDX", string(blob[:4]))

	again, err := e.BuildIndex(names)
	require.NoError(t, err)
	blob2, err := Encode(again)
	require.NoError(t, err)
	assert.Equal(t, blob, blob2, "equal input must encode to equal bytes")

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, idx.Keys, decoded.Keys)
	assert.Equal(t, Fingerprint(names), decoded.Fingerprint)

	want, err := e.Search(idx, "Čiera", 0.3)
	require.NoError(t, err)
	got, err := e.Search(decoded, "Čiera", 0.3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCodecInit(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotNil(t, mustEncoder())
		assert.NotNil(t, mustDecoder())
	})
	assert.NotNil(t, encoder)
	assert.NotNil(t, decoder)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	e := NewEngine(DefaultOptions())

	_, err := Decode([]byte("not an index"))
	assert.True(t, errors.Is(err, ErrCorruptIndex))

	_, err = Decode(append([]byte("SIDX"), 1, 2, 3))
	assert.True(t, errors.Is(err, ErrCorruptIndex))

	idx, err := e.BuildIndex(names)
	require.NoError(t, err)
	idx.Version = FormatVersion + 1
	blob, err := Encode(idx)
	require.NoError(t, err)
	_, err = Decode(blob)
	assert.True(t, errors.Is(err, ErrVersionMismatch))

	idx, err = e.BuildIndex(names)
	require.NoError(t, err)
	idx.Postings = idx.Postings[:1]
	blob, err = Encode(idx)
	require.NoError(t, err)
	_, err = Decode(blob)
	assert.True(t, errors.Is(err, ErrCorruptIndex))
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint(names), Fingerprint(append([]string{}, names...)))
	assert.NotEqual(t, Fingerprint([]string{"ab", "c"}), Fingerprint([]string{"a", "bc"}))
	assert.NotEqual(t, Fingerprint([]string{"a", "b"}), Fingerprint([]string{"b", "a"}))
}

func positions(ms []Match) []int {
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Position)
	}
	return out
}
