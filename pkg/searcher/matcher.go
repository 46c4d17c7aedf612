package searcher

import (
	"github.com/lintang-b-s/settlement-search/pkg"
	"github.com/lintang-b-s/settlement-search/pkg/datastructure"
	"github.com/lintang-b-s/settlement-search/pkg/fuzzy"
	"github.com/lintang-b-s/settlement-search/pkg/loader"
)

// Matcher answers queries against one loaded partition.
type Matcher struct {
	engine    *fuzzy.Engine
	partition *loader.LoadedPartition
}

func NewMatcher(engine *fuzzy.Engine, partition *loader.LoadedPartition) *Matcher {
	return &Matcher{
		engine:    engine,
		partition: partition,
	}
}

// Search returns the records of the partition whose score against query is at most threshold,
// best first. 0 is an exact match.
func (m *Matcher) Search(query string, threshold float64) ([]datastructure.SearchHit, error) {
	matches, err := m.engine.Search(m.partition.Index, query, threshold)
	if err != nil {
		return nil, pkg.WrapErrorf(err, pkg.ErrPartitionUnavailable, "partition %s", m.partition.ID)
	}

	hits := make([]datastructure.SearchHit, 0, len(matches))
	for _, match := range matches {
		if match.Position >= len(m.partition.Records) {
			return nil, pkg.NewErrorf(pkg.ErrPartitionUnavailable, "partition %s: index refers to record %d of %d",
				m.partition.ID, match.Position, len(m.partition.Records))
		}
		hits = append(hits, datastructure.NewSearchHit(m.partition.Records[match.Position], match.Position, match.Score))
	}
	return hits, nil
}
