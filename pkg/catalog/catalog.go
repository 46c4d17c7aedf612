package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
)

type Country string

type Kind string

const (
	Slovakia Country = "slovakia"

	City    Kind = "city"
	Village Kind = "village"
)

var (
	ErrUnknownCountry = errors.New("unknown country")
	ErrUnknownKind    = errors.New("unknown settlement kind")
)

// PartitionID. one independently indexed subset of settlements.
type PartitionID struct {
	Country Country `json:"country"`
	Kind    Kind    `json:"kind"`
}

func NewPartitionID(country Country, kind Kind) PartitionID {
	return PartitionID{Country: country, Kind: kind}
}

func (p PartitionID) String() string {
	return string(p.Country) + "/" + string(p.Kind)
}

// Partition. where the raw records and the index artifact of a partition live.
// both paths are relative to the store root.
type Partition struct {
	ID        PartitionID `json:"id"`
	DataPath  string      `json:"data_path"`
	IndexPath string      `json:"index_path"`
}

func NewPartition(id PartitionID, dataPath, indexPath string) Partition {
	return Partition{ID: id, DataPath: dataPath, IndexPath: indexPath}
}

// Catalog. immutable registry of every known partition.
// countries keep their registration order, kinds keep their order within a country.
type Catalog struct {
	countries  []Country
	kinds      map[Country][]Kind
	partitions map[PartitionID]Partition
	order      map[PartitionID]int
}

// New builds a catalog from partitions. the order of partitions is the catalog order.
func New(partitions []Partition) (*Catalog, error) {
	c := &Catalog{
		kinds:      make(map[Country][]Kind),
		partitions: make(map[PartitionID]Partition, len(partitions)),
		order:      make(map[PartitionID]int, len(partitions)),
	}

	for _, p := range partitions {
		if p.ID.Country == "" || p.ID.Kind == "" {
			return nil, fmt.Errorf("partition %q: country and kind are required", p.ID)
		}
		if p.DataPath == "" || p.IndexPath == "" {
			return nil, fmt.Errorf("partition %s: data and index locations are required", p.ID)
		}
		if _, ok := c.partitions[p.ID]; ok {
			return nil, fmt.Errorf("partition %s registered twice", p.ID)
		}

		if _, ok := c.kinds[p.ID.Country]; !ok {
			c.countries = append(c.countries, p.ID.Country)
		}
		c.kinds[p.ID.Country] = append(c.kinds[p.ID.Country], p.ID.Kind)
		c.order[p.ID] = len(c.order)
		c.partitions[p.ID] = p
	}
	return c, nil
}

// DefaultPartitions. partitions shipped with the repository data directory.
func DefaultPartitions() []Partition {
	return []Partition{
		NewPartition(NewPartitionID(Slovakia, City),
			filepath.Join("data", "slovakia", "cities.json"),
			filepath.Join("indexes", "slovakia", "cities.idx")),
		NewPartition(NewPartitionID(Slovakia, Village),
			filepath.Join("data", "slovakia", "villages.json"),
			filepath.Join("indexes", "slovakia", "villages.idx")),
	}
}

func Default() *Catalog {
	c, err := New(DefaultPartitions())
	if err != nil {
		panic(err)
	}
	return c
}

// Countries returns every country in catalog order.
func (c *Catalog) Countries() []Country {
	return append([]Country(nil), c.countries...)
}

// Kinds returns the kinds valid for country.
func (c *Catalog) Kinds(country Country) ([]Kind, error) {
	kinds, ok := c.kinds[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return append([]Kind(nil), kinds...), nil
}

// HasKind reports whether kind is valid for at least one country.
func (c *Catalog) HasKind(kind Kind) bool {
	for _, kinds := range c.kinds {
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
	}
	return false
}

// Lookup resolves one partition.
func (c *Catalog) Lookup(id PartitionID) (Partition, error) {
	if _, ok := c.kinds[id.Country]; !ok {
		return Partition{}, fmt.Errorf("%w: %q", ErrUnknownCountry, id.Country)
	}
	p, ok := c.partitions[id]
	if !ok {
		return Partition{}, fmt.Errorf("%w: %q is not a kind of %q", ErrUnknownKind, id.Kind, id.Country)
	}
	return p, nil
}

// Partitions returns every partition in catalog order.
func (c *Catalog) Partitions() []Partition {
	out := make([]Partition, len(c.order))
	for id, i := range c.order {
		out[i] = c.partitions[id]
	}
	return out
}

// Order. position of id in the catalog, -1 for unknown partitions.
func (c *Catalog) Order(id PartitionID) int {
	i, ok := c.order[id]
	if !ok {
		return -1
	}
	return i
}

// Resolve expands a selection into partition ids in catalog order.
// no countries selects every country, a country with no kinds selects every kind of
// that country. kinds given for a country that is not selected are rejected.
func (c *Catalog) Resolve(countries []Country, kinds map[Country][]Kind) ([]PartitionID, error) {
	if len(countries) == 0 {
		countries = c.countries
	}

	selected := make(map[Country]bool, len(countries))
	for _, country := range countries {
		if _, ok := c.kinds[country]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
		}
		selected[country] = true
	}
	for country := range kinds {
		if _, ok := c.kinds[country]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
		}
		if !selected[country] {
			return nil, fmt.Errorf("%w: kinds given for %q which is not selected", ErrUnknownCountry, country)
		}
	}

	want := make(map[PartitionID]bool)
	for _, country := range countries {
		requested := kinds[country]
		if len(requested) == 0 {
			requested = c.kinds[country]
		}
		for _, kind := range requested {
			id := NewPartitionID(country, kind)
			if _, ok := c.partitions[id]; !ok {
				return nil, fmt.Errorf("%w: %q is not a kind of %q", ErrUnknownKind, kind, country)
			}
			want[id] = true
		}
	}

	ids := make([]PartitionID, 0, len(want))
	for _, p := range c.Partitions() {
		if want[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}
