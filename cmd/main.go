package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/lintang-b-s/settlement-search/pkg/di"
	"github.com/lintang-b-s/settlement-search/pkg/di/config"
	"github.com/lintang-b-s/settlement-search/pkg/searcher"
)

// kindsFlag. repeatable -kinds country=kind[+kind...]
type kindsFlag map[catalog.Country][]catalog.Kind

func (f kindsFlag) String() string {
	parts := make([]string, 0, len(f))
	for c, ks := range f {
		names := make([]string, len(ks))
		for i, k := range ks {
			names[i] = string(k)
		}
		parts = append(parts, string(c)+"="+strings.Join(names, "+"))
	}
	return strings.Join(parts, ",")
}

func (f kindsFlag) Set(v string) error {
	country, kinds, ok := strings.Cut(v, "=")
	if !ok || country == "" || kinds == "" {
		return fmt.Errorf("expected country=kind[+kind...], got %q", v)
	}
	for _, k := range strings.Split(kinds, "+") {
		f[catalog.Country(country)] = append(f[catalog.Country(country)], catalog.Kind(k))
	}
	return nil
}

// preferFlag. repeatable -prefer kind=value
type preferFlag map[catalog.Kind]float64

func (f preferFlag) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, string(k)+"="+strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

func (f preferFlag) Set(v string) error {
	kind, value, ok := strings.Cut(v, "=")
	if !ok || kind == "" {
		return fmt.Errorf("expected kind=value, got %q", v)
	}
	adj, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("score adjustment of %s: %w", kind, err)
	}
	f[catalog.Kind(kind)] = adj
	return nil
}

var (
	configPath = flag.String("config", "", "config file, config.yaml in the working directory when empty")
	query      = flag.String("q", "", "settlement name to search for")
	countries  = flag.String("countries", "", "comma separated countries to search, all when empty")
	limit      = flag.Int("limit", -1, "maximum number of names, all matches when negative")
	threshold  = flag.Float64("threshold", -1, "maximum match score in [0, 1], configured default when negative")
	verbose    = flag.Bool("v", false, "print partition & scores of every match")
	kinds      = kindsFlag{}
	prefer     = preferFlag{}
)

func main() {
	flag.Var(kinds, "kinds", "settlement kinds of a country, country=kind[+kind...], repeatable")
	flag.Var(prefer, "prefer", "score adjustment of a settlement kind, kind=value, repeatable")
	flag.Parse()

	s, cleanup, err := di.InitializeSearcher(config.Path(*configPath))
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	req := searcher.Request{
		Query:           *query,
		SettlementKinds: kinds,
		ScoreAdjustment: prefer,
	}
	if *countries != "" {
		for _, c := range strings.Split(*countries, ",") {
			req.Countries = append(req.Countries, catalog.Country(strings.TrimSpace(c)))
		}
	}
	if *limit >= 0 {
		req.Limit = limit
	}
	if *threshold >= 0 {
		req.Threshold = threshold
	}

	hits, err := s.SearchHits(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cleanup()
		os.Exit(1)
	}

	for _, hit := range hits {
		if *verbose {
			fmt.Printf("%-32s %-18s score=%.4f adjusted=%.4f\n", hit.Record.Name, hit.Partition, hit.Score, hit.AdjustedScore)
			continue
		}
		fmt.Println(hit.Record.Name)
	}
}
