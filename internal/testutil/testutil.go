// Package testutil provides shared helpers for package tests: a temp
// data directory pre-seeded with a small, known catalog.
package testutil

import (
	"strings"
	"testing"

	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/storejson"
)

// Jump builds a valid catalog record with the given essentials. The tier
// is left empty; callers that care set it or derive it.
func Jump(name, location, diff, server string) *model.Record {
	linkSlug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return &model.Record{
		Name:     name,
		Location: []string{location},
		Diff:     diff,
		Server:   server,
		Links:    []string{"https://example.com/" + linkSlug},
	}
}

// SeedCatalog writes the given records as a catalog data file in a fresh
// temp dir and opens a store over it.
func SeedCatalog(t *testing.T, records ...*model.Record) (*catalog.Store, string) {
	t.Helper()
	dataDir := t.TempDir()

	byKey := make(map[string]*model.Record, len(records))
	for _, r := range records {
		byKey[r.Key()] = r
	}
	if err := storejson.Write(dataDir+"/"+catalog.FileName, byKey); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	store, err := catalog.Open(dataDir)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return store, dataDir
}

// SampleJumps is a small catalog exercising every ordered enumeration:
// multiple kingdoms, fractional and elite difficulties, and two servers.
func SampleJumps() []*model.Record {
	return []*model.Record{
		Jump("Cap Skip", "Cap Kingdom", "3/10", "SMO Trickjumping Server"),
		Jump("Sand Clip", "Sand Kingdom", "3.5/10", "SMO Trickjumping Server"),
		Jump("Metro Dive", "Metro Kingdom", "Low Elite", "Database"),
		Jump("Moon Vault", "Moon Kingdom", "Hell Tier", "Database"),
		Jump("Lost Hop", "Lost Kingdom", "Unproven", "SMO Trickjumping Server"),
	}
}
