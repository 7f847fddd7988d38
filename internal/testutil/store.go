// Package testutil provides test helpers for building in-memory ledger
// stores, creating fixtures, and making assertions.
package testutil

import (
	"fintrack/internal/seed"
	"fintrack/internal/store"
)

// NewTestStore creates a Store seeded with the default accounts, categories
// and smart keywords and no persister, so tests run fully in memory.
func NewTestStore() *store.Store {
	return store.New(store.State{
		Accounts:      seed.Accounts(),
		Categories:    seed.Categories(),
		SmartKeywords: seed.SmartKeywords(),
	}, nil)
}

// NewEmptyStore creates a Store with no seeded collections.
func NewEmptyStore() *store.Store {
	return store.New(store.State{}, nil)
}
