// Package storage persists ledger collections as JSON documents in a
// single key-value table, one row per collection. The store hands full
// collections to SaveCollection after every mutation; Load rebuilds the
// initial state at startup, seeding defaults for collections that have
// never been written.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/seed"
	"fintrack/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionRecord is one persisted collection: its name and the JSON
// encoding of the full slice.
type collectionRecord struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (collectionRecord) TableName() string {
	return "collections"
}

// Manager handles database operations for the persistence adapter.
type Manager struct {
	db *gorm.DB
}

// NewManager opens the configured database and ensures the collections
// table exists.
func NewManager(cfg *config.Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	m := &Manager{db: db}
	if err := m.migrate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewManagerWithDB wraps an already-open database. Used by tests.
func NewManagerWithDB(db *gorm.DB) (*Manager, error) {
	m := &Manager{db: db}
	if err := m.migrate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) migrate() error {
	if err := m.db.AutoMigrate(&collectionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate collections table: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the underlying database connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveCollection upserts the JSON encoding of a full collection under its
// name. Implements store.Persister.
func (m *Manager) SaveCollection(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	record := collectionRecord{Name: name, Data: data, UpdatedAt: time.Now()}
	err = m.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// Load reads every persisted collection and assembles the initial ledger
// state. Collections that were never written, or whose stored JSON no
// longer decodes, fall back to their seed defaults (or empty). Seed smart
// keywords are merged in by id so new defaults appear without clobbering
// user additions. Transactions referencing the retired cash account id are
// reassigned to a live account.
func (m *Manager) Load() (store.State, error) {
	var records []collectionRecord
	if err := m.db.Find(&records).Error; err != nil {
		return store.State{}, fmt.Errorf("failed to read collections: %w", err)
	}

	raw := make(map[string][]byte, len(records))
	for _, r := range records {
		raw[r.Name] = r.Data
	}

	st := store.State{
		Accounts:          loadCollection(raw, store.ColAccounts, seed.Accounts()),
		Categories:        loadCollection(raw, store.ColCategories, seed.Categories()),
		Transactions:      loadCollection[models.Transaction](raw, store.ColTransactions, nil),
		Budgets:           loadCollection[models.Budget](raw, store.ColBudgets, nil),
		RecurringRules:    loadCollection[models.RecurringRule](raw, store.ColRecurringRules, nil),
		SavingsGoals:      loadCollection[models.SavingsGoal](raw, store.ColSavingsGoals, nil),
		GoalContributions: loadCollection[models.GoalContribution](raw, store.ColGoalContributions, nil),
		SmartKeywords:     loadCollection(raw, store.ColSmartKeywords, seed.SmartKeywords()),
	}

	st.SmartKeywords = mergeSeedKeywords(st.SmartKeywords)
	migrateLegacyAccount(&st)

	return st, nil
}

// loadCollection decodes one stored collection, falling back to the given
// default when the record is absent or no longer decodes.
func loadCollection[T any](raw map[string][]byte, name string, fallback []T) []T {
	data, ok := raw[name]
	if !ok {
		return fallback
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Get().Warnw("failed to decode stored collection, using defaults",
			"collection", name, "error", err)
		return fallback
	}
	return out
}

// mergeSeedKeywords appends any seed keyword whose id is not already
// present, preserving stored entries untouched.
func mergeSeedKeywords(stored []models.SmartKeyword) []models.SmartKeyword {
	present := make(map[string]bool, len(stored))
	for _, kw := range stored {
		present[kw.ID] = true
	}
	for _, kw := range seed.SmartKeywords() {
		if !present[kw.ID] {
			stored = append(stored, kw)
		}
	}
	return stored
}

// migrateLegacyAccount rewrites transactions that still reference the
// retired default cash account, pointing them at the first bank-type
// account, or the first account of any type if no bank account exists.
func migrateLegacyAccount(st *store.State) {
	replacement := ""
	for _, a := range st.Accounts {
		if a.Type == models.AccountTypeBank {
			replacement = a.ID
			break
		}
	}
	if replacement == "" && len(st.Accounts) > 0 {
		replacement = st.Accounts[0].ID
	}
	if replacement == "" {
		return
	}

	migrated := 0
	for i := range st.Transactions {
		tx := &st.Transactions[i]
		if tx.AccountID == seed.LegacyCashAccountID {
			tx.AccountID = replacement
			migrated++
		}
		if tx.ToAccountID == seed.LegacyCashAccountID {
			tx.ToAccountID = replacement
			migrated++
		}
	}
	if migrated > 0 {
		logger.Get().Infow("migrated transactions off retired cash account",
			"count", migrated, "replacement", replacement)
	}
}
