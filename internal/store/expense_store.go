package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/receipt-ledger/internal/logger"
	"gitlab.com/yelinaung/receipt-ledger/internal/models"
	"gitlab.com/yelinaung/receipt-ledger/internal/storage"
)

const expenseSnapshotVersion = 2

// ExpenseInput is the payload for creating an expense. The store
// assigns the id.
type ExpenseInput struct {
	MerchantName string
	Date         time.Time
	TotalAmount  decimal.Decimal
	Currency     string
	Category     string
	Items        []models.ReceiptItem
	ImageURLs    []string
	Status       string
	Confidence   float64
}

// ExpenseChanges is a partial update. Nil fields are left untouched.
type ExpenseChanges struct {
	MerchantName *string
	Date         *time.Time
	TotalAmount  *decimal.Decimal
	Currency     *string
	Category     *string
	Items        *[]models.ReceiptItem
	ImageURLs    *[]string
	Status       *string
	Confidence   *float64
}

// persistedExpense carries the deprecated singular image reference next
// to the current list form so old snapshots keep decoding.
type persistedExpense struct {
	models.Expense
	LegacyImageURL string `json:"imageUrl,omitempty"`
}

// expenseEnvelope is the snapshot document. State mirrors the envelope
// the original mobile client persisted, accepted on read only.
type expenseEnvelope struct {
	Version  int                `json:"version"`
	Expenses []persistedExpense `json:"expenses"`
	State    *struct {
		Expenses []persistedExpense `json:"expenses"`
	} `json:"state,omitempty"`
}

// ExpenseStore owns the expense collection. Newest records come first.
type ExpenseStore struct {
	mu       sync.RWMutex
	kv       storage.KV
	expenses []models.Expense
}

// NewExpenseStore creates a store over the given snapshot backend.
// Call Load before use.
func NewExpenseStore(kv storage.KV) *ExpenseStore {
	return &ExpenseStore{kv: kv}
}

// Load rehydrates the collection from durable storage. Legacy records
// bearing only a singular image reference are normalized to a
// one-element list, and a snapshot that needed normalizing is written
// back immediately in the current format.
func (s *ExpenseStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, storage.ExpenseSnapshotKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		s.expenses = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load expense snapshot: %w", err)
	}

	var envelope expenseEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to parse expense snapshot: %w", err)
	}

	persisted := envelope.Expenses
	migrated := false
	if len(persisted) == 0 && envelope.State != nil {
		persisted = envelope.State.Expenses
		migrated = true
	}

	expenses := make([]models.Expense, 0, len(persisted))
	for _, p := range persisted {
		e := p.Expense
		if len(e.ImageURLs) == 0 && p.LegacyImageURL != "" {
			e.ImageURLs = []string{p.LegacyImageURL}
			migrated = true
		}
		expenses = append(expenses, e)
	}
	s.expenses = expenses

	if migrated {
		if err := s.persistLocked(ctx, s.expenses); err != nil {
			return fmt.Errorf("failed to migrate expense snapshot: %w", err)
		}
		logger.Log.Info().Int("count", len(s.expenses)).Msg("Migrated legacy expense snapshot")
	}

	return nil
}

// Add creates an expense with a fresh id and prepends it, so the
// collection stays newest-first without sorting.
func (s *ExpenseStore) Add(ctx context.Context, input ExpenseInput) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense := models.Expense{
		ID:           uuid.New().String(),
		MerchantName: input.MerchantName,
		Date:         input.Date,
		TotalAmount:  input.TotalAmount,
		Currency:     input.Currency,
		Category:     input.Category,
		Items:        input.Items,
		ImageURLs:    input.ImageURLs,
		Status:       input.Status,
		Confidence:   input.Confidence,
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	if expense.Currency == "" {
		expense.Currency = models.DefaultCurrency
	}
	if expense.Category == "" {
		expense.Category = models.DefaultCategory
	}
	if expense.Status == "" {
		expense.Status = models.ExpenseStatusManual
	}

	next := make([]models.Expense, 0, len(s.expenses)+1)
	next = append(next, expense)
	next = append(next, s.expenses...)

	if err := s.persistLocked(ctx, next); err != nil {
		return models.Expense{}, err
	}
	s.expenses = next

	logger.Log.Debug().
		Str("expense_id", expense.ID).
		Str("merchant", logger.SanitizeTitle(expense.MerchantName)).
		Str("category", expense.Category).
		Str("status", expense.Status).
		Msg("Expense added")
	return expense, nil
}

// Update merges the given changes into the matching record. Returns
// ErrNotFound without touching the collection when the id is absent.
func (s *ExpenseStore) Update(ctx context.Context, id string, changes ExpenseChanges) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Expense{}, ErrNotFound
	}

	updated := s.expenses[idx]
	if changes.MerchantName != nil {
		updated.MerchantName = *changes.MerchantName
	}
	if changes.Date != nil {
		updated.Date = *changes.Date
	}
	if changes.TotalAmount != nil {
		updated.TotalAmount = *changes.TotalAmount
	}
	if changes.Currency != nil {
		updated.Currency = *changes.Currency
	}
	if changes.Category != nil {
		updated.Category = *changes.Category
	}
	if changes.Items != nil {
		updated.Items = *changes.Items
	}
	if changes.ImageURLs != nil {
		updated.ImageURLs = *changes.ImageURLs
	}
	if changes.Status != nil {
		updated.Status = *changes.Status
	}
	if changes.Confidence != nil {
		updated.Confidence = *changes.Confidence
	}

	next := s.cloneLocked()
	next[idx] = updated

	if err := s.persistLocked(ctx, next); err != nil {
		return models.Expense{}, err
	}
	s.expenses = next

	logger.Log.Debug().Str("expense_id", id).Msg("Expense updated")
	return updated, nil
}

// Delete removes the matching record permanently. Returns ErrNotFound
// when the id is absent.
func (s *ExpenseStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := make([]models.Expense, 0, len(s.expenses)-1)
	next = append(next, s.expenses[:idx]...)
	next = append(next, s.expenses[idx+1:]...)

	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.expenses = next

	logger.Log.Debug().Str("expense_id", id).Msg("Expense deleted")
	return nil
}

// GetByID returns the matching record. Pure read, no side effects.
func (s *ExpenseStore) GetByID(id string) (models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Expense{}, ErrNotFound
	}
	return s.expenses[idx], nil
}

// List returns a copy of the collection, newest first.
func (s *ExpenseStore) List() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

// Count returns the number of expenses.
func (s *ExpenseStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expenses)
}

func (s *ExpenseStore) indexOfLocked(id string) int {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ExpenseStore) cloneLocked() []models.Expense {
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *ExpenseStore) persistLocked(ctx context.Context, expenses []models.Expense) error {
	persisted := make([]persistedExpense, len(expenses))
	for i, e := range expenses {
		persisted[i] = persistedExpense{Expense: e}
	}
	data, err := json.Marshal(expenseEnvelope{
		Version:  expenseSnapshotVersion,
		Expenses: persisted,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal expense snapshot: %w", err)
	}
	if err := s.kv.Put(ctx, storage.ExpenseSnapshotKey, data); err != nil {
		return fmt.Errorf("failed to persist expense snapshot: %w", err)
	}
	return nil
}
