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

const debtSnapshotVersion = 1

// ErrInvalidDebtType is returned by Add for an unknown debt type.
var ErrInvalidDebtType = errors.New("store: invalid debt type")

// DebtInput is the payload for creating a debt. The store assigns the
// id, creation time, and unpaid status.
type DebtInput struct {
	Type       models.DebtType
	Amount     decimal.Decimal
	Currency   string
	Title      string
	PersonName string
	DueDate    string
	Notes      string
}

// DebtChanges is a partial update. Nil fields are left untouched.
// IsPaid is deliberately absent: paid status only moves through
// TogglePaid, so a full edit can never race with settling a debt.
type DebtChanges struct {
	Type       *models.DebtType
	Amount     *decimal.Decimal
	Currency   *string
	Title      *string
	PersonName *string
	DueDate    *string
	Notes      *string
}

type debtEnvelope struct {
	Version int           `json:"version"`
	Debts   []models.Debt `json:"debts"`
	State   *struct {
		Debts []models.Debt `json:"debts"`
	} `json:"state,omitempty"`
}

// DebtStore owns the debt collection. Newest records come first.
type DebtStore struct {
	mu    sync.RWMutex
	kv    storage.KV
	debts []models.Debt
}

// NewDebtStore creates a store over the given snapshot backend. Call
// Load before use.
func NewDebtStore(kv storage.KV) *DebtStore {
	return &DebtStore{kv: kv}
}

// Load rehydrates the collection from durable storage.
func (s *DebtStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, storage.DebtSnapshotKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		s.debts = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load debt snapshot: %w", err)
	}

	var envelope debtEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to parse debt snapshot: %w", err)
	}

	debts := envelope.Debts
	if len(debts) == 0 && envelope.State != nil {
		debts = envelope.State.Debts
		if err := s.persistDebtsLocked(ctx, debts); err != nil {
			return fmt.Errorf("failed to migrate debt snapshot: %w", err)
		}
		logger.Log.Info().Int("count", len(debts)).Msg("Migrated legacy debt snapshot")
	}
	s.debts = debts

	return nil
}

// Add creates a debt with a fresh id, CreatedAt set to now, and paid
// status false, then prepends it.
func (s *DebtStore) Add(ctx context.Context, input DebtInput) (models.Debt, error) {
	if !input.Type.Valid() {
		return models.Debt{}, fmt.Errorf("%w: %q", ErrInvalidDebtType, input.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	debt := models.Debt{
		ID:         uuid.New().String(),
		Type:       input.Type,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Title:      input.Title,
		PersonName: input.PersonName,
		DueDate:    input.DueDate,
		Notes:      input.Notes,
		IsPaid:     false,
		CreatedAt:  time.Now().UTC(),
	}
	if debt.Currency == "" {
		debt.Currency = models.DefaultCurrency
	}
	if debt.Title == "" {
		debt.Title = debt.Type.DefaultTitle()
	}

	next := make([]models.Debt, 0, len(s.debts)+1)
	next = append(next, debt)
	next = append(next, s.debts...)

	if err := s.persistDebtsLocked(ctx, next); err != nil {
		return models.Debt{}, err
	}
	s.debts = next

	logger.Log.Debug().
		Str("debt_id", debt.ID).
		Str("type", string(debt.Type)).
		Str("person", logger.HashPersonName(debt.PersonName)).
		Msg("Debt added")
	return debt, nil
}

// Update merges the given changes into the matching record. Returns
// ErrNotFound without touching the collection when the id is absent.
func (s *DebtStore) Update(ctx context.Context, id string, changes DebtChanges) (models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Debt{}, ErrNotFound
	}

	updated := s.debts[idx]
	if changes.Type != nil {
		if !changes.Type.Valid() {
			return models.Debt{}, fmt.Errorf("%w: %q", ErrInvalidDebtType, *changes.Type)
		}
		updated.Type = *changes.Type
	}
	if changes.Amount != nil {
		updated.Amount = *changes.Amount
	}
	if changes.Currency != nil {
		updated.Currency = *changes.Currency
	}
	if changes.Title != nil {
		updated.Title = *changes.Title
	}
	if changes.PersonName != nil {
		updated.PersonName = *changes.PersonName
	}
	if changes.DueDate != nil {
		updated.DueDate = *changes.DueDate
	}
	if changes.Notes != nil {
		updated.Notes = *changes.Notes
	}

	next := s.cloneLocked()
	next[idx] = updated

	if err := s.persistDebtsLocked(ctx, next); err != nil {
		return models.Debt{}, err
	}
	s.debts = next

	logger.Log.Debug().Str("debt_id", id).Msg("Debt updated")
	return updated, nil
}

// TogglePaid flips the paid status of the matching record and nothing
// else. Returns ErrNotFound when the id is absent.
func (s *DebtStore) TogglePaid(ctx context.Context, id string) (models.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Debt{}, ErrNotFound
	}

	toggled := s.debts[idx]
	toggled.IsPaid = !toggled.IsPaid

	next := s.cloneLocked()
	next[idx] = toggled

	if err := s.persistDebtsLocked(ctx, next); err != nil {
		return models.Debt{}, err
	}
	s.debts = next

	logger.Log.Debug().
		Str("debt_id", id).
		Bool("is_paid", toggled.IsPaid).
		Msg("Debt paid status toggled")
	return toggled, nil
}

// Delete removes the matching record permanently. Returns ErrNotFound
// when the id is absent.
func (s *DebtStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := make([]models.Debt, 0, len(s.debts)-1)
	next = append(next, s.debts[:idx]...)
	next = append(next, s.debts[idx+1:]...)

	if err := s.persistDebtsLocked(ctx, next); err != nil {
		return err
	}
	s.debts = next

	logger.Log.Debug().Str("debt_id", id).Msg("Debt deleted")
	return nil
}

// GetByID returns the matching record. Pure read, no side effects.
func (s *DebtStore) GetByID(id string) (models.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.Debt{}, ErrNotFound
	}
	return s.debts[idx], nil
}

// List returns a copy of the collection, newest first.
func (s *DebtStore) List() []models.Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

// Count returns the number of debts.
func (s *DebtStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.debts)
}

func (s *DebtStore) indexOfLocked(id string) int {
	for i := range s.debts {
		if s.debts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DebtStore) cloneLocked() []models.Debt {
	out := make([]models.Debt, len(s.debts))
	copy(out, s.debts)
	return out
}

func (s *DebtStore) persistDebtsLocked(ctx context.Context, debts []models.Debt) error {
	if debts == nil {
		debts = []models.Debt{}
	}
	data, err := json.Marshal(debtEnvelope{
		Version: debtSnapshotVersion,
		Debts:   debts,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal debt snapshot: %w", err)
	}
	if err := s.kv.Put(ctx, storage.DebtSnapshotKey, data); err != nil {
		return fmt.Errorf("failed to persist debt snapshot: %w", err)
	}
	return nil
}
