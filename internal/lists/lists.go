// Package lists manages named crafting lists: persistent, user-curated sets
// of items to craft or gather, with per-entry progress tracking.
package lists

import (
	"context"
	"fmt"

	"github.com/osse101/CraftVault_Go/internal/domain"
	"github.com/osse101/CraftVault_Go/internal/logger"
)

// Entry is one item on a crafting list.
type Entry struct {
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	Source   string `json:"source,omitempty"`
	Obtained bool   `json:"obtained"`
}

// List is a named, ordered collection of entries.
type List struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Repository defines the persistence operations the lists service needs.
type Repository interface {
	GetAllLists(ctx context.Context) ([]List, error)
	SaveList(ctx context.Context, name string, entries []Entry) error
	RenameList(ctx context.Context, oldName, newName string) error
	DeleteList(ctx context.Context, name string) error
}

// Service defines crafting list operations.
type Service interface {
	GetAll(ctx context.Context) ([]List, error)
	Save(ctx context.Context, name string, entries []Entry) error
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}

type service struct {
	repo Repository
}

// NewService creates a crafting lists service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]List, error) {
	return s.repo.GetAllLists(ctx)
}

// Save replaces the named list's entries wholesale. Entry order is the
// caller's display order and is preserved. Non-positive amounts are
// normalized to 1.
func (s *service) Save(ctx context.Context, name string, entries []Entry) error {
	log := logger.FromContext(ctx)

	if name == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyListName)
	}

	normalized := make([]Entry, len(entries))
	for i, e := range entries {
		if e.Amount < 1 {
			e.Amount = 1
		}
		normalized[i] = e
	}

	if err := s.repo.SaveList(ctx, name, normalized); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSaveListFailed, err)
	}
	log.Info(LogMsgListSaved, "list", name, "entries", len(normalized))
	return nil
}

func (s *service) Rename(ctx context.Context, oldName, newName string) error {
	if oldName == "" || newName == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyListName)
	}
	if err := s.repo.RenameList(ctx, oldName, newName); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRenameListFailed, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyListName)
	}
	if err := s.repo.DeleteList(ctx, name); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteListFailed, err)
	}
	return nil
}
