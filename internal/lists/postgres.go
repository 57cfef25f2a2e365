package lists

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a Repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetAllLists(ctx context.Context) ([]List, error) {
	rows, err := r.db.Query(ctx, SQLSelectLists)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetListsFailed, err)
	}
	defer rows.Close()

	type listHead struct {
		id   int
		name string
	}
	var heads []listHead
	for rows.Next() {
		var h listHead
		if err := rows.Scan(&h.id, &h.name); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGetListsFailed, err)
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetListsFailed, err)
	}

	lists := make([]List, 0, len(heads))
	for _, h := range heads {
		entries, err := r.getEntries(ctx, h.id)
		if err != nil {
			return nil, err
		}
		lists = append(lists, List{Name: h.name, Entries: entries})
	}
	return lists, nil
}

func (r *postgresRepository) getEntries(ctx context.Context, listID int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, SQLSelectListEntries, listID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetListsFailed, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ItemID, &e.Name, &e.Amount, &e.Source, &e.Obtained); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGetListsFailed, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetListsFailed, err)
	}
	return entries, nil
}

// SaveList replaces all entries of the named list inside one transaction, so
// readers never observe a half-written list.
func (r *postgresRepository) SaveList(ctx context.Context, name string, entries []Entry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var listID int
	if err := tx.QueryRow(ctx, SQLUpsertList, name).Scan(&listID); err != nil {
		return fmt.Errorf("failed to upsert list: %w", err)
	}
	if _, err := tx.Exec(ctx, SQLDeleteListEntries, listID); err != nil {
		return fmt.Errorf("failed to clear list entries: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(ctx, SQLInsertListEntry,
			listID, e.ItemID, e.Name, e.Amount, e.Source, e.Obtained, i)
		if err != nil {
			return fmt.Errorf("failed to insert list entry: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepository) RenameList(ctx context.Context, oldName, newName string) error {
	tag, err := r.db.Exec(ctx, SQLRenameList, newName, oldName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", ErrMsgListNotFound, domain.ErrNotFound)
	}
	return nil
}

func (r *postgresRepository) DeleteList(ctx context.Context, name string) error {
	// Entries go with the list via ON DELETE CASCADE.
	_, err := r.db.Exec(ctx, SQLDeleteList, name)
	return err
}
