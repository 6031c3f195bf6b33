// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/example/jiobot/internal/ports/secondary"
)

// JioRepository implements secondary.JioRepository with SQLite.
type JioRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewJioRepository creates a new SQLite jio repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewJioRepository(db *sql.DB, logWriter secondary.LogWriter) *JioRepository {
	return &JioRepository{db: db, logWriter: logWriter}
}

// GetNextID bumps the jio counter and returns the new value.
func (r *JioRepository) GetNextID(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sequences (name, value) VALUES ('jios', 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to bump jio sequence: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, "SELECT value FROM sequences WHERE name = 'jios'").Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read jio sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit jio sequence: %w", err)
	}
	return id, nil
}

// Create persists a new jio together with its initial participants.
func (r *JioRepository) Create(ctx context.Context, jio *secondary.JioRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO jios (id, name, creator_id, creator_name, created_at) VALUES (?, ?, ?, ?, ?)",
		jio.ID, jio.Name, jio.CreatorID, jio.CreatorName, jio.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create jio: %w", err)
	}

	for _, name := range jio.Participants {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO jio_participants (jio_id, name) VALUES (?, ?)", jio.ID, name,
		); err != nil {
			return fmt.Errorf("failed to add participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit jio: %w", err)
	}

	// Log create operation
	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "jio", strconv.FormatInt(jio.ID, 10))
	}

	return nil
}

// GetByID retrieves a jio by its ID.
func (r *JioRepository) GetByID(ctx context.Context, id int64) (*secondary.JioRecord, error) {
	record := &secondary.JioRecord{}
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, creator_id, creator_name, created_at FROM jios WHERE id = ?", id,
	).Scan(&record.ID, &record.Name, &record.CreatorID, &record.CreatorName, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("jio %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get jio: %w", err)
	}
	record.CreatedAt = createdAt

	if err := r.loadChildren(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves jios matching the given filters in creation order.
func (r *JioRepository) List(ctx context.Context, filters secondary.JioFilters) ([]*secondary.JioRecord, error) {
	query := "SELECT id, name, creator_id, creator_name, created_at FROM jios WHERE 1=1"
	args := []any{}

	if filters.CreatorID != 0 {
		query += " AND creator_id = ?"
		args = append(args, filters.CreatorID)
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jios: %w", err)
	}

	var jios []*secondary.JioRecord
	for rows.Next() {
		record := &secondary.JioRecord{}
		var createdAt time.Time
		if err := rows.Scan(&record.ID, &record.Name, &record.CreatorID, &record.CreatorName, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan jio: %w", err)
		}
		record.CreatedAt = createdAt
		jios = append(jios, record)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list jios: %w", err)
	}
	// Close before loading children: the pool holds a single connection.
	rows.Close()

	for _, record := range jios {
		if err := r.loadChildren(ctx, record); err != nil {
			return nil, err
		}
	}
	return jios, nil
}

// AppendItem appends an item and records the contributor as a participant.
func (r *JioRepository) AppendItem(ctx context.Context, jioID int64, item *secondary.ItemRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireJio(ctx, tx, jioID); err != nil {
		return err
	}

	var before int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM jio_items WHERE jio_id = ?", jioID).Scan(&before); err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO jio_items (jio_id, contributor_name, item_text, added_at) VALUES (?, ?, ?, ?)",
		jioID, item.ContributorName, item.Text, item.AddedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO jio_participants (jio_id, name) VALUES (?, ?)", jioID, item.ContributorName,
	)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "jio", strconv.FormatInt(jioID, 10), "items",
			strconv.Itoa(before), strconv.Itoa(before+1))
	}

	return nil
}

// AddSurface attaches a surface unless an identical one is already recorded.
func (r *JioRepository) AddSurface(ctx context.Context, jioID int64, surface *secondary.SurfaceRecord) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireJio(ctx, tx, jioID); err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO jio_surfaces (jio_id, kind, inline_message_id, chat_id, message_id)
		VALUES (?, ?, ?, ?, ?)`,
		jioID, surface.Kind, surface.InlineMessageID, surface.ChatID, surface.MessageID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add surface: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit surface: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// Delete removes a jio; items, participants and surfaces cascade.
func (r *JioRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM jios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete jio: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("jio %d: %w", id, secondary.ErrNotFound)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "jio", strconv.FormatInt(id, 10))
	}

	return nil
}

// Helper methods

func requireJio(ctx context.Context, tx *sql.Tx, jioID int64) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM jios WHERE id = ?", jioID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("jio %d: %w", jioID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check jio: %w", err)
	}
	return nil
}

func (r *JioRepository) loadChildren(ctx context.Context, record *secondary.JioRecord) error {
	items, err := r.db.QueryContext(ctx,
		"SELECT contributor_name, item_text, added_at FROM jio_items WHERE jio_id = ? ORDER BY id", record.ID)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	for items.Next() {
		var item secondary.ItemRecord
		if err := items.Scan(&item.ContributorName, &item.Text, &item.AddedAt); err != nil {
			items.Close()
			return fmt.Errorf("failed to scan item: %w", err)
		}
		record.Items = append(record.Items, item)
	}
	items.Close()

	participants, err := r.db.QueryContext(ctx,
		"SELECT name FROM jio_participants WHERE jio_id = ? ORDER BY id", record.ID)
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}
	for participants.Next() {
		var name string
		if err := participants.Scan(&name); err != nil {
			participants.Close()
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		record.Participants = append(record.Participants, name)
	}
	participants.Close()

	surfaces, err := r.db.QueryContext(ctx,
		"SELECT kind, inline_message_id, chat_id, message_id FROM jio_surfaces WHERE jio_id = ? ORDER BY id", record.ID)
	if err != nil {
		return fmt.Errorf("failed to load surfaces: %w", err)
	}
	defer surfaces.Close()
	for surfaces.Next() {
		var s secondary.SurfaceRecord
		if err := surfaces.Scan(&s.Kind, &s.InlineMessageID, &s.ChatID, &s.MessageID); err != nil {
			return fmt.Errorf("failed to scan surface: %w", err)
		}
		record.Surfaces = append(record.Surfaces, s)
	}
	return surfaces.Err()
}

var _ secondary.JioRepository = (*JioRepository)(nil)
