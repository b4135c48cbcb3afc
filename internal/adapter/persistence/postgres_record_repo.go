package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// PostgresRecordRepository implements RecordRepository using PostgreSQL
type PostgresRecordRepository struct {
	db *sql.DB
}

// NewPostgresRecordRepository creates a new PostgreSQL record repository
func NewPostgresRecordRepository(db *sql.DB) ports.RecordRepository {
	return &PostgresRecordRepository{db: db}
}

// Create saves a new record
func (r *PostgresRecordRepository) Create(ctx context.Context, record *domain.Record) error {
	query := `
		INSERT INTO records (id, owner_id, title, description, location, record_type, status, anonymous, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.OwnerID,
		record.Title,
		record.Description,
		record.Location,
		string(record.RecordType),
		string(record.Status),
		record.Anonymous,
		record.CreatedAt,
		record.UpdatedAt,
		record.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	return nil
}

// FindByID retrieves a record by its ID, including its status history
func (r *PostgresRecordRepository) FindByID(ctx context.Context, id string) (*domain.Record, error) {
	query := `
		SELECT id, owner_id, title, description, location, record_type, status, anonymous, created_at, updated_at, version
		FROM records
		WHERE id = $1
	`

	var record domain.Record
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.OwnerID,
		&record.Title,
		&record.Description,
		&record.Location,
		&record.RecordType,
		&record.Status,
		&record.Anonymous,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}

	history, err := r.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	record.StatusHistory = history

	return &record, nil
}

// FindAll retrieves all records, restricted to one owner when ownerID is set.
// History is not loaded for listings.
func (r *PostgresRecordRepository) FindAll(ctx context.Context, ownerID string) ([]*domain.Record, error) {
	query := `
		SELECT id, owner_id, title, description, location, record_type, status, anonymous, created_at, updated_at, version
		FROM records
	`

	var conditions []string
	var args []interface{}

	if ownerID != "" {
		conditions = append(conditions, "owner_id = $1")
		args = append(args, ownerID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		var record domain.Record
		if err := rows.Scan(
			&record.ID,
			&record.OwnerID,
			&record.Title,
			&record.Description,
			&record.Location,
			&record.RecordType,
			&record.Status,
			&record.Anonymous,
			&record.CreatedAt,
			&record.UpdatedAt,
			&record.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// Update persists the record if its stored version still equals
// expectedVersion. Newly appended status history entries are inserted in the
// same transaction, so no intermediate state is observable.
func (r *PostgresRecordRepository) Update(ctx context.Context, record *domain.Record, expectedVersion int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE records
		SET title = $2, description = $3, location = $4, record_type = $5,
			status = $6, anonymous = $7, updated_at = $8, version = version + 1
		WHERE id = $1 AND version = $9
	`

	result, err := tx.ExecContext(ctx, query,
		record.ID,
		record.Title,
		record.Description,
		record.Location,
		string(record.RecordType),
		string(record.Status),
		record.Anonymous,
		record.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Either the record is gone or a concurrent writer bumped the version
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM records WHERE id = $1)`, record.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check record existence: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}

	var stored int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM status_updates WHERE record_id = $1`, record.ID).Scan(&stored); err != nil {
		return fmt.Errorf("failed to count status updates: %w", err)
	}
	for i := stored; i < len(record.StatusHistory); i++ {
		change := record.StatusHistory[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO status_updates (record_id, status, comment, changed_by, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, record.ID, string(change.Status), change.Comment, change.ChangedBy, change.Timestamp); err != nil {
			return fmt.Errorf("failed to insert status update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}

	record.Version = expectedVersion + 1
	return nil
}

// Delete removes a record and its dependents
func (r *PostgresRecordRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *PostgresRecordRepository) loadHistory(ctx context.Context, recordID string) ([]domain.StatusChange, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, comment, changed_by, created_at
		FROM status_updates
		WHERE record_id = $1
		ORDER BY created_at ASC, id ASC
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status updates: %w", err)
	}
	defer rows.Close()

	var history []domain.StatusChange
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(&change.Status, &change.Comment, &change.ChangedBy, &change.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status update: %w", err)
		}
		history = append(history, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status updates: %w", err)
	}

	return history, nil
}
