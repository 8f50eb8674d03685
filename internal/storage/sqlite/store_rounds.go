package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goathill/wolfgoatpig/internal/storage"
)

// PutRound inserts or updates a round metadata record.
func (s *Store) PutRound(ctx context.Context, record storage.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("round id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO rounds (id, course_name, player_count, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    course_name = excluded.course_name,
    player_count = excluded.player_count,
    status = excluded.status,
    updated_at = excluded.updated_at`,
		record.ID,
		record.CourseName,
		record.PlayerCount,
		record.Status,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put round: %w", err)
	}
	return nil
}

// GetRound returns the round record with the given id.
func (s *Store) GetRound(ctx context.Context, id string) (storage.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RoundRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RoundRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, course_name, player_count, status, created_at, updated_at
FROM rounds WHERE id = ?`, id)
	record, err := scanRound(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RoundRecord{}, storage.ErrNotFound
		}
		return storage.RoundRecord{}, fmt.Errorf("get round: %w", err)
	}
	return record, nil
}

// ListRounds returns all round records, most recent first.
func (s *Store) ListRounds(ctx context.Context) ([]storage.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, course_name, player_count, status, created_at, updated_at
FROM rounds ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var records []storage.RoundRecord
	for rows.Next() {
		record, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rounds: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (storage.RoundRecord, error) {
	var record storage.RoundRecord
	var createdAt, updatedAt int64
	if err := row.Scan(
		&record.ID,
		&record.CourseName,
		&record.PlayerCount,
		&record.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.RoundRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}
