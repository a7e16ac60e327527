package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/passkeeper/internal/model"
)

const uniqueViolation = "23505"

var _ model.RecordStore = (*RecordRepository)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type RecordRepository struct {
	db DBTX
}

func NewRecordRepository(db DBTX) *RecordRepository {
	return &RecordRepository{
		db: db,
	}
}

func (r *RecordRepository) Save(ctx context.Context, record model.Record) error {
	const query = `
		INSERT INTO records (id, service, nonce, cipher, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Service, record.Nonce, record.Cipher, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.NewStorageError("save record", fmt.Errorf("%w: %w", model.ErrAlreadyExists, err))
		}
		return model.NewStorageError("save record", err)
	}

	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Record, error) {
	const query = `
		SELECT id, service, nonce, cipher, created_at, updated_at
		FROM records
		WHERE id = $1`

	var record model.Record
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.Service, &record.Nonce, &record.Cipher,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, model.ErrNotFound
		}
		return model.Record{}, model.NewStorageError("get record by id", err)
	}

	return record, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM records WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return model.NewStorageError("delete record", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.NewStorageError("delete record", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SearchByService returns records whose service contains term, ignoring case.
// The term is matched literally; LIKE wildcards in it are escaped.
func (r *RecordRepository) SearchByService(ctx context.Context, term string, page model.Page) ([]model.Record, error) {
	const query = `
		SELECT id, service, nonce, cipher, created_at, updated_at
		FROM records
		WHERE service ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, likeEscaper.Replace(term), page.Limit(), page.Offset())
	if err != nil {
		return nil, model.NewStorageError("search records", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, model.NewStorageError("search records", err)
	}
	return records, nil
}

func (r *RecordRepository) ListSorted(ctx context.Context, key model.SortKey, page model.Page) ([]model.Record, error) {
	order, err := orderBy(key)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, service, nonce, cipher, created_at, updated_at
		FROM records
		ORDER BY ` + order + `
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, model.NewStorageError("list records", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, model.NewStorageError("list records", err)
	}
	return records, nil
}

// orderBy maps a sort key to a fixed ORDER BY clause. The id tiebreaker keeps
// pages stable when timestamps collide.
func orderBy(key model.SortKey) (string, error) {
	switch key {
	case model.SortCreatedAtAsc:
		return "created_at ASC, id ASC", nil
	case model.SortCreatedAtDesc:
		return "created_at DESC, id DESC", nil
	case model.SortUpdatedAtAsc:
		return "updated_at ASC, id ASC", nil
	case model.SortUpdatedAtDesc:
		return "updated_at DESC, id DESC", nil
	default:
		return "", model.ErrInvalidSortKey
	}
}

func scanRecords(rows *sql.Rows) ([]model.Record, error) {
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var record model.Record
		err := rows.Scan(
			&record.ID, &record.Service, &record.Nonce, &record.Cipher,
			&record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
