// Package memory provides an in-process RecordStore with the same ordering
// and pagination semantics as the postgres repository.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/passkeeper/internal/model"
)

var _ model.RecordStore = (*RecordRepository)(nil)

type RecordRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.Record
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		records: make(map[uuid.UUID]model.Record),
	}
}

func (r *RecordRepository) Save(ctx context.Context, record model.Record) error {
	if err := ctx.Err(); err != nil {
		return model.NewStorageError("save record", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; ok {
		return model.NewStorageError("save record", model.ErrAlreadyExists)
	}
	r.records[record.ID] = record
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Record, error) {
	if err := ctx.Err(); err != nil {
		return model.Record{}, model.NewStorageError("get record by id", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return model.Record{}, model.ErrNotFound
	}
	return record, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return model.NewStorageError("delete record", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *RecordRepository) SearchByService(ctx context.Context, term string, page model.Page) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.NewStorageError("search records", err)
	}

	needle := strings.ToLower(term)
	matched := r.filter(func(rec model.Record) bool {
		return strings.Contains(strings.ToLower(rec.Service), needle)
	})
	sortBy(matched, func(rec model.Record) time.Time { return rec.CreatedAt }, false)

	return paginate(matched, page), nil
}

func (r *RecordRepository) ListSorted(ctx context.Context, key model.SortKey, page model.Page) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.NewStorageError("list records", err)
	}

	created := func(rec model.Record) time.Time { return rec.CreatedAt }
	updated := func(rec model.Record) time.Time { return rec.UpdatedAt }

	all := r.filter(func(model.Record) bool { return true })
	switch key {
	case model.SortCreatedAtAsc:
		sortBy(all, created, false)
	case model.SortCreatedAtDesc:
		sortBy(all, created, true)
	case model.SortUpdatedAtAsc:
		sortBy(all, updated, false)
	case model.SortUpdatedAtDesc:
		sortBy(all, updated, true)
	default:
		return nil, model.ErrInvalidSortKey
	}

	return paginate(all, page), nil
}

func (r *RecordRepository) filter(keep func(model.Record) bool) []model.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Record, 0, len(r.records))
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// sortBy orders by the timestamp and breaks ties by id in the same direction.
func sortBy(records []model.Record, field func(model.Record) time.Time, desc bool) {
	slices.SortFunc(records, func(a, b model.Record) int {
		c := field(a).Compare(field(b))
		if c == 0 {
			c = strings.Compare(a.ID.String(), b.ID.String())
		}
		if desc {
			return -c
		}
		return c
	})
}

func paginate(records []model.Record, page model.Page) []model.Record {
	offset := page.Offset()
	if offset >= int64(len(records)) {
		return []model.Record{}
	}
	end := offset + page.Limit()
	if end > int64(len(records)) {
		end = int64(len(records))
	}
	return slices.Clone(records[offset:end])
}
