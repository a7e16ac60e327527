package model

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/passkeeper/internal/encryption"
)

// RecordStore defines persistence operations for records.
type RecordStore interface {
	Save(ctx context.Context, record Record) error
	GetByID(ctx context.Context, id uuid.UUID) (Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SearchByService(ctx context.Context, term string, page Page) ([]Record, error)
	ListSorted(ctx context.Context, key SortKey, page Page) ([]Record, error)
}

// Record represents a stored credential. Nonce and Cipher are hex encoded
// output of the encryption package; the master key is never part of it.
type Record struct {
	ID        uuid.UUID
	Service   string
	Nonce     string
	Cipher    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord creates a record stamped with the current time, truncated to the
// microsecond precision of TIMESTAMPTZ.
func NewRecord(id uuid.UUID, service, nonce, cipher string) Record {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return Record{
		ID:        id,
		Service:   service,
		Nonce:     nonce,
		Cipher:    cipher,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Decrypt opens the record secret with the given master key.
func (r Record) Decrypt(masterKey string) (string, error) {
	return encryption.Decrypt(masterKey, r.Nonce, r.Cipher)
}

// SortKey enumerates supported orderings for listing records.
type SortKey int

const (
	SortCreatedAtAsc SortKey = iota + 1
	SortCreatedAtDesc
	SortUpdatedAtAsc
	SortUpdatedAtDesc
)

var sortKeyNames = map[SortKey]string{
	SortCreatedAtAsc:  "created_at_asc",
	SortCreatedAtDesc: "created_at_desc",
	SortUpdatedAtAsc:  "updated_at_asc",
	SortUpdatedAtDesc: "updated_at_desc",
}

// ParseSortKey parses names like "created_at_desc" or "CreatedAtDesc".
// Case and underscores are ignored.
func ParseSortKey(s string) (SortKey, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for key, name := range sortKeyNames {
		if strings.ReplaceAll(name, "_", "") == normalized {
			return key, nil
		}
	}
	return 0, ErrInvalidSortKey
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the declared sort keys.
func (k SortKey) Valid() bool {
	_, ok := sortKeyNames[k]
	return ok
}

// Page is a 1-indexed offset pagination window.
type Page struct {
	Number uint32
	Size   uint32
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int64 {
	if p.Number == 0 {
		return 0
	}
	offset := uint64(p.Number-1) * uint64(p.Size)
	if offset > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(offset)
}

// Limit returns the maximum number of rows in the page.
func (p Page) Limit() int64 {
	return int64(p.Size)
}

// CreateRecordParams contains parameters to create a record.
type CreateRecordParams struct {
	Service string
	Nonce   string
	Cipher  string
}

// SearchParams contains parameters to search records by service name.
// Zero Page and PageSize select the defaults.
type SearchParams struct {
	Term     string
	Page     uint32
	PageSize uint32
}

// SortParams contains parameters to list records in a given order.
// Zero Page and PageSize select the defaults.
type SortParams struct {
	SortBy   string
	Page     uint32
	PageSize uint32
}
