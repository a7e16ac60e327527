package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/passkeeper/internal/encryption"
	"github.com/dtroode/passkeeper/internal/logger"
	"github.com/dtroode/passkeeper/internal/model"
)

// Operation names reported to the metrics recorder.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpDelete = "delete"
	OpSearch = "search"
	OpSort   = "sort"
)

// MetricsRecorder counts use case outcomes.
type MetricsRecorder interface {
	RecordOperation(operation string, err error)
}

// Pagination holds page size limits applied to listing use cases.
type Pagination struct {
	DefaultSize uint32
	MaxSize     uint32
}

type Record struct {
	recordStore model.RecordStore
	pagination  Pagination
	metrics     MetricsRecorder
	logger      *logger.Logger
}

func NewRecord(
	recordStore model.RecordStore,
	pagination Pagination,
	metrics MetricsRecorder,
	logger *logger.Logger,
) *Record {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &Record{
		recordStore: recordStore,
		pagination:  pagination,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateRecord validates the encrypted payload and stores it under a newly
// generated id. The nonce is validated before the cipher.
func (s *Record) CreateRecord(ctx context.Context, params model.CreateRecordParams) (record model.Record, err error) {
	defer func() { s.metrics.RecordOperation(OpCreate, err) }()

	if !encryption.IsValidNonce(params.Nonce) {
		return model.Record{}, model.NewValidationError("nonce", model.ErrInvalidNonce)
	}
	if !encryption.IsValidCipher(params.Cipher) {
		return model.Record{}, model.NewValidationError("cipher", model.ErrInvalidCipher)
	}

	record = model.NewRecord(uuid.New(), params.Service, params.Nonce, params.Cipher)
	if err := s.recordStore.Save(ctx, record); err != nil {
		return model.Record{}, fmt.Errorf("failed to save record: %w", err)
	}

	s.logger.Debug("record created", "id", record.ID, "service", record.Service)

	return record, nil
}

// GetRecord returns the record with the given id. A malformed id is
// reported as model.ErrNotFound.
func (s *Record) GetRecord(ctx context.Context, id string) (record model.Record, err error) {
	defer func() { s.metrics.RecordOperation(OpGet, err) }()

	recordID, err := uuid.Parse(id)
	if err != nil {
		return model.Record{}, model.ErrNotFound
	}

	record, err = s.recordStore.GetByID(ctx, recordID)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to get record by id: %w", err)
	}

	return record, nil
}

// DeleteRecord removes the record with the given id. A malformed id is
// reported as model.ErrNotFound.
func (s *Record) DeleteRecord(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordOperation(OpDelete, err) }()

	recordID, err := uuid.Parse(id)
	if err != nil {
		return model.ErrNotFound
	}

	if err := s.recordStore.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	s.logger.Debug("record deleted", "id", recordID)

	return nil
}

// SearchRecords returns one page of records whose service contains the term,
// ignoring case.
func (s *Record) SearchRecords(ctx context.Context, params model.SearchParams) (records []model.Record, err error) {
	defer func() { s.metrics.RecordOperation(OpSearch, err) }()

	page := s.page(params.Page, params.PageSize)

	records, err = s.recordStore.SearchByService(ctx, params.Term, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search records: %w", err)
	}

	return records, nil
}

// SortRecords returns one page of all records in the requested order.
func (s *Record) SortRecords(ctx context.Context, params model.SortParams) (records []model.Record, err error) {
	defer func() { s.metrics.RecordOperation(OpSort, err) }()

	key, err := model.ParseSortKey(params.SortBy)
	if err != nil {
		return nil, model.NewValidationError("sort_by", err)
	}

	page := s.page(params.Page, params.PageSize)
	if page.Size > s.pagination.MaxSize {
		return nil, model.NewValidationError("page_size", model.ErrPageSizeExceeded)
	}

	records, err = s.recordStore.ListSorted(ctx, key, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list sorted records: %w", err)
	}

	return records, nil
}

func (s *Record) page(number, size uint32) model.Page {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = s.pagination.DefaultSize
	}
	return model.Page{Number: number, Size: size}
}

type noopRecorder struct{}

func (noopRecorder) RecordOperation(string, error) {}
