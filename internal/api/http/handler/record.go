package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/passkeeper/internal/logger"
	"github.com/dtroode/passkeeper/internal/model"
)

// RecordService defines business operations for record management.
type RecordService interface {
	CreateRecord(ctx context.Context, params model.CreateRecordParams) (model.Record, error)
	GetRecord(ctx context.Context, id string) (model.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	SearchRecords(ctx context.Context, params model.SearchParams) ([]model.Record, error)
	SortRecords(ctx context.Context, params model.SortParams) ([]model.Record, error)
}

// Record handles HTTP endpoints for records.
type Record struct {
	recordService RecordService
	logger        *logger.Logger
}

// NewRecord creates a new Record handler.
func NewRecord(recordService RecordService, logger *logger.Logger) *Record {
	return &Record{
		recordService: recordService,
		logger:        logger,
	}
}

type createRecordRequest struct {
	Service string `json:"service"`
	Nonce   string `json:"nonce"`
	Cipher  string `json:"cipher"`
}

type deleteRecordRequest struct {
	ID string `json:"id"`
}

// Create stores a new encrypted record.
func (h *Record) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	record, err := h.recordService.CreateRecord(r.Context(), model.CreateRecordParams{
		Service: req.Service,
		Nonce:   req.Nonce,
		Cipher:  req.Cipher,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, newRecordResponse(record))
}

// Get returns a single record by the id query parameter.
func (h *Record) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.recordService.GetRecord(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newRecordResponse(record))
}

// Delete removes the record named in the request body.
func (h *Record) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.recordService.DeleteRecord(r.Context(), req.ID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "record deleted")
}

// Search lists records whose service contains search_term.
func (h *Record) Search(w http.ResponseWriter, r *http.Request) {
	term, err := requiredQuery(r, "search_term")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	page, pageSize, err := pagination(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	records, err := h.recordService.SearchRecords(r.Context(), model.SearchParams{
		Term:     term,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newRecordsResponse(records))
}

// Sort lists all records ordered by sort_by.
func (h *Record) Sort(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	records, err := h.recordService.SortRecords(r.Context(), model.SortParams{
		SortBy:   r.URL.Query().Get("sort_by"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newRecordsResponse(records))
}

func pagination(r *http.Request) (page, pageSize uint32, err error) {
	if page, err = queryUint32(r, "page"); err != nil {
		return 0, 0, err
	}
	if pageSize, err = queryUint32(r, "page_size"); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
