package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dtroode/passkeeper/internal/model"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type recordResponse struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Nonce     string    `json:"nonce"`
	Cipher    string    `json:"cipher"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newRecordResponse(r model.Record) recordResponse {
	return recordResponse{
		ID:        r.ID.String(),
		Service:   r.Service,
		Nonce:     r.Nonce,
		Cipher:    r.Cipher,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newRecordsResponse(records []model.Record) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, newRecordResponse(r))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("body", err)
	}
	return nil
}

var errMissingParameter = errors.New("missing query parameter")

// requiredQuery returns the named query parameter, which may be empty but must
// be present.
func requiredQuery(r *http.Request, name string) (string, error) {
	query := r.URL.Query()
	if !query.Has(name) {
		return "", model.NewValidationError(name, errMissingParameter)
	}
	return query.Get(name), nil
}

// queryUint32 parses an optional unsigned query parameter; absent means 0.
func queryUint32(r *http.Request, name string) (uint32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, model.NewValidationError(name, fmt.Errorf("not an unsigned integer: %q", raw))
	}
	return uint32(v), nil
}
