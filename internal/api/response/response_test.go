package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantdesk/quantdesk/internal/core"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s", ct)
	}

	var resp SuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("expected meta timestamp")
	}
}

func TestError_CoreError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, core.WrapError(core.ErrNotFound, errors.New("record bt-1")))

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %s", resp.Error.Code)
	}
	if resp.Error.Cause != "record bt-1" {
		t.Errorf("cause = %s", resp.Error.Cause)
	}
}

func TestError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusInternalServerError, errors.New("boom"))

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("plain errors must not leak details, code = %s", resp.Error.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{core.ErrInvalidParameter, http.StatusBadRequest},
		{core.ErrInsufficientData, http.StatusBadRequest},
		{core.ErrUnknownStrategy, http.StatusNotFound},
		{core.ErrNotFound, http.StatusNotFound},
		{core.ErrNoHistoricalData, http.StatusNotFound},
		{core.ErrDataSourceFailed, http.StatusBadGateway},
		{core.ErrPersistenceFailed, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.expected {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.expected)
		}
	}
}
