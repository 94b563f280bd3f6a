// Package handler implements the JSON API endpoints.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quantdesk/quantdesk/internal/api/middleware"
	"github.com/quantdesk/quantdesk/internal/api/response"
	"github.com/quantdesk/quantdesk/internal/backtest"
	"github.com/quantdesk/quantdesk/internal/core"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

const dateLayout = "2006-01-02"

// BacktestRequest is the request body for running a backtest.
type BacktestRequest struct {
	Symbol         string             `json:"symbol"`
	Strategy       string             `json:"strategy"`
	Start          string             `json:"start"`
	End            string             `json:"end"`
	Interval       string             `json:"interval,omitempty"`
	InitialCapital float64            `json:"initial_capital,omitempty"`
	Params         map[string]float64 `json:"params,omitempty"`
}

// BacktestHandler serves the backtest endpoints.
type BacktestHandler struct {
	backtester      *backtest.Backtester
	defaultCapital  float64
	defaultInterval string
}

// NewBacktestHandler creates a backtest handler. Zero-valued defaults are
// replaced with 10000 capital and daily bars.
func NewBacktestHandler(backtester *backtest.Backtester, defaultCapital float64, defaultInterval string) *BacktestHandler {
	if defaultCapital <= 0 {
		defaultCapital = 10000
	}
	if defaultInterval == "" {
		defaultInterval = "1d"
	}
	return &BacktestHandler{
		backtester:      backtester,
		defaultCapital:  defaultCapital,
		defaultInterval: defaultInterval,
	}
}

// Create runs a backtest synchronously and returns the persisted record.
func (h *BacktestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidParameter, err))
		return
	}

	if req.Symbol == "" || req.Strategy == "" || req.Start == "" || req.End == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidParameter,
				fmt.Errorf("symbol, strategy, start, and end are required")))
		return
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidParameter, err))
		return
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidParameter, err))
		return
	}

	capital := req.InitialCapital
	if capital == 0 {
		capital = h.defaultCapital
	}
	interval := req.Interval
	if interval == "" {
		interval = h.defaultInterval
	}

	record, err := h.backtester.Run(r.Context(), backtest.RunRequest{
		UserID:         middleware.UserID(r.Context()),
		Strategy:       req.Strategy,
		Symbol:         req.Symbol,
		Interval:       interval,
		Start:          start,
		End:            end,
		Parameters:     strategy.ParameterSet(req.Params),
		InitialCapital: capital,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, record)
}

// List returns the caller's backtest records, newest first.
func (h *BacktestHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.backtester.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if records == nil {
		records = []*core.BacktestRecord{}
	}
	response.JSON(w, http.StatusOK, records)
}

// Get returns one of the caller's backtest records by ID.
func (h *BacktestHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.backtester.Get(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, record)
}
