package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"statfolio/app"
	"statfolio/domain/approx"
	"statfolio/domain/core"
	"statfolio/internal/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, apiError{Code: errors.GetCode(err), Message: err.Error()})
}

// approximationResponse bundles everything the overlay chart needs for one
// configuration.
type approximationResponse struct {
	Config      approx.TrialConfig      `json:"config"`
	Exact       approx.Curve            `json:"exact"`
	Approximate approx.Curve            `json:"approximate"`
	Metrics     approx.ErrorMetrics     `json:"metrics"`
	Bounds      approx.ConfidenceBounds `json:"bounds"`
}

// handleApproximationQuery computes both curves and the comparison metrics
// for ?n=&p= with an optional ?level= (default 0.95).
func (a *App) handleApproximationQuery(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, errors.InvalidInput("n must be an integer"))
		return
	}
	p, err := strconv.ParseFloat(r.URL.Query().Get("p"), 64)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, errors.InvalidInput("p must be a number"))
		return
	}
	level := 0.95
	if raw := r.URL.Query().Get("level"); raw != "" {
		level, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, errors.InvalidInput("level must be a number"))
			return
		}
	}

	cfg, err := approx.NewTrialConfig(n, p)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, err)
		return
	}

	exact, approximate, err := a.reports.CurvePair(r.Context(), cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsInvalidParameterError(err) {
			status = http.StatusBadRequest
		}
		writeAPIError(w, r, status, err)
		return
	}

	// Reuse the sweep machinery for a single cell.
	report, err := a.reports.ApproximationReport(r.Context(), []approx.TrialConfig{cfg})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, err)
		return
	}
	row := report.Rows[0]

	bounds := row.Bounds95
	if level != 0.95 {
		// Recompute at the caller's level; the row carries 95/99 only.
		bounds, err = a.reports.ConfidenceBounds(cfg, level)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	render.JSON(w, r, approximationResponse{
		Config:      cfg,
		Exact:       exact,
		Approximate: approximate,
		Metrics:     row.Metrics,
		Bounds:      bounds,
	})
}

// handleApproximationReport serves the full default comparison table.
func (a *App) handleApproximationReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.reports.ApproximationReport(r.Context(), app.DefaultGrid())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, report)
}

// handleTradeReport serves the reshaped trade series.
func (a *App) handleTradeReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.reports.TradeReport(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, report)
}
