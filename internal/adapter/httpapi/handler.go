package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/auth"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/quote"
)

const defaultListLimit = 20

// Handler provides the HTTP JSON API over the quote service
type Handler struct {
	quoteService   *quote.QuoteService
	waitingPeriods []float64
	apiToken       string
}

// NewHandler creates a new API handler
// An empty apiToken disables authentication
func NewHandler(quoteService *quote.QuoteService, waitingPeriods []float64, apiToken string) *Handler {
	return &Handler{
		quoteService:   quoteService,
		waitingPeriods: waitingPeriods,
		apiToken:       apiToken,
	}
}

// RegisterRoutes sets up all API routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(loggingMiddleware)

	// Health is public
	r.HandleFunc("/health", h.handleHealth).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(h.authMiddleware)

	// Valuation
	api.HandleFunc("/relativity", h.handleRelativity).Methods("GET")
	api.HandleFunc("/premium", h.handleComputePremium).Methods("POST")
	api.HandleFunc("/premium/waiting-cost", h.handleWaitingCost).Methods("POST")

	// Quote history
	api.HandleFunc("/quotes", h.handleListQuotes).Methods("GET")
	api.HandleFunc("/quotes/{id}", h.handleGetQuote).Methods("GET")
}

// premiumRequest is the body of POST /premium and POST /premium/waiting-cost
type premiumRequest struct {
	PropertyValue    float64   `json:"property_value"`
	RemainingYears   float64   `json:"remaining_years"`
	RemainingMonths  float64   `json:"remaining_months"`
	AnnualGroundRent float64   `json:"annual_ground_rent"`
	DefermentRatePct float64   `json:"deferment_rate_pct"`
	Fees             float64   `json:"fees"`
	Strategy         string    `json:"strategy"`
	Waits            []float64 `json:"waits,omitempty"`
}

func (p premiumRequest) toQuoteRequest() quote.QuoteRequest {
	return quote.QuoteRequest{
		PropertyValue:    p.PropertyValue,
		RemainingYears:   p.RemainingYears,
		RemainingMonths:  p.RemainingMonths,
		AnnualGroundRent: p.AnnualGroundRent,
		DefermentRatePct: p.DefermentRatePct,
		Fees:             p.Fees,
		Strategy:         domain.Strategy(strings.ToUpper(strings.TrimSpace(p.Strategy))),
	}
}

type inputResponse struct {
	PropertyValue    float64 `json:"property_value"`
	RemainingYears   float64 `json:"remaining_years"`
	AnnualGroundRent float64 `json:"annual_ground_rent"`
	DefermentRatePct float64 `json:"deferment_rate_pct"`
	RelativityRate   float64 `json:"relativity_rate"`
	Fees             float64 `json:"fees"`
}

type resultResponse struct {
	GroundRentCompensation decimal.Decimal `json:"ground_rent_compensation"`
	ReversionValue         decimal.Decimal `json:"reversion_value"`
	MarriageValue          decimal.Decimal `json:"marriage_value"`
	Fees                   decimal.Decimal `json:"fees"`
	Total                  decimal.Decimal `json:"total"`
}

// quoteResponse is the JSON form of a stored quote; amounts encode as decimal strings
type quoteResponse struct {
	ID                 string          `json:"id"`
	CreatedAt          time.Time       `json:"created_at"`
	Strategy           string          `json:"strategy"`
	Input              inputResponse   `json:"input"`
	Result             resultResponse  `json:"result"`
	CurrentLeaseValue  decimal.Decimal `json:"current_lease_value"`
	ExtendedLeaseValue decimal.Decimal `json:"extended_lease_value"`
}

type waitingCostResponse struct {
	WaitYears      float64         `json:"wait_years"`
	RemainingYears float64         `json:"remaining_years"`
	Total          decimal.Decimal `json:"total"`
}

func newQuoteResponse(q *domain.Quote) quoteResponse {
	return quoteResponse{
		ID:        q.ID.String(),
		CreatedAt: q.CreatedAt.UTC(),
		Strategy:  string(q.Strategy),
		Input: inputResponse{
			PropertyValue:    q.Input.PropertyValue,
			RemainingYears:   q.Input.RemainingYears,
			AnnualGroundRent: q.Input.AnnualGroundRent,
			DefermentRatePct: q.Input.DefermentRatePct,
			RelativityRate:   q.Input.RelativityRate,
			Fees:             q.Input.Fees,
		},
		Result: resultResponse{
			GroundRentCompensation: q.Result.GroundRentCompensation,
			ReversionValue:         q.Result.ReversionValue,
			MarriageValue:          q.Result.MarriageValue,
			Fees:                   q.Result.Fees,
			Total:                  q.Result.Total,
		},
		CurrentLeaseValue:  q.CurrentLeaseValue,
		ExtendedLeaseValue: q.ExtendedLeaseValue,
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error to an HTTP status
func respondServiceError(w http.ResponseWriter, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, msg)
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, msg)
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads a JSON request body, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

// handleHealth returns server health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRelativity returns the relativity for ?years=
func (h *Handler) handleRelativity(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("years")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "years parameter is required")
		return
	}

	years, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid years: must be a number")
		return
	}

	rate, err := h.quoteService.Relativity(years)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]float64{
		"years":      years,
		"relativity": rate,
	})
}

// handleComputePremium computes and stores a premium quote
func (h *Handler) handleComputePremium(w http.ResponseWriter, r *http.Request) {
	var body premiumRequest
	if err := decodeBody(w, r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := h.quoteService.Quote(r.Context(), body.toQuoteRequest())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newQuoteResponse(q))
}

// handleWaitingCost projects the premium for postponed extensions
func (h *Handler) handleWaitingCost(w http.ResponseWriter, r *http.Request) {
	var body premiumRequest
	if err := decodeBody(w, r, &body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	waits := body.Waits
	if len(waits) == 0 {
		waits = h.waitingPeriods
	}

	costs, err := h.quoteService.ProjectWaitingCost(body.toQuoteRequest(), waits)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]waitingCostResponse, 0, len(costs))
	for _, c := range costs {
		out = append(out, waitingCostResponse{
			WaitYears:      c.WaitYears,
			RemainingYears: c.RemainingYears,
			Total:          c.Total,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"waiting_costs": out})
}

// handleListQuotes returns a page of stored quotes, newest first
func (h *Handler) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quotes, total, err := h.quoteService.ListQuotes(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, newQuoteResponse(q))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"quotes":      out,
		"total_count": total,
	})
}

// handleGetQuote returns a stored quote
func (h *Handler) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id format")
		return
	}

	q, err := h.quoteService.GetQuote(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newQuoteResponse(q))
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", key)
	}
	return v, nil
}

// authMiddleware requires the API token in the Authorization header
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.Enabled(h.apiToken) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		if !auth.TokenMatches(header, h.apiToken) {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("http %s %s status=%d duration=%s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
