package quote

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/relativity"
)

// MaxListLimit is the largest page ListQuotes returns
const MaxListLimit = 100

// Settings holds the valuation settings the service applies to every request
type Settings struct {
	StandardDefermentRatePct float64 // Used when a request leaves the deferment rate at zero
	MinLeaseYears            float64
	MaxLeaseYears            float64
	WaitingUpliftPct         float64 // Added to projected premiums for postponed extensions
}

// QuoteRequest represents the input for computing a premium quote
type QuoteRequest struct {
	PropertyValue    float64
	RemainingYears   float64
	RemainingMonths  float64
	AnnualGroundRent float64
	DefermentRatePct float64 // Zero selects the standard deferment rate
	Fees             float64
	Strategy         domain.Strategy // Empty selects the formula strategy
}

// QuoteService is the entry point to the valuation engine
type QuoteService struct {
	QuoteRepo  domain.QuoteRepository
	Curve      *relativity.Curve
	Estimators map[domain.Strategy]domain.PremiumEstimator
	Settings   Settings
}

// NewQuoteService creates a new QuoteService instance
func NewQuoteService(
	quoteRepo domain.QuoteRepository,
	curve *relativity.Curve,
	settings Settings,
	estimators ...domain.PremiumEstimator,
) *QuoteService {
	byStrategy := make(map[domain.Strategy]domain.PremiumEstimator, len(estimators))
	for _, estimator := range estimators {
		byStrategy[estimator.Strategy()] = estimator
	}

	return &QuoteService{
		QuoteRepo:  quoteRepo,
		Curve:      curve,
		Estimators: byStrategy,
		Settings:   settings,
	}
}

// Quote computes a premium quote and stores it
// Logic:
//  1. Resolve the remaining term (years + months/12) and clamp it to the configured range
//  2. Apply the standard deferment rate when the request does not set one
//  3. Look up the relativity for the remaining term
//  4. Build a validated ValuationInput
//  5. Estimate with the requested strategy
//  6. Persist the quote
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*domain.Quote, error) {
	strategy, input, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	estimator, ok := s.Estimators[strategy]
	if !ok {
		return nil, domain.InvalidInputf("invalid strategy: %s is not configured", strategy)
	}

	// 5. Estimate
	result := estimator.Estimate(input)

	quote := &domain.Quote{
		ID:                 uuid.New(),
		CreatedAt:          time.Now(),
		Strategy:           strategy,
		Input:              input,
		Result:             result,
		CurrentLeaseValue:  decimal.NewFromFloat(input.PropertyValue * input.RelativityRate).Round(0),
		ExtendedLeaseValue: decimal.NewFromFloat(input.PropertyValue).Round(0),
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	// 6. Persist
	if err := s.QuoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

// GetQuote retrieves a stored quote by its ID
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	return s.QuoteRepo.GetByID(ctx, id)
}

// ListQuotes returns a page of stored quotes, newest first, with the total count
func (s *QuoteService) ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, int, error) {
	if limit <= 0 {
		return nil, 0, domain.InvalidInputf("limit must be positive")
	}
	if limit > MaxListLimit {
		return nil, 0, domain.InvalidInputf("limit must not exceed %d", MaxListLimit)
	}
	if offset < 0 {
		return nil, 0, domain.InvalidInputf("offset must be non-negative")
	}

	total, err := s.QuoteRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	quotes, err := s.QuoteRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	return quotes, total, nil
}

// ProjectWaitingCost estimates the premium if the extension is postponed
// Logic: for each wait, the lease is shorter by that many years (never below the
// minimum lease length), the relativity is looked up again for the shorter lease, and
// the estimated total is raised by the waiting uplift. Projections are not stored.
func (s *QuoteService) ProjectWaitingCost(req QuoteRequest, waits []float64) ([]domain.WaitingCost, error) {
	strategy, input, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	estimator, ok := s.Estimators[strategy]
	if !ok {
		return nil, domain.InvalidInputf("invalid strategy: %s is not configured", strategy)
	}

	uplift := 1 + s.Settings.WaitingUpliftPct/100
	costs := make([]domain.WaitingCost, 0, len(waits))
	for _, wait := range waits {
		if math.IsNaN(wait) || math.IsInf(wait, 0) || wait < 0 {
			return nil, domain.InvalidInputf("invalid wait: must be a non-negative number of years")
		}

		remaining := math.Max(input.RemainingYears-wait, s.Settings.MinLeaseYears)

		shorter := input
		shorter.RemainingYears = remaining
		shorter.RelativityRate = s.Curve.Rate(remaining)

		result := estimator.Estimate(shorter)
		total := result.Total.Mul(decimal.NewFromFloat(uplift)).Round(0)

		costs = append(costs, domain.WaitingCost{
			WaitYears:      wait,
			RemainingYears: remaining,
			Total:          total,
		})
	}

	return costs, nil
}

// Relativity returns the relativity fraction for the given remaining years
func (s *QuoteService) Relativity(years float64) (float64, error) {
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return 0, domain.InvalidInputf("invalid years: must be a finite number")
	}
	return s.Curve.Rate(years), nil
}

// prepare resolves the strategy and builds the validated valuation input for a request
func (s *QuoteService) prepare(req QuoteRequest) (domain.Strategy, domain.ValuationInput, error) {
	strategy, err := domain.ParseStrategy(string(req.Strategy))
	if err != nil {
		return "", domain.ValuationInput{}, err
	}

	for _, f := range []float64{req.RemainingYears, req.RemainingMonths} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", domain.ValuationInput{}, domain.InvalidInputf("invalid lease term: must be a finite number")
		}
	}

	// 1. Remaining term, clamped to the supported range
	years := req.RemainingYears + req.RemainingMonths/12
	years = math.Min(math.Max(years, s.Settings.MinLeaseYears), s.Settings.MaxLeaseYears)

	// 2. Deferment rate
	deferment := req.DefermentRatePct
	if deferment == 0 {
		deferment = s.Settings.StandardDefermentRatePct
	}

	// 3. Relativity
	rate := s.Curve.Rate(years)

	// 4. Validated input
	input, err := domain.NewValuationInput(req.PropertyValue, years, req.AnnualGroundRent, deferment, rate, req.Fees)
	if err != nil {
		return "", domain.ValuationInput{}, err
	}

	return strategy, input, nil
}
