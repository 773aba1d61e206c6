package quote

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/premium"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/relativity"
)

// MockQuoteRepository is a mock implementation of QuoteRepository for testing
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var testSettings = Settings{
	StandardDefermentRatePct: 5,
	MinLeaseYears:            1,
	MaxLeaseYears:            120,
	WaitingUpliftPct:         2.5,
}

func newTestService(t *testing.T, repo domain.QuoteRepository) *QuoteService {
	t.Helper()
	table, err := premium.NewTableInterpolated(testSettings.StandardDefermentRatePct)
	require.NoError(t, err)
	return NewQuoteService(repo, relativity.DefaultCurve(), testSettings, premium.NewFormulaBased(), table)
}

func baselineRequest() QuoteRequest {
	return QuoteRequest{
		PropertyValue:    500000,
		RemainingYears:   70,
		AnnualGroundRent: 500,
		DefermentRatePct: 5,
	}
}

func TestQuote_FormulaScenario(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Quote")).Return(nil)

	quote, err := service.Quote(ctx, baselineRequest())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, quote.ID)
	assert.False(t, quote.CreatedAt.IsZero())
	assert.Equal(t, domain.StrategyFormula, quote.Strategy)
	assert.Equal(t, 0.898, quote.Input.RelativityRate)

	assert.True(t, quote.Result.GroundRentCompensation.Equal(decimal.NewFromInt(9671)))
	assert.True(t, quote.Result.ReversionValue.Equal(decimal.NewFromInt(16433)))
	assert.True(t, quote.Result.MarriageValue.Equal(decimal.NewFromInt(12448)))
	assert.True(t, quote.Result.Total.Equal(decimal.NewFromInt(38552)))

	// Short lease value vs extended value
	assert.True(t, quote.CurrentLeaseValue.Equal(decimal.NewFromInt(449000)), "got %s", quote.CurrentLeaseValue)
	assert.True(t, quote.ExtendedLeaseValue.Equal(decimal.NewFromInt(500000)))

	mockRepo.AssertExpectations(t)
}

func TestQuote_TableScenario(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(q *domain.Quote) bool {
		return q.Strategy == domain.StrategyTable
	})).Return(nil)

	req := baselineRequest()
	req.Strategy = domain.StrategyTable
	req.Fees = 1500

	quote, err := service.Quote(ctx, req)

	require.NoError(t, err)
	assert.True(t, quote.Result.GroundRentCompensation.Equal(decimal.NewFromInt(8192)))
	assert.True(t, quote.Result.ReversionValue.Equal(decimal.NewFromInt(16230)))
	assert.True(t, quote.Result.MarriageValue.Equal(decimal.NewFromInt(26053)))
	assert.True(t, quote.Result.Fees.Equal(decimal.NewFromInt(1500)))
	assert.True(t, quote.Result.Total.Equal(decimal.NewFromInt(51975)))

	mockRepo.AssertExpectations(t)
}

func TestQuote_StandardDefermentRate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	req := baselineRequest()
	req.DefermentRatePct = 0

	quote, err := service.Quote(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 5.0, quote.Input.DefermentRatePct)
	assert.True(t, quote.Result.Total.Equal(decimal.NewFromInt(38552)))
}

func TestQuote_MonthsAndClamping(t *testing.T) {
	tests := []struct {
		name      string
		years     float64
		months    float64
		wantYears float64
	}{
		{"years and months", 69, 6, 69.5},
		{"months only", 0, 18, 1.5},
		{"above the maximum", 150, 0, 120},
		{"zero term", 0, 0, 1},
		{"negative term", -5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockRepo := new(MockQuoteRepository)
			service := newTestService(t, mockRepo)
			mockRepo.On("Create", ctx, mock.Anything).Return(nil)

			req := baselineRequest()
			req.RemainingYears = tt.years
			req.RemainingMonths = tt.months

			quote, err := service.Quote(ctx, req)

			require.NoError(t, err)
			assert.InDelta(t, tt.wantYears, quote.Input.RemainingYears, 1e-12)
		})
	}
}

func TestQuote_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *QuoteRequest)
		errMsg string
	}{
		{"zero property value", func(r *QuoteRequest) { r.PropertyValue = 0 }, "property value must be positive"},
		{"negative ground rent", func(r *QuoteRequest) { r.AnnualGroundRent = -1 }, "annual ground rent must not be negative"},
		{"deferment above 100", func(r *QuoteRequest) { r.DefermentRatePct = 120 }, "deferment rate must be between 0 and 100 percent"},
		{"NaN years", func(r *QuoteRequest) { r.RemainingYears = math.NaN() }, "invalid lease term"},
		{"unknown strategy", func(r *QuoteRequest) { r.Strategy = "GUESS" }, "invalid strategy"},
		{"negative fees", func(r *QuoteRequest) { r.Fees = -10 }, "fees must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockQuoteRepository)
			service := newTestService(t, mockRepo)

			req := baselineRequest()
			tt.mutate(&req)

			_, err := service.Quote(context.Background(), req)

			assert.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errMsg)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestQuote_StrategyNotConfigured(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := NewQuoteService(mockRepo, relativity.DefaultCurve(), testSettings, premium.NewFormulaBased())

	req := baselineRequest()
	req.Strategy = domain.StrategyTable

	_, err := service.Quote(context.Background(), req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TABLE is not configured")
}

func TestQuote_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("failed to insert quote: connection refused"))

	_, err := service.Quote(ctx, baselineRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetQuote(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	id := uuid.New()
	stored := &domain.Quote{ID: id, Strategy: domain.StrategyFormula}
	mockRepo.On("GetByID", ctx, id).Return(stored, nil)

	quote, err := service.GetQuote(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, stored, quote)

	missing := uuid.New()
	mockRepo.On("GetByID", ctx, missing).Return(nil, errors.New("quote not found"))

	_, err = service.GetQuote(ctx, missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListQuotes(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	page := []*domain.Quote{{ID: uuid.New()}, {ID: uuid.New()}}
	mockRepo.On("Count", ctx).Return(7, nil)
	mockRepo.On("List", ctx, 2, 4).Return(page, nil)

	quotes, total, err := service.ListQuotes(ctx, 2, 4)

	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, quotes, 2)
	mockRepo.AssertExpectations(t)
}

func TestListQuotes_InvalidPagination(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	_, _, err := service.ListQuotes(context.Background(), 0, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be positive")

	_, _, err = service.ListQuotes(context.Background(), 10, -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offset must be non-negative")

	_, _, err = service.ListQuotes(context.Background(), MaxListLimit+1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "limit must not exceed 100")

	_, _, err = service.ListQuotes(context.Background(), math.MaxInt, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "Count", mock.Anything)
}

func TestProjectWaitingCost(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := newTestService(t, mockRepo)

	costs, err := service.ProjectWaitingCost(baselineRequest(), []float64{3, 5, 10, 75})

	require.NoError(t, err)
	require.Len(t, costs, 4)

	// Formula totals at 67, 65, 60 and 1 years, each raised by 2.5%
	expected := []struct {
		remaining float64
		total     int64
	}{
		{67, 45275}, // 44171 x 1.025
		{65, 49228}, // 48027 x 1.025
		{60, 59569}, // 58116 x 1.025
		{1, 488584}, // floored at the minimum lease, 476667 x 1.025
	}

	for i, want := range expected {
		assert.Equal(t, want.remaining, costs[i].RemainingYears)
		assert.True(t, costs[i].Total.Equal(decimal.NewFromInt(want.total)), "wait %v: got %s", costs[i].WaitYears, costs[i].Total)
	}

	// Waiting never makes the extension cheaper
	base, err := service.ProjectWaitingCost(baselineRequest(), []float64{0})
	require.NoError(t, err)
	for _, c := range costs {
		assert.True(t, c.Total.GreaterThanOrEqual(base[0].Total))
	}

	// Projections are not persisted
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectWaitingCost_InvalidWait(t *testing.T) {
	service := newTestService(t, new(MockQuoteRepository))

	_, err := service.ProjectWaitingCost(baselineRequest(), []float64{3, -1})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid wait")
}

func TestRelativity(t *testing.T) {
	service := newTestService(t, new(MockQuoteRepository))

	rate, err := service.Relativity(70)
	require.NoError(t, err)
	assert.Equal(t, 0.898, rate)

	_, err = service.Relativity(math.Inf(1))
	assert.Error(t, err)
}
