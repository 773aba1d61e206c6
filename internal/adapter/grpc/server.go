package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/grpc/leaseholdv1"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/quote"
)

// Server implements the PremiumService gRPC server
type Server struct {
	leaseholdv1.UnimplementedPremiumServiceServer

	QuoteService   *quote.QuoteService
	WaitingPeriods []float64 // Used when a ProjectWaitingCost request lists no waits
}

// NewServer creates a new gRPC server instance
func NewServer(quoteService *quote.QuoteService, waitingPeriods []float64) *Server {
	return &Server{
		QuoteService:   quoteService,
		WaitingPeriods: waitingPeriods,
	}
}

// ComputePremium handles the ComputePremium RPC
func (s *Server) ComputePremium(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := parseQuoteRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	q, err := s.QuoteService.Quote(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(quoteToMap(q))
}

// GetQuote handles the GetQuote RPC
func (s *Server) GetQuote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Parse quote ID
	id, err := uuid.Parse(stringField(req, "id"))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id format: %v", err)
	}

	q, err := s.QuoteService.GetQuote(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(quoteToMap(q))
}

// ListQuotes handles the ListQuotes RPC
func (s *Server) ListQuotes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := intField(req, "limit")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	offset, err := intField(req, "offset")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	quotes, total, err := s.QuoteService.ListQuotes(ctx, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, quoteToMap(q))
	}

	return newStruct(map[string]interface{}{
		"quotes":      items,
		"total_count": total,
	})
}

// GetRelativity handles the GetRelativity RPC
func (s *Server) GetRelativity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	years, err := numberField(req, "years")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	rate, err := s.QuoteService.Relativity(years)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"years":      years,
		"relativity": rate,
	})
}

// ProjectWaitingCost handles the ProjectWaitingCost RPC
func (s *Server) ProjectWaitingCost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := parseQuoteRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	waits, err := numberListField(req, "waits")
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	if len(waits) == 0 {
		waits = s.WaitingPeriods
	}

	costs, err := s.QuoteService.ProjectWaitingCost(input, waits)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(costs))
	for _, c := range costs {
		items = append(items, map[string]interface{}{
			"wait_years":      c.WaitYears,
			"remaining_years": c.RemainingYears,
			"total":           c.Total.String(),
		})
	}

	return newStruct(map[string]interface{}{
		"waiting_costs": items,
	})
}

// parseQuoteRequest reads the valuation fields shared by ComputePremium and ProjectWaitingCost
func parseQuoteRequest(req *structpb.Struct) (quote.QuoteRequest, error) {
	var out quote.QuoteRequest

	numbers := []struct {
		key string
		dst *float64
	}{
		{"property_value", &out.PropertyValue},
		{"remaining_years", &out.RemainingYears},
		{"remaining_months", &out.RemainingMonths},
		{"annual_ground_rent", &out.AnnualGroundRent},
		{"deferment_rate_pct", &out.DefermentRatePct},
		{"fees", &out.Fees},
	}
	for _, n := range numbers {
		v, err := numberField(req, n.key)
		if err != nil {
			return quote.QuoteRequest{}, err
		}
		*n.dst = v
	}

	out.Strategy = domain.Strategy(strings.ToUpper(stringField(req, "strategy")))

	return out, nil
}

// numberField reads a numeric field; missing fields read as 0 and numeric strings are accepted
func numberField(req *structpb.Struct, key string) (float64, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue, nil
	case *structpb.Value_StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(kind.StringValue), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s format: %v", key, err)
		}
		return parsed, nil
	case *structpb.Value_NullValue:
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid %s: must be a number", key)
	}
}

// intField reads a whole-number field
func intField(req *structpb.Struct, key string) (int, error) {
	v, err := numberField(req, key)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid %s: must be a whole number", key)
	}
	return int(v), nil
}

// numberListField reads a list of numbers; a missing field reads as an empty list
func numberListField(req *structpb.Struct, key string) ([]float64, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}

	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("invalid %s: must be a list of numbers", key)
	}

	out := make([]float64, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		n, ok := item.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("invalid %s: must be a list of numbers", key)
		}
		out = append(out, n.NumberValue)
	}
	return out, nil
}

// stringField reads a string field; missing or non-string fields read as ""
func stringField(req *structpb.Struct, key string) string {
	return strings.TrimSpace(req.GetFields()[key].GetStringValue())
}

// quoteToMap converts a domain Quote to its wire representation
// Currency amounts are sent as decimal strings
func quoteToMap(q *domain.Quote) map[string]interface{} {
	return map[string]interface{}{
		"id":         q.ID.String(),
		"created_at": q.CreatedAt.UTC().Format(time.RFC3339Nano),
		"strategy":   string(q.Strategy),
		"input": map[string]interface{}{
			"property_value":     q.Input.PropertyValue,
			"remaining_years":    q.Input.RemainingYears,
			"annual_ground_rent": q.Input.AnnualGroundRent,
			"deferment_rate_pct": q.Input.DefermentRatePct,
			"relativity_rate":    q.Input.RelativityRate,
			"fees":               q.Input.Fees,
		},
		"result": map[string]interface{}{
			"ground_rent_compensation": q.Result.GroundRentCompensation.String(),
			"reversion_value":          q.Result.ReversionValue.String(),
			"marriage_value":           q.Result.MarriageValue.String(),
			"fees":                     q.Result.Fees.String(),
			"total":                    q.Result.Total.String(),
		},
		"current_lease_value":  q.CurrentLeaseValue.String(),
		"extended_lease_value": q.ExtendedLeaseValue.String(),
	}
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	if errors.Is(err, domain.ErrNotFound) {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
