package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/repository/memory"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/config"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/premium"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/quote"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/relativity"
)

// Output is the JSON written to stdout
type Output struct {
	Strategy           string          `json:"strategy,omitempty"`
	RemainingYears     float64         `json:"remaining_years,omitempty"`
	RelativityRate     float64         `json:"relativity_rate,omitempty"`
	GroundRent         decimal.Decimal `json:"ground_rent_compensation"`
	ReversionValue     decimal.Decimal `json:"reversion_value"`
	MarriageValue      decimal.Decimal `json:"marriage_value"`
	Fees               decimal.Decimal `json:"fees"`
	Total              decimal.Decimal `json:"total"`
	CurrentLeaseValue  decimal.Decimal `json:"current_lease_value"`
	ExtendedLeaseValue decimal.Decimal `json:"extended_lease_value"`
	WaitingCosts       []WaitingCost   `json:"waiting_costs,omitempty"`
}

type WaitingCost struct {
	WaitYears      float64         `json:"wait_years"`
	RemainingYears float64         `json:"remaining_years"`
	Total          decimal.Decimal `json:"total"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("leasecalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	value := fs.Float64("value", 0, "Property value with a long (extended) lease")
	years := fs.Float64("years", 0, "Whole years remaining on the lease")
	months := fs.Float64("months", 0, "Additional months remaining on the lease")
	groundRent := fs.Float64("ground-rent", 0, "Annual ground rent")
	deferment := fs.Float64("deferment", 0, "Deferment rate in percent (0 selects the standard rate)")
	fees := fs.Float64("fees", 0, "Flat fees added by the table strategy")
	strategy := fs.String("strategy", string(domain.StrategyFormula), "FORMULA or TABLE")
	wait := fs.String("wait", "", "Comma separated waiting periods in years, e.g. 3,5,10")
	configPath := fs.String("config", os.Getenv("CONFIG_FILE"), "Optional YAML config file")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath, "")
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to load config: %v", err))
	}

	waits, err := parseWaits(*wait)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	service, err := newService(cfg)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	req := quote.QuoteRequest{
		PropertyValue:    *value,
		RemainingYears:   *years,
		RemainingMonths:  *months,
		AnnualGroundRent: *groundRent,
		DefermentRatePct: *deferment,
		Fees:             *fees,
		Strategy:         domain.Strategy(strings.ToUpper(strings.TrimSpace(*strategy))),
	}

	q, err := service.Quote(context.Background(), req)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	output := Output{
		Strategy:           string(q.Strategy),
		RemainingYears:     q.Input.RemainingYears,
		RelativityRate:     q.Input.RelativityRate,
		GroundRent:         q.Result.GroundRentCompensation,
		ReversionValue:     q.Result.ReversionValue,
		MarriageValue:      q.Result.MarriageValue,
		Fees:               q.Result.Fees,
		Total:              q.Result.Total,
		CurrentLeaseValue:  q.CurrentLeaseValue,
		ExtendedLeaseValue: q.ExtendedLeaseValue,
	}

	if len(waits) > 0 {
		costs, err := service.ProjectWaitingCost(req, waits)
		if err != nil {
			return writeError(stdout, err.Error())
		}
		for _, c := range costs {
			output.WaitingCosts = append(output.WaitingCosts, WaitingCost{
				WaitYears:      c.WaitYears,
				RemainingYears: c.RemainingYears,
				Total:          c.Total,
			})
		}
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

// newService builds a quote service backed by an in-memory repository
func newService(cfg config.Config) (*quote.QuoteService, error) {
	table, err := premium.NewTableInterpolated(cfg.Valuation.TableFallbackRatePct)
	if err != nil {
		return nil, err
	}

	return quote.NewQuoteService(
		memory.NewQuoteRepository(),
		relativity.DefaultCurve(),
		quote.Settings{
			StandardDefermentRatePct: cfg.Valuation.StandardDefermentRatePct,
			MinLeaseYears:            cfg.Valuation.MinLeaseYears,
			MaxLeaseYears:            cfg.Valuation.MaxLeaseYears,
			WaitingUpliftPct:         cfg.Valuation.WaitingUpliftPct,
		},
		premium.NewFormulaBased(),
		table,
	), nil
}

func parseWaits(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	waits := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid wait %q: %v", p, err)
		}
		waits = append(waits, v)
	}
	return waits, nil
}

func writeError(stdout io.Writer, msg string) int {
	outputBytes, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}
