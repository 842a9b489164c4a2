package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"filmledger/internal/apperrors"
	"filmledger/internal/models"
	"filmledger/internal/utils/logger"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PercentToFraction converts a UI percentage in [0,100] to a fraction
// rounded to 4 decimal places, half away from zero.
func PercentToFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.DivRound(hundred, 4)
}

// Assumptions are the calculator inputs not stored on the movie itself.
// Fee and tax are fractions in [0,1], already at 4 dp.
type Assumptions struct {
	DistributionFeeFraction decimal.Decimal
	TaxFraction             decimal.Decimal
	ProductionBudget        decimal.Decimal
	MarketingBudget         decimal.Decimal
}

// CalculationResult is the full projection output. Monetary figures carry
// 2 decimal places, ROI 6.
type CalculationResult struct {
	BoxOffice        decimal.Decimal `json:"boxOffice"`
	ProductionBudget decimal.Decimal `json:"productionBudget"`
	MarketingBudget  decimal.Decimal `json:"marketingBudget"`
	DistributionFee  decimal.Decimal `json:"distributionFeeFraction"`
	TaxFraction      decimal.Decimal `json:"taxFraction"`
	ActorsSalary     decimal.Decimal `json:"actorsSalary"`
	StudioRevenue    decimal.Decimal `json:"studioRevenue"`
	ProfitBeforeTax  decimal.Decimal `json:"profitBeforeTax"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	ROI              decimal.Decimal `json:"roi"`
}

// Calculate projects studio revenue, tax, net profit and ROI for one movie.
// Pure: identical inputs always yield bit-identical output. Tax is never
// levied on a loss, and ROI is zero when nothing was invested.
func Calculate(boxOffice, actorsSalary decimal.Decimal, a Assumptions) CalculationResult {
	studioRevenue := boxOffice.Mul(one.Sub(a.DistributionFeeFraction))
	costs := a.ProductionBudget.Add(a.MarketingBudget).Add(actorsSalary)
	profitBeforeTax := studioRevenue.Sub(costs)

	taxAmount := decimal.Zero
	if profitBeforeTax.IsPositive() {
		taxAmount = profitBeforeTax.Mul(a.TaxFraction)
	}
	netProfit := profitBeforeTax.Sub(taxAmount)

	roi := decimal.Zero.Round(6)
	if costs.IsPositive() {
		roi = netProfit.DivRound(costs, 6)
	}

	return CalculationResult{
		BoxOffice:        boxOffice.Round(2),
		ProductionBudget: a.ProductionBudget.Round(2),
		MarketingBudget:  a.MarketingBudget.Round(2),
		DistributionFee:  a.DistributionFeeFraction,
		TaxFraction:      a.TaxFraction,
		ActorsSalary:     actorsSalary.Round(2),
		StudioRevenue:    studioRevenue.Round(2),
		ProfitBeforeTax:  profitBeforeTax.Round(2),
		TaxAmount:        taxAmount.Round(2),
		NetProfit:        netProfit.Round(2),
		ROI:              roi,
	}
}

// CalculationInput is what the API accepts for a projection request.
// Percentages are 0-100; ProductionBudget falls back to the movie's stored
// budget when absent.
type CalculationInput struct {
	DistributionFeePercent decimal.Decimal  `json:"distributionFeePercent"`
	TaxPercent             decimal.Decimal  `json:"taxPercent"`
	ProductionBudget       *decimal.Decimal `json:"productionBudget"`
	MarketingBudget        decimal.Decimal  `json:"marketingBudget"`
}

type CalculationService struct {
	stores Stores
	log    *logger.Logger
}

func NewCalculationService(stores Stores) *CalculationService {
	return &CalculationService{stores: stores, log: logger.New("calculation-service")}
}

func (s *CalculationService) validate(input *CalculationInput) error {
	if input.DistributionFeePercent.IsNegative() || input.DistributionFeePercent.GreaterThan(hundred) {
		return apperrors.ValidationFailed("distributionFeePercent must be between 0 and 100")
	}
	if input.TaxPercent.IsNegative() || input.TaxPercent.GreaterThan(hundred) {
		return apperrors.ValidationFailed("taxPercent must be between 0 and 100")
	}
	if input.ProductionBudget != nil && input.ProductionBudget.IsNegative() {
		return apperrors.ValidationFailed("productionBudget must not be negative")
	}
	if input.MarketingBudget.IsNegative() {
		return apperrors.ValidationFailed("marketingBudget must not be negative")
	}
	return nil
}

// aggregateSalaries sums the cast salaries for a movie, treating null
// salaries as zero.
func (s *CalculationService) aggregateSalaries(ctx context.Context, movieID string) (decimal.Decimal, error) {
	rows, err := s.stores.Casts().ListByMovie(ctx, movieID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range rows {
		if rows[i].Salary.Valid {
			total = total.Add(rows[i].Salary.Decimal)
		}
	}
	return total, nil
}

// Submit runs a projection for the movie and appends a CalculationLog.
// Read-only principals are rejected before anything is computed.
func (s *CalculationService) Submit(ctx context.Context, principal models.Principal, movieSvc *MovieService, movieID string, input *CalculationInput) (*models.CalculationLog, error) {
	if err := requireMutable(principal); err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	movie, err := movieSvc.GetForView(ctx, movieID, principal)
	if err != nil {
		return nil, err
	}

	salary, err := s.aggregateSalaries(ctx, movieID)
	if err != nil {
		return nil, err
	}
	production := movie.Budget
	if input.ProductionBudget != nil {
		production = *input.ProductionBudget
	}
	result := Calculate(movie.BoxOffice, salary, Assumptions{
		DistributionFeeFraction: PercentToFraction(input.DistributionFeePercent),
		TaxFraction:             PercentToFraction(input.TaxPercent),
		ProductionBudget:        production,
		MarketingBudget:         input.MarketingBudget,
	})

	entry := &models.CalculationLog{
		MovieID:                movieID,
		CreatedBy:              principal.Username,
		BoxOffice:              result.BoxOffice,
		ProductionBudget:       result.ProductionBudget,
		MarketingBudget:        result.MarketingBudget,
		DistributionFeePercent: result.DistributionFee,
		TaxPercent:             result.TaxFraction,
		ActorsSalary:           result.ActorsSalary,
		StudioRevenue:          result.StudioRevenue,
		ProfitBeforeTax:        result.ProfitBeforeTax,
		TaxAmount:              result.TaxAmount,
		NetProfit:              result.NetProfit,
		ROI:                    result.ROI,
	}
	if err := s.stores.CalculationLogs().Create(ctx, entry); err != nil {
		return nil, s.log.Error("failed to persist calculation log", err)
	}
	return entry, nil
}

// GetLogs lists the movie's calculation history newest-first. Admins see
// every log; everybody else sees their own.
func (s *CalculationService) GetLogs(ctx context.Context, principal models.Principal, movieSvc *MovieService, movieID string) ([]models.CalculationLog, error) {
	if _, err := movieSvc.GetForView(ctx, movieID, principal); err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return s.stores.CalculationLogs().ListByMovie(ctx, movieID)
	}
	return s.stores.CalculationLogs().ListByMovieAndCreator(ctx, movieID, principal.Username)
}

// ClearLogs deletes the movie's calculation history. Admins clear all of
// it; everybody else clears only the entries they created.
func (s *CalculationService) ClearLogs(ctx context.Context, principal models.Principal, movieSvc *MovieService, movieID string) error {
	if err := requireMutable(principal); err != nil {
		return err
	}
	if _, err := movieSvc.GetForView(ctx, movieID, principal); err != nil {
		return err
	}
	if principal.IsAdmin() {
		return s.stores.CalculationLogs().DeleteByMovie(ctx, movieID)
	}
	return s.stores.CalculationLogs().DeleteByMovieAndCreator(ctx, movieID, principal.Username)
}

// Prune removes logs older than the cutoff and reports how many rows went.
// The retention task calls this on a schedule.
func (s *CalculationService) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	return s.stores.CalculationLogs().DeleteOlderThan(ctx, time.Now().Add(-maxAge))
}
