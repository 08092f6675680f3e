package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// reportingService implements the ReportingSvc interface. Reports are plain
// grouped sums over the transaction table; the snapshot cache is not involved.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	categoryRepo  portsrepo.CategoryRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, categoryRepo portsrepo.CategoryRepository) portssvc.ReportingSvc {
	return &reportingService{
		reportingRepo: reportingRepo,
		categoryRepo:  categoryRepo,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GetCashflow returns per-bucket income/expense/net over [from, to]. Daily
// and monthly series group in SQL; weekly series regroup daily rows into
// 7-day strides here since date_trunc weeks do not align with the range start.
func (s *reportingService) GetCashflow(ctx context.Context, userID string, from, to time.Time, granularity dates.Granularity) ([]domain.CashflowPoint, error) {
	from = dates.Normalize(from)
	to = dates.Normalize(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	buckets := dates.Buckets(from, to, granularity)
	if len(buckets) == 0 {
		return []domain.CashflowPoint{}, nil
	}

	queryFrom := buckets[0].Start
	bucketUnit := "day"
	if granularity == dates.Monthly {
		bucketUnit = "month"
	}
	rows, err := s.reportingRepo.GetCashflowData(ctx, userID, queryFrom, to, bucketUnit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cashflow data", slog.String("user_id", userID))
		return nil, err
	}

	byDate := make(map[time.Time]domain.CashflowPoint, len(rows))
	for _, row := range rows {
		byDate[dates.Normalize(row.BucketStart)] = row
	}

	points := make([]domain.CashflowPoint, 0, len(buckets))
	for _, b := range buckets {
		income := decimal.Zero
		expense := decimal.Zero
		if granularity == dates.Monthly {
			if row, ok := byDate[b.Start]; ok {
				income = row.Income
				expense = row.Expense
			}
		} else {
			for d := b.Start; !d.After(b.End); d = d.AddDate(0, 0, 1) {
				if row, ok := byDate[d]; ok {
					income = income.Add(row.Income)
					expense = expense.Add(row.Expense)
				}
			}
		}
		points = append(points, domain.CashflowPoint{
			BucketStart: b.Start,
			Income:      income,
			Expense:     expense,
			Net:         income.Sub(expense),
		})
	}
	return points, nil
}

// GetPeriodComparison contrasts [from, to] with the preceding range of the
// same length in days.
func (s *reportingService) GetPeriodComparison(ctx context.Context, userID string, from, to time.Time) (*domain.PeriodComparison, error) {
	from = dates.Normalize(from)
	to = dates.Normalize(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	lengthDays := int(to.Sub(from).Hours()/24) + 1
	prevTo := from.AddDate(0, 0, -1)
	prevFrom := prevTo.AddDate(0, 0, -(lengthDays - 1))

	current, err := s.periodTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	previous, err := s.periodTotals(ctx, userID, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	return &domain.PeriodComparison{Current: *current, Previous: *previous}, nil
}

func (s *reportingService) periodTotals(ctx context.Context, userID string, from, to time.Time) (*domain.PeriodTotals, error) {
	income, expense, err := s.reportingRepo.GetPeriodTotals(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load period totals", slog.String("user_id", userID))
		return nil, err
	}
	return &domain.PeriodTotals{
		From:    from,
		To:      to,
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}, nil
}

// GetCategorySummary returns per-category net amounts and counts over
// [from, to], largest movements first. Transactions without a category are
// not represented.
func (s *reportingService) GetCategorySummary(ctx context.Context, userID string, from, to time.Time, accountID *string) ([]domain.CategorySummaryRow, error) {
	from = dates.Normalize(from)
	to = dates.Normalize(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	aggregation, err := s.reportingRepo.GetCategoryAggregation(ctx, userID, from, to, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category aggregation", slog.String("user_id", userID))
		return nil, err
	}
	if len(aggregation) == 0 {
		return []domain.CategorySummaryRow{}, nil
	}

	categories, err := s.categoryRepo.FindCategoriesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, cat := range categories {
		byID[cat.CategoryID] = cat
	}

	rows := make([]domain.CategorySummaryRow, 0, len(aggregation))
	for categoryID, agg := range aggregation {
		cat, ok := byID[categoryID]
		if !ok {
			// Aggregation can reference a soft-deleted category.
			cat = domain.Category{CategoryID: categoryID, Name: "(deleted)", Type: domain.ExpenseCategory}
		}
		rows = append(rows, domain.CategorySummaryRow{
			CategoryID:       categoryID,
			Name:             cat.Name,
			Type:             cat.Type,
			NetAmount:        agg.NetSignedAmount,
			TransactionCount: agg.TransactionCount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := rows[i].NetAmount.Abs(), rows[j].NetAmount.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}
