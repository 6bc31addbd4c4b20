package services

import (
	"context"
	"sort"
	"time"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// DefaultTopN is how many rows the ranking reports return.
const DefaultTopN = 10

// ReportService aggregates non-cancelled orders. It never writes.
type ReportService interface {
	Sales(ctx context.Context, period models.SalesPeriod) (*models.SalesReport, error)
	TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error)
	TopCategories(ctx context.Context, limit int) ([]models.CategorySales, error)
}

type reportServiceImpl struct {
	orders   repository.OrderRepo
	products repository.ProductRepo
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewReportService(orders repository.OrderRepo, products repository.ProductRepo, loc *time.Location, logger *zap.Logger) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportServiceImpl{orders: orders, products: products, loc: loc, logger: logger, now: time.Now}
}

func (s *reportServiceImpl) Sales(ctx context.Context, period models.SalesPeriod) (*models.SalesReport, error) {
	if !period.Valid() {
		return nil, apperrors.BadRequest("Invalid period")
	}
	now := s.now().In(s.loc)
	from := PeriodStart(period, now)

	orders, err := s.orders.Find(ctx, repository.OrderFilter{Since: from, ExcludeStatus: models.StatusCancelled})
	if err != nil {
		s.logger.Error("Failed to load orders for sales report", zap.String("period", string(period)), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	report := SummarizeSales(orders, period, from, now)
	return &report, nil
}

func (s *reportServiceImpl) TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error) {
	orders, err := s.completedOrders(ctx)
	if err != nil {
		return nil, err
	}
	return RankProducts(orders, limit), nil
}

func (s *reportServiceImpl) TopCategories(ctx context.Context, limit int) ([]models.CategorySales, error) {
	orders, err := s.completedOrders(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := map[string]bool{}
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve products for category report", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	categoryOf := make(map[string]string, len(products))
	for id, p := range products {
		categoryOf[id] = p.Category
	}
	return RankCategories(orders, categoryOf, limit), nil
}

func (s *reportServiceImpl) completedOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.Find(ctx, repository.OrderFilter{ExcludeStatus: models.StatusCancelled})
	if err != nil {
		s.logger.Error("Failed to load orders for report", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// PeriodStart returns the beginning of a reporting window ending at now.
// Daily starts at local midnight, weekly seven days back and monthly one
// calendar month back.
func PeriodStart(period models.SalesPeriod, now time.Time) time.Time {
	switch period {
	case models.PeriodDaily:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case models.PeriodWeekly:
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, -1, 0)
	}
}

func SummarizeSales(orders []models.Order, period models.SalesPeriod, from, to time.Time) models.SalesReport {
	report := models.SalesReport{Period: period, From: from, To: to, TotalOrders: len(orders)}
	for _, o := range orders {
		report.TotalSales += o.Total
	}
	if report.TotalOrders > 0 {
		report.AvgOrderValue = report.TotalSales / float64(report.TotalOrders)
	}
	return report
}

// RankProducts groups line items by product name and orders them by units
// sold. Ties keep first-seen order.
func RankProducts(orders []models.Order, limit int) []models.ProductSales {
	index := map[string]int{}
	var rows []models.ProductSales
	for _, o := range orders {
		for _, item := range o.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(rows)
				index[item.Name] = i
				rows = append(rows, models.ProductSales{Name: item.Name})
			}
			rows[i].Quantity += item.Quantity
			rows[i].Revenue += item.Subtotal()
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Quantity > rows[b].Quantity })
	return truncate(rows, limit)
}

// RankCategories groups line items by the current category of their product
// and orders them by revenue. Orders counts distinct orders per category.
func RankCategories(orders []models.Order, categoryOf map[string]string, limit int) []models.CategorySales {
	index := map[string]int{}
	var rows []models.CategorySales
	for _, o := range orders {
		counted := map[string]bool{}
		for _, item := range o.Items {
			name := categoryOf[item.ProductID]
			if name == "" {
				name = models.UncategorizedLabel
			}
			i, ok := index[name]
			if !ok {
				i = len(rows)
				index[name] = i
				rows = append(rows, models.CategorySales{Name: name})
			}
			rows[i].Quantity += item.Quantity
			rows[i].Revenue += item.Subtotal()
			if !counted[name] {
				counted[name] = true
				rows[i].Orders++
			}
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Revenue > rows[b].Revenue })
	return truncate(rows, limit)
}

func truncate[T any](rows []T, limit int) []T {
	if rows == nil {
		rows = []T{}
	}
	if limit <= 0 {
		limit = DefaultTopN
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
