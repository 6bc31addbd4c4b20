package models

import "time"

type SalesPeriod string

const (
	PeriodDaily   SalesPeriod = "daily"
	PeriodWeekly  SalesPeriod = "weekly"
	PeriodMonthly SalesPeriod = "monthly"
)

func (p SalesPeriod) Valid() bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodMonthly
}

// Label is the human heading used in reports.
func (p SalesPeriod) Label() string {
	switch p {
	case PeriodDaily:
		return "Today"
	case PeriodWeekly:
		return "This Week"
	default:
		return "This Month"
	}
}

type SalesReport struct {
	Period        SalesPeriod `json:"period"`
	From          time.Time   `json:"from"`
	To            time.Time   `json:"to"`
	TotalSales    float64     `json:"totalSales"`
	TotalOrders   int         `json:"totalOrders"`
	AvgOrderValue float64     `json:"avgOrderValue"`
}

type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type CategorySales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
}

// UncategorizedLabel groups items whose product no longer resolves.
const UncategorizedLabel = "Uncategorized"

type AdminStats struct {
	TotalCustomers int64 `json:"totalCustomers"`
	TotalProducts  int64 `json:"totalProducts"`
	TotalOrders    int64 `json:"totalOrders"`
	PendingOrders  int64 `json:"pendingOrders"`
}
