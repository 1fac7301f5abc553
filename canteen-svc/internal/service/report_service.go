package service

import (
	"context"
	"sort"
	"time"

	"canteen/canteen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const topItemsLimit = 5

// BuildDailyReport summarizes the orders created on date (YYYY-MM-DD in loc).
// Revenue counts completed orders only and is attributed to the creation day.
func BuildDailyReport(orders []domain.Order, date string, loc *time.Location) domain.DailyReport {
	report := domain.DailyReport{
		Date:              date,
		Revenue:           decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TopItems:          []domain.ItemSales{},
	}

	index := map[string]int{}
	var sales []domain.ItemSales
	for _, order := range ordersOnDay(orders, date, loc) {
		report.TotalOrders++
		switch order.Status {
		case domain.StatusCancelled:
			report.CancelledOrders++
			continue
		case domain.StatusCompleted:
		default:
			continue
		}

		report.CompletedOrders++
		report.Revenue = report.Revenue.Add(order.Total)
		for _, item := range order.Items {
			key := item.ItemID
			if key == "" {
				key = item.Name
			}
			i, ok := index[key]
			if !ok {
				i = len(sales)
				index[key] = i
				sales = append(sales, domain.ItemSales{ItemID: item.ItemID, Name: item.Name, Revenue: decimal.Zero})
			}
			sales[i].Quantity += item.Quantity
			sales[i].Revenue = sales[i].Revenue.Add(item.LineSubtotal)
		}
	}

	if report.CompletedOrders > 0 {
		report.AverageOrderValue = report.Revenue.Div(decimal.NewFromInt(int64(report.CompletedOrders))).Round(2)
	}

	// Stable sort keeps first-seen order among equal quantities.
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Quantity > sales[j].Quantity })
	if len(sales) > topItemsLimit {
		sales = sales[:topItemsLimit]
	}
	report.TopItems = append(report.TopItems, sales...)
	return report
}

// BuildDashboardStats counts the orders created on ref's day by status.
func BuildDashboardStats(orders []domain.Order, ref time.Time, loc *time.Location) domain.DashboardStats {
	day := dayKey(ref, loc)
	stats := domain.DashboardStats{Date: day}
	for _, order := range ordersOnDay(orders, day, loc) {
		stats.TotalOrders++
		switch order.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusPreparing:
			stats.Preparing++
		case domain.StatusReady:
			stats.Ready++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// ReportService recomputes every view from the full order collection; nothing is cached.
type ReportService struct {
	repo OrderRepository
	loc  *time.Location
	now  func() time.Time
}

func NewReportService(repo OrderRepository, loc *time.Location, now func() time.Time) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &ReportService{repo: repo, loc: loc, now: now}
}

// DailyReport defaults to today when date is empty.
func (s *ReportService) DailyReport(ctx context.Context, date string) (*domain.DailyReport, error) {
	if date == "" {
		date = dayKey(s.now(), s.loc)
	} else if _, err := time.ParseInLocation("2006-01-02", date, s.loc); err != nil {
		return nil, validationError("date must be YYYY-MM-DD")
	}

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, storageError("load orders", err)
	}
	report := BuildDailyReport(orders, date, s.loc)
	return &report, nil
}

func (s *ReportService) DashboardStats(ctx context.Context, ref time.Time) (*domain.DashboardStats, error) {
	if ref.IsZero() {
		ref = s.now()
	}
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, storageError("load orders", err)
	}
	stats := BuildDashboardStats(orders, ref, s.loc)
	return &stats, nil
}

var _ ReportServiceInterface = (*ReportService)(nil)
