package service

import (
	"context"
	"sort"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/pricing"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
)

// LowStockThreshold is the highest tracked quantity still counted as low stock
const LowStockThreshold = 5

// ReportService builds the admin stock and revenue dashboard
type ReportService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewReportService(products repository.ProductRepository, orders repository.OrderRepository) *ReportService {
	return &ReportService{products: products, orders: orders}
}

func (s *ReportService) StockReport(ctx context.Context) (*models.StockReport, error) {
	products, err := s.products.List(ctx, models.ProductFilter{})
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx, "")
	if err != nil {
		return nil, err
	}

	r := &models.StockReport{
		TotalProducts: len(products),
		Categories:    make(map[models.Category]models.CategoryStock, len(models.Categories)),
		LowStock:      []models.Product{},
	}
	for _, c := range models.Categories {
		r.Categories[c] = models.CategoryStock{}
	}

	for _, p := range products {
		qty := stockOf(p)
		r.TotalStockUnits += qty

		cs := r.Categories[p.Category]
		cs.Count++
		cs.TotalQty += qty
		if !p.InStock {
			r.OutOfStockCount++
			cs.OutOfStock++
		}
		if isLowStock(p) {
			r.LowStockCount++
			cs.LowStock++
			r.LowStock = append(r.LowStock, p)
		}
		if p.Category.Valid() {
			r.Categories[p.Category] = cs
		}
	}

	r.ByStock = append([]models.Product{}, products...)
	sort.SliceStable(r.ByStock, func(i, j int) bool {
		return stockOf(r.ByStock[i]) < stockOf(r.ByStock[j])
	})
	sort.SliceStable(r.LowStock, func(i, j int) bool {
		return stockOf(r.LowStock[i]) < stockOf(r.LowStock[j])
	})

	revenue := 0.0
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusPending:
			r.PendingOrders++
		case models.OrderStatusApproved:
			r.ApprovedOrders++
			revenue += o.Total
		}
	}
	r.TotalRevenue = pricing.Round2(revenue)
	return r, nil
}

func stockOf(p models.Product) int {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}

func isLowStock(p models.Product) bool {
	qty := stockOf(p)
	return p.InStock && qty > 0 && qty <= LowStockThreshold
}
