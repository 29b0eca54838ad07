package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/pkg/logger"
)

func TestSlideService(t *testing.T) {
	svc := NewSlideService(repository.NewInMemorySlideRepository(), logger.Discard())
	ctx := context.Background()

	_, err := svc.CreateSlide(ctx, models.HeroSlideInput{Subtitle: "New"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	a, err := svc.CreateSlide(ctx, models.HeroSlideInput{TitleLine1: "Summer", ImageURL: "/uploads/hero-1.jpg"})
	require.NoError(t, err)
	b, err := svc.CreateSlide(ctx, models.HeroSlideInput{TitleLine1: "Autumn"})
	require.NoError(t, err)
	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 1, b.SortOrder)
	assert.Nil(t, b.ImageURL)

	slides, err := svc.ReorderSlides(ctx, []string{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, "Autumn", slides[0].TitleLine1)

	_, err = svc.ReorderSlides(ctx, []string{a.ID, "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.ReorderSlides(ctx, []string{a.ID, a.ID})
	assert.ErrorAs(t, err, &verr)

	c, err := svc.CreateSlide(ctx, models.HeroSlideInput{TitleLine1: "Winter"})
	require.NoError(t, err)
	_, err = svc.ReorderSlides(ctx, []string{c.ID})
	assert.ErrorAs(t, err, &verr, "a partial list would leave two slides at position 0")
	slides, err = svc.ListSlides(ctx)
	require.NoError(t, err)
	for i, sl := range slides {
		assert.Equal(t, i, sl.SortOrder)
	}
	require.NoError(t, svc.DeleteSlide(ctx, c.ID))

	updated, err := svc.UpdateSlide(ctx, a.ID, models.HeroSlideInput{TitleLine1: "Summer Sale"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.SortOrder, "update keeps position")

	require.NoError(t, svc.DeleteSlide(ctx, b.ID))
	slides, err = svc.ListSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, slides, 1)
}

func TestOptionService(t *testing.T) {
	svc := NewOptionService(repository.NewInMemoryOptionRepository(), logger.Discard())
	ctx := context.Background()

	s, err := svc.Create(ctx, models.OptionSize, " S ")
	require.NoError(t, err)
	assert.Equal(t, "S", s.Name)
	assert.Equal(t, 0, s.SortOrder)

	m, err := svc.Create(ctx, models.OptionSize, "M")
	require.NoError(t, err)
	assert.Equal(t, 1, m.SortOrder)

	_, err = svc.Create(ctx, models.OptionSize, "M")
	assert.ErrorIs(t, err, repository.ErrConflict)

	var verr *ValidationError
	_, err = svc.Create(ctx, models.OptionColor, "   ")
	assert.ErrorAs(t, err, &verr)
	_, err = svc.List(ctx, "fabrics")
	assert.ErrorAs(t, err, &verr)

	for _, name := range []string{"Tops", "Dresses"} {
		_, err := svc.Create(ctx, models.OptionSubcategory, name)
		require.NoError(t, err)
	}
	subs, err := svc.List(ctx, models.OptionSubcategory)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Dresses", subs[0].Name)

	require.NoError(t, svc.Delete(ctx, models.OptionSize, s.ID))
	assert.ErrorIs(t, svc.Delete(ctx, models.OptionSize, s.ID), repository.ErrNotFound)
}

func TestReportService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// dress has 3 units and counts as low stock
	require.NoError(t, f.repos.Products.Create(ctx, &models.Product{
		Name: "Cotton Tee", Price: 15, Category: models.CategoryKids, InStock: true, StockQuantity: intPtr(12),
	}))
	for _, o := range []models.Order{
		{CustomerName: "a", CustomerPhone: "1", Status: models.OrderStatusApproved, Total: 99.99},
		{CustomerName: "b", CustomerPhone: "1", Status: models.OrderStatusApproved, Total: 50.01},
		{CustomerName: "c", CustomerPhone: "1", Status: models.OrderStatusPending, Total: 10},
		{CustomerName: "d", CustomerPhone: "1", Status: models.OrderStatusRejected, Total: 500},
	} {
		require.NoError(t, f.repos.Orders.Create(ctx, &o))
	}

	r, err := NewReportService(f.repos.Products, f.repos.Orders).StockReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, r.TotalProducts)
	assert.Equal(t, 15, r.TotalStockUnits)
	assert.Equal(t, 1, r.LowStockCount)
	assert.Equal(t, 1, r.OutOfStockCount)
	assert.Equal(t, 1, r.PendingOrders)
	assert.Equal(t, 2, r.ApprovedOrders)
	assert.Equal(t, 150.0, r.TotalRevenue)

	require.Len(t, r.LowStock, 1)
	assert.Equal(t, "dress", r.LowStock[0].ID)

	kids := r.Categories[models.CategoryKids]
	assert.Equal(t, 2, kids.Count)
	assert.Equal(t, 12, kids.TotalQty)
	assert.Equal(t, 1, kids.OutOfStock)

	require.Len(t, r.ByStock, 4)
	assert.Equal(t, "Cotton Tee", r.ByStock[3].Name)
}
