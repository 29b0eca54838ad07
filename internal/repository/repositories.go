package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// Repositories bundles every repository the services need
type Repositories struct {
	Products ProductRepository
	Orders   OrderRepository
	Slides   SlideRepository
	Options  OptionRepository
	Settings SettingsRepository
	Admins   AdminRepository
}

// DefaultSettings are the store settings every fresh store starts with
var DefaultSettings = map[string]string{
	models.SettingDiscountPercentage:    "0",
	models.SettingFreeShippingThreshold: "100",
	models.SettingSupportPhone:          "96171786787",
	models.SettingSupportEmail:          "",
}

// NewInMemory returns repositories backed by process memory
func NewInMemory() *Repositories {
	return &Repositories{
		Products: NewInMemoryProductRepository(),
		Orders:   NewInMemoryOrderRepository(),
		Slides:   NewInMemorySlideRepository(),
		Options:  NewInMemoryOptionRepository(),
		Settings: NewInMemorySettingsRepository(DefaultSettings),
		Admins:   NewInMemoryAdminRepository(),
	}
}

// NewPostgres returns repositories backed by a pgx pool
func NewPostgres(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Products: NewPostgresProductRepository(pool),
		Orders:   NewPostgresOrderRepository(pool),
		Slides:   NewPostgresSlideRepository(pool),
		Options:  NewPostgresOptionRepository(pool),
		Settings: NewPostgresSettingsRepository(pool),
		Admins:   NewPostgresAdminRepository(pool),
	}
}
