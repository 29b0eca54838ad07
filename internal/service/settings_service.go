package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/whatsapp"
)

const settingsCacheKey = "settings:all"

// SettingsService reads and updates store-wide settings through a short-lived cache
type SettingsService struct {
	repo   repository.SettingsRepository
	cache  cache.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewSettingsService(repo repository.SettingsRepository, c cache.Store, ttl time.Duration, logger *slog.Logger) *SettingsService {
	return &SettingsService{repo: repo, cache: c, ttl: ttl, logger: logger}
}

// List returns every setting ordered by key
func (s *SettingsService) List(ctx context.Context) ([]models.StoreSetting, error) {
	var settings []models.StoreSetting
	err := s.cache.Get(ctx, settingsCacheKey, &settings)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("settings cache read failed", "error", err)
	}

	settings, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, settingsCacheKey, settings, s.ttl); err != nil {
		s.logger.Warn("settings cache write failed", "error", err)
	}
	return settings, nil
}

// Values returns the settings as a key/value map
func (s *SettingsService) Values(ctx context.Context) (map[string]string, error) {
	settings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

// Update validates and stores a new value for an existing key
func (s *SettingsService) Update(ctx context.Context, key, value string) (*models.StoreSetting, error) {
	value = strings.TrimSpace(value)
	if err := validateSetting(key, value); err != nil {
		return nil, err
	}

	setting, err := s.repo.Update(ctx, key, value)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.logger.Warn("settings cache invalidation failed", "error", err)
	}
	s.logger.Info("store setting updated", "key", key, "value", value)
	return setting, nil
}

// Seed writes a setting from a seed document. Unlike Update it creates the row
// when missing, but only for keys the store knows about.
func (s *SettingsService) Seed(ctx context.Context, key, value string) error {
	if _, ok := repository.DefaultSettings[key]; !ok {
		return invalid(key, "is not a known setting")
	}
	value = strings.TrimSpace(value)
	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.logger.Warn("settings cache invalidation failed", "error", err)
	}
	return nil
}

func validateSetting(key, value string) error {
	switch key {
	case models.SettingDiscountPercentage:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > 99 {
			return invalid(key, "must be a number between 0 and 99")
		}
	case models.SettingFreeShippingThreshold:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return invalid(key, "must be a number of at least 0")
		}
	case models.SettingSupportPhone:
		if whatsapp.Digits(value) == "" {
			return invalid(key, "must contain at least one digit")
		}
	case models.SettingSupportEmail:
		// empty turns order e-mails off
		if value != "" && !strings.Contains(value, "@") {
			return invalid(key, "must be an e-mail address")
		}
	}
	return nil
}

func (s *SettingsService) value(ctx context.Context, key string) (string, bool) {
	values, err := s.Values(ctx)
	if err != nil {
		s.logger.Warn("failed to read store settings", "key", key, "error", err)
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (s *SettingsService) number(ctx context.Context, key string) float64 {
	raw, ok := s.value(ctx, key)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// GlobalDiscount returns the site-wide discount percentage, or 0 when it cannot be read
func (s *SettingsService) GlobalDiscount(ctx context.Context) float64 {
	v := s.number(ctx, models.SettingDiscountPercentage)
	if v < 0 || v > 99 {
		return 0
	}
	return v
}

// FreeShippingThreshold returns the order amount above which shipping is free, 0 when unset
func (s *SettingsService) FreeShippingThreshold(ctx context.Context) float64 {
	v := s.number(ctx, models.SettingFreeShippingThreshold)
	if v < 0 {
		return 0
	}
	return v
}

func (s *SettingsService) SupportPhone(ctx context.Context) string {
	v, _ := s.value(ctx, models.SettingSupportPhone)
	return whatsapp.Digits(v)
}

func (s *SettingsService) SupportEmail(ctx context.Context) string {
	v, _ := s.value(ctx, models.SettingSupportEmail)
	return strings.TrimSpace(v)
}
