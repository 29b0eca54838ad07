package models

import "time"

// Well-known store setting keys
const (
	SettingDiscountPercentage    = "discount_percentage"
	SettingFreeShippingThreshold = "free_shipping_threshold"
	SettingSupportPhone          = "support_phone"
	SettingSupportEmail          = "support_email"
)

// StoreSetting is a single key/value store-wide setting
type StoreSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
