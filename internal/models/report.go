package models

// StockReport summarises inventory and order revenue for the admin dashboard
type StockReport struct {
	TotalProducts   int                        `json:"totalProducts"`
	TotalStockUnits int                        `json:"totalStockUnits"`
	LowStockCount   int                        `json:"lowStockCount"`
	OutOfStockCount int                        `json:"outOfStockCount"`
	PendingOrders   int                        `json:"pendingOrders"`
	ApprovedOrders  int                        `json:"approvedOrders"`
	TotalRevenue    float64                    `json:"totalRevenue"`
	Categories      map[Category]CategoryStock `json:"categories"`
	LowStock        []Product                  `json:"lowStock"`
	ByStock         []Product                  `json:"byStock"`
}

// CategoryStock is the per-category breakdown of a StockReport
type CategoryStock struct {
	Count      int `json:"count"`
	TotalQty   int `json:"totalQty"`
	OutOfStock int `json:"outOfStock"`
	LowStock   int `json:"lowStock"`
}
