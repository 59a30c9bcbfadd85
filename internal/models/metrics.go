package models

// DashboardStats are the cached aggregates behind the admin dashboard.
type DashboardStats struct {
	TotalProducts     int     `json:"total_products"`
	AvailableProducts int     `json:"available_products"`
	AllocatedProducts int     `json:"allocated_products"`
	InServiceProducts int     `json:"in_service_products"`
	RetiredProducts   int     `json:"retired_products"`
	SoldProducts      int     `json:"sold_products"`
	TotalSales        int     `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	AvgSalePrice      float64 `json:"avg_sale_price"`
}
