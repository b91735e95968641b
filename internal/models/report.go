package models

type ReportFilter struct {
	StartDate  string `form:"start_date" binding:"omitempty,isodate"`
	EndDate    string `form:"end_date" binding:"omitempty,isodate"`
	BusinessID int64  `form:"business_id"`
	BranchID   int64  `form:"branch_id"`
}

type RevenueReport struct {
	TotalRevenue int `json:"total_revenue"`
}

type ClientsReport struct {
	TotalClients int `json:"total_clients"`
}

type ServiceUsage struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	BookingCount int    `json:"booking_count"`
}
