package models

type Service struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Price    int    `json:"price,omitempty"`
}

// PositionServices groups the services a position can perform (service-first flow).
type PositionServices struct {
	PositionID   int64     `json:"position_id"`
	PositionName string    `json:"position_name"`
	Services     []Service `json:"services"`
}

type ServiceInput struct {
	Name     string `json:"name" binding:"required"`
	Duration int    `json:"duration" binding:"required,gt=0"`
}

type Position struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	WorkersCount int    `json:"workers_count,omitempty"`
}

type PositionInput struct {
	Name string `json:"name" binding:"required"`
}

type ServiceCost struct {
	ID           int64  `json:"id"`
	PositionID   int64  `json:"position_id"`
	PositionName string `json:"position_name,omitempty"`
	ServiceID    int64  `json:"service_id"`
	ServiceName  string `json:"service_name,omitempty"`
	Price        int    `json:"price"`
}

type ServiceCostInput struct {
	PositionID int64 `json:"position_id" binding:"required,gt=0"`
	ServiceID  int64 `json:"service_id" binding:"required,gt=0"`
	Price      int   `json:"price" binding:"required,gt=0"`
}

type PriceInput struct {
	Price int `json:"price" binding:"required,gt=0"`
}
