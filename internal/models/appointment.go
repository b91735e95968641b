package models

type AppointmentRequest struct {
	WorkerID      int64  `json:"worker_id"`
	ServiceID     int64  `json:"service_id"`
	Datetime      string `json:"datetime"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	BranchID      int64  `json:"branch_id"`
}

type AppointmentCreated struct {
	Message       string `json:"message"`
	AppointmentID int64  `json:"appointment_id"`
}

type RescheduleRequest struct {
	Datetime string `json:"datetime"`
}

type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ServiceRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

type BranchRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Locality string `json:"locality"`
	Address  string `json:"address"`
}

// AppointmentDetails is what GET /appointments/{id} returns.
type AppointmentDetails struct {
	ID            int64       `json:"id"`
	Worker        *NamedRef   `json:"worker"`
	Service       *ServiceRef `json:"service"`
	Branch        *BranchRef  `json:"branch"`
	Datetime      string      `json:"datetime"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Status        string      `json:"status"`
	Price         int         `json:"price"`
}
