package models

type Worker struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PositionID int64  `json:"position_id"`
	BranchID   int64  `json:"branch_id,omitempty"`
}

type WorkerInput struct {
	Name       string `json:"name" binding:"required"`
	PositionID int64  `json:"position_id" binding:"required,gt=0"`
}

type WorkHours struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	StartWorkHour string `json:"start_work_hour"`
	EndWorkHour   string `json:"end_work_hour"`
}

// WorkHoursInput uses HH:MM times and a YYYY-MM-DD date.
type WorkHoursInput struct {
	Date          string `json:"date" binding:"required,isodate"`
	StartWorkHour string `json:"start_work_hour" binding:"required,hhmm"`
	EndWorkHour   string `json:"end_work_hour" binding:"required,hhmm"`
}

type BatchWorkHoursInput struct {
	Days []WorkHoursInput `json:"days" binding:"required,min=1,dive"`
}

type WorkerAppointment struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	Datetime      string `json:"datetime"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	WorkerName    string `json:"worker_name"`
	ServiceName   string `json:"service_name"`
}
