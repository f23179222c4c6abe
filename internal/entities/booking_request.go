package entities

type BookingRequest struct {
	ServiceID int    `json:"service_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM, end time is derived from the service duration
	Notes     string `json:"notes,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
	Reason string `json:"reason,omitempty"`
}
