package entities

type AvailabilityWindowRequest struct {
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime string `json:"start_time"`  // HH:MM
	EndTime   string `json:"end_time"`    // HH:MM
}

type CreateServiceRequest struct {
	Name            string                      `json:"name"`
	Description     string                      `json:"description"`
	Category        string                      `json:"category"`
	DurationMinutes int                         `json:"duration_minutes"`
	PriceCents      int                         `json:"price_cents"`
	Availability    []AvailabilityWindowRequest `json:"availability"`
}

type ServiceResponse struct {
	ID              int                         `json:"id"`
	Name            string                      `json:"name"`
	Description     string                      `json:"description"`
	Category        string                      `json:"category"`
	DurationMinutes int                         `json:"duration_minutes"`
	PriceCents      int                         `json:"price_cents"`
	ProviderID      int                         `json:"provider_id"`
	IsActive        bool                        `json:"is_active"`
	Availability    []AvailabilityWindowRequest `json:"availability"`
}

type ServicesList struct {
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Services []ServiceResponse `json:"services"`
}
