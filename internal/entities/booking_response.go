package entities

import "time"

type BookingResponse struct {
	ID              int        `json:"id"`
	Code            string     `json:"code"`
	ServiceID       int        `json:"service_id"`
	ServiceName     string     `json:"service_name,omitempty"`
	CustomerID      int        `json:"customer_id"`
	ProviderID      int        `json:"provider_id"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Status          string     `json:"status"`
	CustomerNotes   string     `json:"customer_notes,omitempty"`
	ProviderNotes   string     `json:"provider_notes,omitempty"`
	TotalPriceCents int        `json:"total_price_cents"`
	PaymentStatus   string     `json:"payment_status"`
	CheckoutURL     string     `json:"checkout_url,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy     *int       `json:"cancelled_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BookingsList struct {
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Bookings []BookingResponse `json:"bookings"`
}

// SlotResponse is one bookable start/end pair for a day, both in HH:MM form.
type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
