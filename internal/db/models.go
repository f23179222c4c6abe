package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type AvailabilityWindow struct {
	ID          int
	ServiceID   int
	DayOfWeek   int // 0 = Sunday .. 6 = Saturday
	StartMinute int
	EndMinute   int
}

type Service struct {
	ID              int
	Name            string
	Description     string
	Category        string
	DurationMinutes int
	PriceCents      int
	ProviderID      int
	IsActive        bool
	Windows         []AvailabilityWindow
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Booking times are stored as minutes since midnight alongside a naive
// calendar date; the textual HH:MM form exists only at the API boundary.
type Booking struct {
	ID                 int
	Code               string
	ServiceID          int
	CustomerID         int
	ProviderID         int
	Date               time.Time
	StartMinute        int
	EndMinute          int
	Status             string
	CustomerNotes      string
	ProviderNotes      string
	TotalPriceCents    int
	PaymentStatus      string
	StripeSessionID    string
	ReminderSent       bool
	CancellationReason string
	CancelledAt        sql.NullTime
	CancelledBy        sql.NullInt64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
