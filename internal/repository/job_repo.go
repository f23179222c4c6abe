package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// ReminderBooking carries the contact details the reminder job needs, joined
// in one query so the job never re-fetches per booking.
type ReminderBooking struct {
	BookingID     int
	Code          string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceName   string
	Date          time.Time
	StartMinute   int
	EndMinute     int
}

// GetConfirmedIDsPastEnd returns ids of confirmed bookings whose interval has
// fully elapsed as of now.
func (r *JobRepository) GetConfirmedIDsPastEnd(now time.Time) ([]int, error) {
	today := now.Format("2006-01-02")
	minuteOfDay := now.Hour()*60 + now.Minute()

	query := `
		SELECT id FROM bookings
		WHERE status = 'confirmed' AND (date < $1 OR (date = $1 AND end_minute <= $2))`
	rows, err := r.DB.Query(query, today, minuteOfDay)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateBookingStatuses moves a batch of bookings to newStatus.
func (r *JobRepository) UpdateBookingStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}
	return nil
}

// GetBookingsNeedingReminder returns active bookings happening on the given
// date that have not been reminded yet.
func (r *JobRepository) GetBookingsNeedingReminder(date time.Time) ([]ReminderBooking, error) {
	query := `
		SELECT b.id, b.code, u.name, u.email, u.phone, s.name, b.date, b.start_minute, b.end_minute
		FROM bookings b
		JOIN users u ON b.customer_id = u.id
		JOIN services s ON b.service_id = s.id
		WHERE b.date = $1 AND b.status IN ('pending', 'confirmed') AND b.reminder_sent = FALSE
		ORDER BY b.start_minute`
	rows, err := r.DB.Query(query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("error querying bookings needing reminder: %w", err)
	}
	defer rows.Close()

	var reminders []ReminderBooking
	for rows.Next() {
		var rb ReminderBooking
		err := rows.Scan(&rb.BookingID, &rb.Code, &rb.CustomerName, &rb.CustomerEmail, &rb.CustomerPhone,
			&rb.ServiceName, &rb.Date, &rb.StartMinute, &rb.EndMinute)
		if err != nil {
			return nil, fmt.Errorf("error scanning reminder booking: %w", err)
		}
		reminders = append(reminders, rb)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return reminders, nil
}

func (r *JobRepository) MarkRemindersSent(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(
		`UPDATE bookings SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error marking reminders sent: %w", err)
	}
	return nil
}
