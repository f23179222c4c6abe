package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookly/internal/db"
	"bookly/internal/schedule"
)

type BookingFilter struct {
	CustomerID int // 0 = any
	ProviderID int // 0 = any
	Status     string
	Date       string // YYYY-MM-DD, empty = any
	Limit      int
	Offset     int
}

type BookingRepository interface {
	// ActiveIntervalsFor returns the intervals of pending and confirmed
	// bookings for a service on a date. Terminal bookings have freed their
	// slot and are excluded here; the conflict check downstream treats every
	// interval it receives as binding.
	ActiveIntervalsFor(serviceID int, date time.Time) ([]schedule.Interval, error)

	// Create inserts the booking, serializing the conflict re-check and the
	// insert against concurrent attempts on the same service. Returns
	// schedule.ErrSlotTaken if another booking won the slot in between.
	Create(bk *db.Booking) error

	GetByID(id int) (*db.Booking, error)
	GetByCode(code string) (*db.Booking, error)
	GetByStripeSessionID(sessionID string) (*db.Booking, error)
	List(filter BookingFilter) ([]db.Booking, int, error)
	UpdateStatus(bk *db.Booking) error
	UpdatePaymentStatus(id int, paymentStatus string) error
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(sqlDB *sql.DB) BookingRepository {
	return &bookingRepository{db: sqlDB}
}

const activeIntervalsQuery = `
	SELECT start_minute, end_minute FROM bookings
	WHERE service_id = $1 AND date = $2 AND status IN ('pending', 'confirmed')
	ORDER BY start_minute`

func (r *bookingRepository) ActiveIntervalsFor(serviceID int, date time.Time) ([]schedule.Interval, error) {
	return scanIntervals(r.db.Query(activeIntervalsQuery, serviceID, date))
}

func scanIntervals(rows *sql.Rows, err error) ([]schedule.Interval, error) {
	if err != nil {
		return nil, fmt.Errorf("error querying active bookings: %w", err)
	}
	defer rows.Close()

	var intervals []schedule.Interval
	for rows.Next() {
		var start, end int
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("error scanning booking interval: %w", err)
		}
		intervals = append(intervals, schedule.Interval{
			Start: schedule.TimeOfDay(start),
			End:   schedule.TimeOfDay(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking intervals: %w", err)
	}
	return intervals, nil
}

func (r *bookingRepository) Create(bk *db.Booking) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the service row so concurrent bookings for the same service run
	// their conflict re-check one at a time. The availability check already
	// happened upstream; only the overlap can change under our feet.
	var serviceID int
	err = tx.QueryRow(`SELECT id FROM services WHERE id = $1 FOR UPDATE`, bk.ServiceID).Scan(&serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("service %d: %w", bk.ServiceID, ErrNotFound)
		}
		return fmt.Errorf("error locking service: %w", err)
	}

	existing, err := scanIntervals(tx.Query(activeIntervalsQuery, bk.ServiceID, bk.Date))
	if err != nil {
		return err
	}
	requested := schedule.Interval{
		Start: schedule.TimeOfDay(bk.StartMinute),
		End:   schedule.TimeOfDay(bk.EndMinute),
	}
	for _, e := range existing {
		if requested.Overlaps(e) {
			return fmt.Errorf("booking %s on %s: %w", requested, bk.Date.Format(schedule.DateLayout), schedule.ErrSlotTaken)
		}
	}

	query := `
		INSERT INTO bookings
		(code, service_id, customer_id, provider_id, date, start_minute, end_minute, status,
		 customer_notes, total_price_cents, payment_status, stripe_session_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		bk.Code, bk.ServiceID, bk.CustomerID, bk.ProviderID, bk.Date,
		bk.StartMinute, bk.EndMinute, bk.Status,
		bk.CustomerNotes, bk.TotalPriceCents, bk.PaymentStatus, bk.StripeSessionID,
	).Scan(&bk.ID, &bk.CreatedAt, &bk.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}

	return tx.Commit()
}

const bookingColumns = `
	id, code, service_id, customer_id, provider_id, date, start_minute, end_minute, status,
	customer_notes, provider_notes, total_price_cents, payment_status, stripe_session_id,
	reminder_sent, cancellation_reason, cancelled_at, cancelled_by, created_at, updated_at`

func scanBooking(row *sql.Row) (*db.Booking, error) {
	var bk db.Booking
	err := row.Scan(
		&bk.ID, &bk.Code, &bk.ServiceID, &bk.CustomerID, &bk.ProviderID,
		&bk.Date, &bk.StartMinute, &bk.EndMinute, &bk.Status,
		&bk.CustomerNotes, &bk.ProviderNotes, &bk.TotalPriceCents, &bk.PaymentStatus, &bk.StripeSessionID,
		&bk.ReminderSent, &bk.CancellationReason, &bk.CancelledAt, &bk.CancelledBy,
		&bk.CreatedAt, &bk.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

func (r *bookingRepository) GetByID(id int) (*db.Booking, error) {
	bk, err := scanBooking(r.db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return bk, nil
}

func (r *bookingRepository) GetByCode(code string) (*db.Booking, error) {
	bk, err := scanBooking(r.db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return bk, nil
}

func (r *bookingRepository) GetByStripeSessionID(sessionID string) (*db.Booking, error) {
	bk, err := scanBooking(r.db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE stripe_session_id = $1`, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking for session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return bk, nil
}

func (r *bookingRepository) List(filter BookingFilter) ([]db.Booking, int, error) {
	where := `WHERE TRUE`
	args := []interface{}{}
	if filter.CustomerID != 0 {
		args = append(args, filter.CustomerID)
		where += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.ProviderID != 0 {
		args = append(args, filter.ProviderID)
		where += fmt.Sprintf(" AND provider_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		where += fmt.Sprintf(" AND date = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM bookings %s ORDER BY date DESC, start_minute DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var bk db.Booking
		err := rows.Scan(
			&bk.ID, &bk.Code, &bk.ServiceID, &bk.CustomerID, &bk.ProviderID,
			&bk.Date, &bk.StartMinute, &bk.EndMinute, &bk.Status,
			&bk.CustomerNotes, &bk.ProviderNotes, &bk.TotalPriceCents, &bk.PaymentStatus, &bk.StripeSessionID,
			&bk.ReminderSent, &bk.CancellationReason, &bk.CancelledAt, &bk.CancelledBy,
			&bk.CreatedAt, &bk.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, bk)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating bookings: %w", err)
	}
	return bookings, total, nil
}

// UpdateStatus persists a lifecycle transition plus its side fields: notes and,
// for cancellations, the cancellation stamp. Date, times and service are
// immutable after creation; rescheduling is cancel plus create.
func (r *bookingRepository) UpdateStatus(bk *db.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, customer_notes = $3, provider_notes = $4,
		    cancellation_reason = $5, cancelled_at = $6, cancelled_by = $7,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(query,
		bk.ID, bk.Status, bk.CustomerNotes, bk.ProviderNotes,
		bk.CancellationReason, bk.CancelledAt, bk.CancelledBy,
	).Scan(&bk.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("booking %d: %w", bk.ID, ErrNotFound)
		}
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return nil
}

func (r *bookingRepository) UpdatePaymentStatus(id int, paymentStatus string) error {
	result, err := r.db.Exec(
		`UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`,
		id, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return nil
}
