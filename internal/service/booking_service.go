package service

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"bookly/internal/auth"
	"bookly/internal/booking"
	"bookly/internal/db"
	"bookly/internal/entities"
	"bookly/internal/repository"
	"bookly/internal/schedule"

	"github.com/google/uuid"
)

// PaymentGateway creates and refunds checkout sessions for bookings.
type PaymentGateway interface {
	CreateCheckoutSession(amountCents int64, description, customerEmail string) (url, sessionID string, err error)
	RefundBySessionID(sessionID string) error
}

// BookingNotifier delivers status notifications out of band. Implementations
// must not block the booking path.
type BookingNotifier interface {
	BookingStatusChanged(bk *db.Booking, serviceName, customerName, customerEmail, customerPhone string)
}

type BookingService struct {
	Bookings repository.BookingRepository
	Services repository.ServiceRepository
	Users    repository.UserRepository

	Payments PaymentGateway  // optional
	Notifier BookingNotifier // optional
	Policy   booking.TransitionPolicy
}

func NewBookingService(bookings repository.BookingRepository, services repository.ServiceRepository,
	users repository.UserRepository, payments PaymentGateway, notifier BookingNotifier) *BookingService {
	return &BookingService{
		Bookings: bookings,
		Services: services,
		Users:    users,
		Payments: payments,
		Notifier: notifier,
	}
}

// RequestBooking books the requested start time for the acting customer. The
// end time is always derived from the service duration; callers never supply
// it. On acceptance the booking is created pending, priced from the service,
// and a checkout session is opened when a payment gateway is configured.
func (s *BookingService) RequestBooking(actor auth.Actor, req entities.BookingRequest) (*entities.BookingResponse, error) {
	svc, err := s.Services.GetByID(req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("service %d: %w", svc.ID, repository.ErrNotFound)
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	requested, err := schedule.NewInterval(start, svc.DurationMinutes)
	if err != nil {
		return nil, err
	}

	open := schedule.WindowsFor(serviceWindows(svc), date)
	existing, err := s.Bookings.ActiveIntervalsFor(svc.ID, date)
	if err != nil {
		return nil, err
	}
	if err := schedule.CanAccept(requested, open, existing); err != nil {
		return nil, fmt.Errorf("booking %s on %s for service %d: %w",
			requested, req.Date, svc.ID, err)
	}

	bk := &db.Booking{
		Code:            uuid.NewString(),
		ServiceID:       svc.ID,
		CustomerID:      actor.ID,
		ProviderID:      svc.ProviderID,
		Date:            date,
		StartMinute:     int(requested.Start),
		EndMinute:       int(requested.End),
		Status:          string(booking.StatusPending),
		CustomerNotes:   req.Notes,
		TotalPriceCents: svc.PriceCents,
		PaymentStatus:   "pending",
	}

	checkoutURL := ""
	if s.Payments != nil {
		customer, err := s.Users.GetByID(actor.ID)
		if err != nil {
			return nil, err
		}
		url, sessionID, err := s.Payments.CreateCheckoutSession(
			int64(bk.TotalPriceCents), svc.Name, customer.Email)
		if err != nil {
			return nil, fmt.Errorf("error creating checkout session: %w", err)
		}
		checkoutURL = url
		bk.StripeSessionID = sessionID
	}

	// The repository serializes the conflict re-check and insert per service,
	// so the check above may still lose a race and come back ErrSlotTaken.
	if err := s.Bookings.Create(bk); err != nil {
		return nil, err
	}

	s.notify(bk, svc.Name)

	resp := toBookingResponse(bk)
	resp.ServiceName = svc.Name
	resp.CheckoutURL = checkoutURL
	return &resp, nil
}

// AvailableSlots lists every bookable start/end pair for a service on a date.
func (s *BookingService) AvailableSlots(serviceID int, dateText string) ([]entities.SlotResponse, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	date, err := schedule.ParseDate(dateText)
	if err != nil {
		return nil, err
	}

	open := schedule.WindowsFor(serviceWindows(svc), date)
	existing, err := s.Bookings.ActiveIntervalsFor(svc.ID, date)
	if err != nil {
		return nil, err
	}

	slots := schedule.GenerateSlots(open, svc.DurationMinutes, existing, schedule.DefaultCadence)
	out := make([]entities.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, entities.SlotResponse{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
		})
	}
	return out, nil
}

// GetBooking returns a booking the actor is allowed to see.
func (s *BookingService) GetBooking(actor auth.Actor, id int) (*entities.BookingResponse, error) {
	bk, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !auth.CanActOn(actor, bk) {
		return nil, auth.ErrForbidden
	}
	resp := toBookingResponse(bk)
	return &resp, nil
}

// GetBookingByCode looks a booking up by its reference code, the id customers
// actually hold after booking.
func (s *BookingService) GetBookingByCode(actor auth.Actor, code string) (*entities.BookingResponse, error) {
	bk, err := s.Bookings.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !auth.CanActOn(actor, bk) {
		return nil, auth.ErrForbidden
	}
	resp := toBookingResponse(bk)
	return &resp, nil
}

// ListBookings scopes the listing to the actor's role: customers see their
// own bookings, providers the bookings of their services, admins everything.
func (s *BookingService) ListBookings(actor auth.Actor, status, date string, limit, offset int) (*entities.BookingsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	filter := repository.BookingFilter{Status: status, Date: date, Limit: limit, Offset: offset}
	switch actor.Role {
	case auth.RoleCustomer:
		filter.CustomerID = actor.ID
	case auth.RoleProvider:
		filter.ProviderID = actor.ID
	}

	bookings, total, err := s.Bookings.List(filter)
	if err != nil {
		return nil, err
	}
	list := &entities.BookingsList{Total: total, Limit: limit, Offset: offset}
	for i := range bookings {
		list.Bookings = append(list.Bookings, toBookingResponse(&bookings[i]))
	}
	return list, nil
}

// TransitionBooking applies a lifecycle move. The caller's right to act on
// the booking is checked here; whether the move itself is legal belongs to
// the state machine. Cancellations stamp who cancelled and when, and refund
// a paid booking.
func (s *BookingService) TransitionBooking(actor auth.Actor, bookingID int, newStatus booking.Status, req entities.StatusUpdateRequest) (*entities.BookingResponse, error) {
	bk, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !auth.CanActOn(actor, bk) {
		return nil, auth.ErrForbidden
	}

	current, err := booking.ParseStatus(bk.Status)
	if err != nil {
		return nil, err
	}
	if err := booking.Transition(current, newStatus, s.Policy); err != nil {
		return nil, fmt.Errorf("booking %d: %w", bk.ID, err)
	}

	bk.Status = string(newStatus)
	if req.Notes != "" {
		if actor.Role == auth.RoleCustomer {
			bk.CustomerNotes = req.Notes
		} else {
			bk.ProviderNotes = req.Notes
		}
	}
	if newStatus == booking.StatusCancelled {
		bk.CancellationReason = req.Reason
		bk.CancelledAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		bk.CancelledBy = sql.NullInt64{Int64: int64(actor.ID), Valid: true}

		if s.Payments != nil && bk.PaymentStatus == "paid" && bk.StripeSessionID != "" {
			if err := s.Payments.RefundBySessionID(bk.StripeSessionID); err != nil {
				log.Printf("Refund failed for booking %d (session %s): %v", bk.ID, bk.StripeSessionID, err)
			}
		}
	}

	if err := s.Bookings.UpdateStatus(bk); err != nil {
		return nil, err
	}

	serviceName := ""
	if svc, err := s.Services.GetByID(bk.ServiceID); err == nil {
		serviceName = svc.Name
	}
	s.notify(bk, serviceName)

	resp := toBookingResponse(bk)
	resp.ServiceName = serviceName
	return &resp, nil
}

// MarkPaidBySession is invoked from the Stripe webhook when a checkout
// session completes.
func (s *BookingService) MarkPaidBySession(sessionID string) (*db.Booking, error) {
	bk, err := s.Bookings.GetByStripeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdatePaymentStatus(bk.ID, "paid"); err != nil {
		return nil, err
	}
	bk.PaymentStatus = "paid"
	return bk, nil
}

// MarkRefundedBySession is invoked from the Stripe webhook when a charge is
// refunded.
func (s *BookingService) MarkRefundedBySession(sessionID string) error {
	bk, err := s.Bookings.GetByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	return s.Bookings.UpdatePaymentStatus(bk.ID, "refunded")
}

func (s *BookingService) notify(bk *db.Booking, serviceName string) {
	if s.Notifier == nil {
		return
	}
	customer, err := s.Users.GetByID(bk.CustomerID)
	if err != nil {
		log.Printf("Could not load customer %d for booking %d notification: %v", bk.CustomerID, bk.ID, err)
		return
	}
	s.Notifier.BookingStatusChanged(bk, serviceName, customer.Name, customer.Email, customer.Phone)
}

func serviceWindows(svc *db.Service) []schedule.Window {
	windows := make([]schedule.Window, 0, len(svc.Windows))
	for _, w := range svc.Windows {
		windows = append(windows, schedule.Window{
			Day: time.Weekday(w.DayOfWeek),
			Interval: schedule.Interval{
				Start: schedule.TimeOfDay(w.StartMinute),
				End:   schedule.TimeOfDay(w.EndMinute),
			},
		})
	}
	return windows
}

func toBookingResponse(bk *db.Booking) entities.BookingResponse {
	resp := entities.BookingResponse{
		ID:              bk.ID,
		Code:            bk.Code,
		ServiceID:       bk.ServiceID,
		CustomerID:      bk.CustomerID,
		ProviderID:      bk.ProviderID,
		Date:            bk.Date.Format(schedule.DateLayout),
		StartTime:       schedule.TimeOfDay(bk.StartMinute).String(),
		EndTime:         schedule.TimeOfDay(bk.EndMinute).String(),
		Status:          bk.Status,
		CustomerNotes:   bk.CustomerNotes,
		ProviderNotes:   bk.ProviderNotes,
		TotalPriceCents: bk.TotalPriceCents,
		PaymentStatus:   bk.PaymentStatus,
		CreatedAt:       bk.CreatedAt,
		UpdatedAt:       bk.UpdatedAt,
	}
	if bk.CancelledAt.Valid {
		t := bk.CancelledAt.Time
		resp.CancelledAt = &t
	}
	if bk.CancelledBy.Valid {
		id := int(bk.CancelledBy.Int64)
		resp.CancelledBy = &id
	}
	return resp
}
