package service

import (
	"fmt"
	"testing"
	"time"

	"bookly/internal/auth"
	"bookly/internal/booking"
	"bookly/internal/db"
	"bookly/internal/entities"
	"bookly/internal/repository"
	"bookly/internal/schedule"

	"github.com/stretchr/testify/require"
)

type fakeServiceRepo struct {
	services map[int]*db.Service
}

func (f *fakeServiceRepo) Create(svc *db.Service) error {
	svc.ID = len(f.services) + 1
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) GetByID(id int) (*db.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, fmt.Errorf("service %d: %w", id, repository.ErrNotFound)
	}
	return svc, nil
}

func (f *fakeServiceRepo) List(filter repository.ServiceFilter) ([]db.Service, int, error) {
	var out []db.Service
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	return out, len(out), nil
}

type fakeBookingRepo struct {
	bookings []*db.Booking
	nextID   int
}

func (f *fakeBookingRepo) ActiveIntervalsFor(serviceID int, date time.Time) ([]schedule.Interval, error) {
	var intervals []schedule.Interval
	for _, bk := range f.bookings {
		if bk.ServiceID != serviceID || !bk.Date.Equal(date) {
			continue
		}
		if !booking.Status(bk.Status).Active() {
			continue
		}
		intervals = append(intervals, schedule.Interval{
			Start: schedule.TimeOfDay(bk.StartMinute),
			End:   schedule.TimeOfDay(bk.EndMinute),
		})
	}
	return intervals, nil
}

func (f *fakeBookingRepo) Create(bk *db.Booking) error {
	existing, _ := f.ActiveIntervalsFor(bk.ServiceID, bk.Date)
	requested := schedule.Interval{Start: schedule.TimeOfDay(bk.StartMinute), End: schedule.TimeOfDay(bk.EndMinute)}
	for _, e := range existing {
		if requested.Overlaps(e) {
			return schedule.ErrSlotTaken
		}
	}
	f.nextID++
	bk.ID = f.nextID
	bk.CreatedAt = time.Now()
	bk.UpdatedAt = bk.CreatedAt
	f.bookings = append(f.bookings, bk)
	return nil
}

func (f *fakeBookingRepo) GetByID(id int) (*db.Booking, error) {
	for _, bk := range f.bookings {
		if bk.ID == id {
			return bk, nil
		}
	}
	return nil, fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
}

func (f *fakeBookingRepo) GetByCode(code string) (*db.Booking, error) {
	for _, bk := range f.bookings {
		if bk.Code == code {
			return bk, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", code, repository.ErrNotFound)
}

func (f *fakeBookingRepo) GetByStripeSessionID(sessionID string) (*db.Booking, error) {
	for _, bk := range f.bookings {
		if bk.StripeSessionID == sessionID {
			return bk, nil
		}
	}
	return nil, fmt.Errorf("booking for session %s: %w", sessionID, repository.ErrNotFound)
}

func (f *fakeBookingRepo) List(filter repository.BookingFilter) ([]db.Booking, int, error) {
	var out []db.Booking
	for _, bk := range f.bookings {
		if filter.CustomerID != 0 && bk.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderID != 0 && bk.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && bk.Status != filter.Status {
			continue
		}
		out = append(out, *bk)
	}
	return out, len(out), nil
}

func (f *fakeBookingRepo) UpdateStatus(bk *db.Booking) error {
	for _, existing := range f.bookings {
		if existing.ID == bk.ID {
			*existing = *bk
			return nil
		}
	}
	return fmt.Errorf("booking %d: %w", bk.ID, repository.ErrNotFound)
}

func (f *fakeBookingRepo) UpdatePaymentStatus(id int, paymentStatus string) error {
	bk, err := f.GetByID(id)
	if err != nil {
		return err
	}
	bk.PaymentStatus = paymentStatus
	return nil
}

type fakeUserRepo struct {
	users map[int]*db.User
}

func (f *fakeUserRepo) Create(u *db.User) error {
	u.ID = len(f.users) + 1
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
}

func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	return u, nil
}

// newTestService wires a booking service around a haircut-style service open
// Wednesdays 09:00-17:00, duration 60, with no payments or notifications.
func newTestService(t *testing.T) (*BookingService, *fakeBookingRepo) {
	t.Helper()
	services := &fakeServiceRepo{services: map[int]*db.Service{
		1: {
			ID: 1, Name: "Haircut", DurationMinutes: 60, PriceCents: 4500,
			ProviderID: 20, IsActive: true,
			Windows: []db.AvailabilityWindow{
				{ServiceID: 1, DayOfWeek: 3, StartMinute: 540, EndMinute: 1020}, // Wed 09:00-17:00
			},
		},
	}}
	users := &fakeUserRepo{users: map[int]*db.User{
		10: {ID: 10, Name: "Ana", Email: "ana@example.com", Phone: "+15550001", Role: auth.RoleCustomer},
	}}
	bookings := &fakeBookingRepo{}
	return NewBookingService(bookings, services, users, nil, nil), bookings
}

var customer = auth.Actor{ID: 10, Role: auth.RoleCustomer}

// 2026-09-02 is a Wednesday.
const testDate = "2026-09-02"

func TestRequestBooking(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)
	require.Equal(t, "10:00", resp.StartTime)
	require.Equal(t, "11:00", resp.EndTime, "end time must be derived from the service duration")
	require.Equal(t, 4500, resp.TotalPriceCents)
	require.NotEmpty(t, resp.Code)
}

func TestRequestBooking_OutsideAvailability(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "08:30",
	})
	require.ErrorIs(t, err, schedule.ErrOutsideAvailability)

	// Closed day: 2026-09-06 is a Sunday.
	_, err = svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: "2026-09-06", StartTime: "10:00",
	})
	require.ErrorIs(t, err, schedule.ErrOutsideAvailability)
}

func TestRequestBooking_SlotTaken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.ErrorIs(t, err, schedule.ErrSlotTaken)
}

func TestRequestBooking_CancelledBookingFreesSlot(t *testing.T) {
	svc, repo := newTestService(t)

	first, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:30",
	})
	require.NoError(t, err)

	_, err = svc.TransitionBooking(customer, first.ID, booking.StatusCancelled, entities.StatusUpdateRequest{})
	require.NoError(t, err)

	// The overlapping request now succeeds: cancelled bookings no longer
	// count toward conflicts.
	_, err = svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)
	require.Len(t, repo.bookings, 2)
}

func TestRequestBooking_BadInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 99, Date: testDate, StartTime: "10:00",
	})
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "9:00",
	})
	require.ErrorIs(t, err, schedule.ErrInvalidFormat)

	_, err = svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: "02-09-2026", StartTime: "09:00",
	})
	require.ErrorIs(t, err, schedule.ErrInvalidFormat)
}

func TestAvailableSlots(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	slots, err := svc.AvailableSlots(1, testDate)
	require.NoError(t, err)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.StartTime)
	}
	require.Equal(t, []string{
		"09:00",
		"11:00", "11:30", "12:00", "12:30", "13:00", "13:30",
		"14:00", "14:30", "15:00", "15:30", "16:00",
	}, starts)
	require.Equal(t, "10:00", slots[0].EndTime)
}

func TestAvailableSlots_ClosedDay(t *testing.T) {
	svc, _ := newTestService(t)

	slots, err := svc.AvailableSlots(1, "2026-09-06") // Sunday
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetBookingByCode(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	found, err := svc.GetBookingByCode(customer, created.Code)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = svc.GetBookingByCode(customer, "no-such-code")
	require.ErrorIs(t, err, repository.ErrNotFound)

	stranger := auth.Actor{ID: 99, Role: auth.RoleCustomer}
	_, err = svc.GetBookingByCode(stranger, created.Code)
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestTransitionBooking(t *testing.T) {
	svc, _ := newTestService(t)
	provider := auth.Actor{ID: 20, Role: auth.RoleProvider}

	created, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	confirmed, err := svc.TransitionBooking(provider, created.ID, booking.StatusConfirmed, entities.StatusUpdateRequest{Notes: "see you then"})
	require.NoError(t, err)
	require.Equal(t, "confirmed", confirmed.Status)
	require.Equal(t, "see you then", confirmed.ProviderNotes)

	completed, err := svc.TransitionBooking(provider, created.ID, booking.StatusCompleted, entities.StatusUpdateRequest{})
	require.NoError(t, err)
	require.Equal(t, "completed", completed.Status)

	// Terminal states admit no further moves.
	_, err = svc.TransitionBooking(provider, created.ID, booking.StatusConfirmed, entities.StatusUpdateRequest{})
	require.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestTransitionBooking_CancellationStamp(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	resp, err := svc.TransitionBooking(customer, created.ID, booking.StatusCancelled, entities.StatusUpdateRequest{Reason: "can't make it"})
	require.NoError(t, err)
	require.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	require.NotNil(t, resp.CancelledBy)
	require.Equal(t, customer.ID, *resp.CancelledBy)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "can't make it", stored.CancellationReason)
}

func TestTransitionBooking_Forbidden(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	stranger := auth.Actor{ID: 99, Role: auth.RoleCustomer}
	_, err = svc.TransitionBooking(stranger, created.ID, booking.StatusCancelled, entities.StatusUpdateRequest{})
	require.ErrorIs(t, err, auth.ErrForbidden)

	otherProvider := auth.Actor{ID: 21, Role: auth.RoleProvider}
	_, err = svc.TransitionBooking(otherProvider, created.ID, booking.StatusConfirmed, entities.StatusUpdateRequest{})
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestTransitionBooking_SkipConfirmationPolicy(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	// Default policy: pending cannot jump straight to completed.
	provider := auth.Actor{ID: 20, Role: auth.RoleProvider}
	_, err = svc.TransitionBooking(provider, created.ID, booking.StatusCompleted, entities.StatusUpdateRequest{})
	require.ErrorIs(t, err, booking.ErrInvalidTransition)

	svc.Policy = booking.TransitionPolicy{AllowSkipConfirmation: true}
	_, err = svc.TransitionBooking(provider, created.ID, booking.StatusCompleted, entities.StatusUpdateRequest{})
	require.NoError(t, err)
}

func TestListBookings_RoleScoping(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RequestBooking(customer, entities.BookingRequest{
		ServiceID: 1, Date: testDate, StartTime: "10:00",
	})
	require.NoError(t, err)

	mine, err := svc.ListBookings(customer, "", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, mine.Bookings, 1)

	other := auth.Actor{ID: 11, Role: auth.RoleCustomer}
	theirs, err := svc.ListBookings(other, "", "", 10, 0)
	require.NoError(t, err)
	require.Empty(t, theirs.Bookings)

	admin := auth.Actor{ID: 1, Role: auth.RoleAdmin}
	all, err := svc.ListBookings(admin, "", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, all.Bookings, 1)
}
