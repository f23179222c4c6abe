package service

import (
	"fmt"
	"log"
	"time"

	"bookly/internal/booking"
	"bookly/internal/repository"
)

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService
}

func NewJobService(repo *repository.JobRepository, sender *SenderService) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// CompletePastBookings moves confirmed bookings whose end time has passed to
// completed. Pending bookings are left alone; a provider may still confirm
// or cancel them after the fact.
func (s *JobService) CompletePastBookings() error {
	ids, err := s.Repo.GetConfirmedIDsPastEnd(time.Now())
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end time: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: marking %d bookings as completed. IDs: %v", len(ids), ids)
	if err := s.Repo.UpdateBookingStatuses(ids, string(booking.StatusCompleted)); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// SendUpcomingReminders notifies customers of tomorrow's bookings that have
// not been reminded yet, then flags them so each booking is reminded once.
func (s *JobService) SendUpcomingReminders() error {
	tomorrow := time.Now().AddDate(0, 0, 1)
	reminders, err := s.Repo.GetBookingsNeedingReminder(tomorrow)
	if err != nil {
		return fmt.Errorf("cron job: failed to get bookings needing reminder: %w", err)
	}
	if len(reminders) == 0 {
		return nil
	}

	log.Printf("Cron Job: sending %d booking reminders", len(reminders))
	var sent []int
	for _, rb := range reminders {
		s.Sender.SendBookingReminder(rb)
		sent = append(sent, rb.BookingID)
	}
	if err := s.Repo.MarkRemindersSent(sent); err != nil {
		return fmt.Errorf("cron job: failed to mark reminders sent: %w", err)
	}
	return nil
}
