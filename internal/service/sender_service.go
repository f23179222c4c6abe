package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"bookly/internal/db"
	"bookly/internal/entities"
	"bookly/internal/repository"
	"bookly/internal/schedule"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// BookingStatusChanged emails and texts the customer about the booking's new
// status. The email send happens on a goroutine so the booking path never
// waits on SendGrid.
func (s *SenderService) BookingStatusChanged(bk *db.Booking, serviceName, customerName, customerEmail, customerPhone string) {
	emailData := entities.BookingEmailData{
		CustomerName:  customerName,
		BookingCode:   bk.Code,
		ServiceName:   serviceName,
		DateFormatted: bk.Date.Format("02 Jan 2006"),
		StartTime:     schedule.TimeOfDay(bk.StartMinute).String(),
		EndTime:       schedule.TimeOfDay(bk.EndMinute).String(),
		Status:        bk.Status,
		CurrentYear:   time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your Bookly appointment is %s - Code: %s", bk.Status, bk.Code)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour appointment is %s.\n\n"+
			"Appointment details:\n"+
			"Booking code: %s\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n\n"+
			"Thank you for booking with Bookly.",
		customerName, bk.Status, bk.Code, serviceName,
		emailData.DateFormatted, emailData.StartTime, emailData.EndTime,
	)

	htmlBody := renderBookingEmail(emailData)

	go func() {
		if err := SendEmailWithSendGrid(customerEmail, customerName, emailSubject, plainTextBody, htmlBody); err != nil {
			log.Printf("ALERT (async): failed to send email for booking %s: %v", bk.Code, err)
		}
	}()

	smsMessage := fmt.Sprintf("Bookly: your appointment %s is %s!\n%s at %s.\nMore details in your email.",
		bk.Code, bk.Status, emailData.DateFormatted, emailData.StartTime)
	if err := SendSMS(customerPhone, smsMessage); err != nil {
		log.Printf("ALERT: booking %s updated, but the SMS to %s failed: %v", bk.Code, customerPhone, err)
	}
}

// SendBookingReminder notifies a customer about an upcoming appointment.
func (s *SenderService) SendBookingReminder(rb repository.ReminderBooking) {
	start := schedule.TimeOfDay(rb.StartMinute).String()
	dateFormatted := rb.Date.Format("02 Jan 2006")

	emailSubject := fmt.Sprintf("Reminder: your %s appointment on %s", rb.ServiceName, dateFormatted)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder of your upcoming appointment.\n\n"+
			"Booking code: %s\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n\n"+
			"See you soon,\nBookly",
		rb.CustomerName, rb.Code, rb.ServiceName, dateFormatted,
		start, schedule.TimeOfDay(rb.EndMinute).String(),
	)
	htmlBody := renderBookingEmail(entities.BookingEmailData{
		CustomerName:  rb.CustomerName,
		BookingCode:   rb.Code,
		ServiceName:   rb.ServiceName,
		DateFormatted: dateFormatted,
		StartTime:     start,
		EndTime:       schedule.TimeOfDay(rb.EndMinute).String(),
		Status:        "coming up",
		CurrentYear:   time.Now().Year(),
	})

	if err := SendEmailWithSendGrid(rb.CustomerEmail, rb.CustomerName, emailSubject, plainTextBody, htmlBody); err != nil {
		log.Printf("ALERT: failed to send reminder email for booking %s: %v", rb.Code, err)
	}

	smsMessage := fmt.Sprintf("Bookly reminder: %s on %s at %s. Code %s.",
		rb.ServiceName, dateFormatted, start, rb.Code)
	if err := SendSMS(rb.CustomerPhone, smsMessage); err != nil {
		log.Printf("ALERT: failed to send reminder SMS for booking %s: %v", rb.Code, err)
	}
}

func renderBookingEmail(data entities.BookingEmailData) string {
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: error parsing email template (%s): %v", tmplPath, err)
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("ALERT: error executing email template for booking %s: %v", data.BookingCode, err)
		return ""
	}
	return buf.String()
}
