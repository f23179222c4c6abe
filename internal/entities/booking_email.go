package entities

type BookingEmailData struct {
	CustomerName  string
	BookingCode   string
	ServiceName   string
	DateFormatted string
	StartTime     string
	EndTime       string
	Status        string
	CurrentYear   int
}
