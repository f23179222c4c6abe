package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"bookly/internal/api"
	"bookly/internal/auth"
	"bookly/internal/repository"
	"bookly/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v78"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	jobRepo := repository.NewJobRepository(db)

	senderSvc := service.NewSenderService()
	stripeSvc := service.NewStripeService()
	authSvc := service.NewAuthService(userRepo, jwtSecret)
	catalogSvc := service.NewCatalogService(serviceRepo)
	bookingSvc := service.NewBookingService(bookingRepo, serviceRepo, userRepo, stripeSvc, senderSvc)
	jobSvc := service.NewJobService(jobRepo, senderSvc)

	authHandler := api.NewAuthHandler(authSvc)
	serviceHandler := api.NewServiceHandler(catalogSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	stripeHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), bookingSvc, stripeSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/services", serviceHandler.ListServices).Methods("GET")
	r.HandleFunc("/api/services/{id}", serviceHandler.GetService).Methods("GET")
	r.HandleFunc("/api/bookings/available-slots", bookingHandler.AvailableSlots).Methods("GET")
	r.HandleFunc("/api/webhooks/stripe", stripeHandler.HandleWebhook).Methods("POST")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(jwtSecret))
	authed.HandleFunc("/auth/profile", authHandler.Profile).Methods("GET")
	authed.HandleFunc("/services", serviceHandler.CreateService).Methods("POST")
	authed.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	authed.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	authed.HandleFunc("/bookings/code/{code}", bookingHandler.GetBookingByCode).Methods("GET")
	authed.HandleFunc("/bookings/{id}", bookingHandler.GetBooking).Methods("GET")
	authed.HandleFunc("/bookings/{id}/status", bookingHandler.UpdateBookingStatus).Methods("PATCH")

	c := cron.New()
	c.AddFunc("@every 10m", func() {
		if err := jobSvc.CompletePastBookings(); err != nil {
			log.Printf("Cron job error: %v", err)
		}
	})
	c.AddFunc("@every 1h", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			log.Printf("Cron job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(handlers.LoggingHandler(os.Stdout, r))))
}
