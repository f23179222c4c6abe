package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"bookly/internal/db"
)

type ServiceFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type ServiceRepository interface {
	Create(service *db.Service) error
	GetByID(id int) (*db.Service, error)
	List(filter ServiceFilter) ([]db.Service, int, error)
}

type serviceRepository struct {
	db *sql.DB
}

func NewServiceRepository(sqlDB *sql.DB) ServiceRepository {
	return &serviceRepository{db: sqlDB}
}

func (r *serviceRepository) Create(service *db.Service) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO services (name, description, category, duration_minutes, price_cents, provider_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		service.Name, service.Description, service.Category,
		service.DurationMinutes, service.PriceCents, service.ProviderID, service.IsActive,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}

	for i := range service.Windows {
		w := &service.Windows[i]
		w.ServiceID = service.ID
		err = tx.QueryRow(
			`INSERT INTO availability_windows (service_id, day_of_week, start_minute, end_minute)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			w.ServiceID, w.DayOfWeek, w.StartMinute, w.EndMinute,
		).Scan(&w.ID)
		if err != nil {
			return fmt.Errorf("error creating availability window: %w", err)
		}
	}

	return tx.Commit()
}

func (r *serviceRepository) GetByID(id int) (*db.Service, error) {
	var svc db.Service
	query := `
		SELECT id, name, description, category, duration_minutes, price_cents, provider_id, is_active, created_at, updated_at
		FROM services WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Category,
		&svc.DurationMinutes, &svc.PriceCents, &svc.ProviderID, &svc.IsActive,
		&svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("service %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying service: %w", err)
	}

	windows, err := r.windowsFor(svc.ID)
	if err != nil {
		return nil, err
	}
	svc.Windows = windows
	return &svc, nil
}

func (r *serviceRepository) windowsFor(serviceID int) ([]db.AvailabilityWindow, error) {
	rows, err := r.db.Query(
		`SELECT id, service_id, day_of_week, start_minute, end_minute
		 FROM availability_windows WHERE service_id = $1
		 ORDER BY day_of_week, start_minute`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("error querying availability windows: %w", err)
	}
	defer rows.Close()

	var windows []db.AvailabilityWindow
	for rows.Next() {
		var w db.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.ServiceID, &w.DayOfWeek, &w.StartMinute, &w.EndMinute); err != nil {
			return nil, fmt.Errorf("error scanning availability window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *serviceRepository) List(filter ServiceFilter) ([]db.Service, int, error) {
	where := `WHERE is_active = TRUE`
	args := []interface{}{}
	if filter.Category != "" && filter.Category != "all" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM services `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting services: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT id, name, description, category, duration_minutes, price_cents, provider_id, is_active, created_at, updated_at
		FROM services %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying services: %w", err)
	}
	defer rows.Close()

	var services []db.Service
	for rows.Next() {
		var svc db.Service
		if err := rows.Scan(
			&svc.ID, &svc.Name, &svc.Description, &svc.Category,
			&svc.DurationMinutes, &svc.PriceCents, &svc.ProviderID, &svc.IsActive,
			&svc.CreatedAt, &svc.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating services: %w", err)
	}

	for i := range services {
		windows, err := r.windowsFor(services[i].ID)
		if err != nil {
			return nil, 0, err
		}
		services[i].Windows = windows
	}

	return services, total, nil
}
