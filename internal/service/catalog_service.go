package service

import (
	"fmt"
	"net/http"
	"time"

	"bookly/internal/db"
	"bookly/internal/entities"
	apperrors "bookly/internal/errors"
	"bookly/internal/repository"
	"bookly/internal/schedule"
)

var serviceCategories = map[string]bool{
	"Hair": true, "Wellness": true, "Health": true, "Fitness": true,
	"Creative": true, "Business": true, "Other": true,
}

const (
	minServiceDuration = 15
	maxServiceDuration = 480
)

// CatalogService manages the provider-facing service catalog.
type CatalogService struct {
	Repo repository.ServiceRepository
}

func NewCatalogService(repo repository.ServiceRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) CreateService(providerID int, req entities.CreateServiceRequest) (*entities.ServiceResponse, error) {
	if len(req.Name) < 2 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "service name must be at least 2 characters")
	}
	if len(req.Description) < 10 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "description must be at least 10 characters")
	}
	if !serviceCategories[req.Category] {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid category %q", req.Category))
	}
	if req.DurationMinutes < minServiceDuration || req.DurationMinutes > maxServiceDuration {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("duration must be between %d and %d minutes", minServiceDuration, maxServiceDuration))
	}
	if req.PriceCents < 0 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	windows, err := parseWindows(req.Availability)
	if err != nil {
		return nil, err
	}

	svc := &db.Service{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		ProviderID:      providerID,
		IsActive:        true,
		Windows:         windows,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}
	resp := toServiceResponse(svc)
	return &resp, nil
}

// parseWindows validates the weekly availability: well-formed times, start
// before end, and windows on the same weekday disjoint. Disjointness keeps
// the slot generator free of duplicate offers.
func parseWindows(reqs []entities.AvailabilityWindowRequest) ([]db.AvailabilityWindow, error) {
	var windows []db.AvailabilityWindow
	perDay := map[int][]schedule.Interval{}

	for _, wr := range reqs {
		if wr.DayOfWeek < 0 || wr.DayOfWeek > 6 {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid day of week %d", wr.DayOfWeek))
		}
		start, err := schedule.ParseTimeOfDay(wr.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := schedule.ParseTimeOfDay(wr.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("availability window %s-%s: start must be before end", wr.StartTime, wr.EndTime))
		}
		iv := schedule.Interval{Start: start, End: end}
		for _, other := range perDay[wr.DayOfWeek] {
			if iv.Overlaps(other) {
				return nil, apperrors.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("availability windows overlap on %s", time.Weekday(wr.DayOfWeek)))
			}
		}
		perDay[wr.DayOfWeek] = append(perDay[wr.DayOfWeek], iv)

		windows = append(windows, db.AvailabilityWindow{
			DayOfWeek:   wr.DayOfWeek,
			StartMinute: int(start),
			EndMinute:   int(end),
		})
	}
	return windows, nil
}

func (s *CatalogService) GetService(id int) (*entities.ServiceResponse, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := toServiceResponse(svc)
	return &resp, nil
}

func (s *CatalogService) ListServices(category, search string, limit, offset int) (*entities.ServicesList, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	services, total, err := s.Repo.List(repository.ServiceFilter{
		Category: category,
		Search:   search,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	list := &entities.ServicesList{Total: total, Limit: limit, Offset: offset}
	for i := range services {
		list.Services = append(list.Services, toServiceResponse(&services[i]))
	}
	return list, nil
}

func toServiceResponse(svc *db.Service) entities.ServiceResponse {
	resp := entities.ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		Description:     svc.Description,
		Category:        svc.Category,
		DurationMinutes: svc.DurationMinutes,
		PriceCents:      svc.PriceCents,
		ProviderID:      svc.ProviderID,
		IsActive:        svc.IsActive,
	}
	for _, w := range svc.Windows {
		resp.Availability = append(resp.Availability, entities.AvailabilityWindowRequest{
			DayOfWeek: w.DayOfWeek,
			StartTime: schedule.TimeOfDay(w.StartMinute).String(),
			EndTime:   schedule.TimeOfDay(w.EndMinute).String(),
		})
	}
	return resp
}
