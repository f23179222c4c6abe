package service

import (
	"net/http"
	"testing"

	"bookly/internal/db"
	"bookly/internal/entities"
	apperrors "bookly/internal/errors"
	"bookly/internal/schedule"

	"github.com/stretchr/testify/require"
)

func validServiceRequest() entities.CreateServiceRequest {
	return entities.CreateServiceRequest{
		Name:            "Haircut",
		Description:     "Classic cut and styling",
		Category:        "Hair",
		DurationMinutes: 60,
		PriceCents:      4500,
		Availability: []entities.AvailabilityWindowRequest{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
		},
	}
}

func TestCreateService(t *testing.T) {
	catalog := NewCatalogService(&fakeServiceRepo{services: map[int]*db.Service{}})

	resp, err := catalog.CreateService(20, validServiceRequest())
	require.NoError(t, err)
	require.True(t, resp.IsActive)
	require.Equal(t, 20, resp.ProviderID)
	require.Len(t, resp.Availability, 2)
	require.Equal(t, "09:00", resp.Availability[0].StartTime)
}

func TestCreateService_Validation(t *testing.T) {
	catalog := NewCatalogService(&fakeServiceRepo{services: map[int]*db.Service{}})

	cases := []struct {
		name   string
		mutate func(*entities.CreateServiceRequest)
	}{
		{"short name", func(r *entities.CreateServiceRequest) { r.Name = "X" }},
		{"short description", func(r *entities.CreateServiceRequest) { r.Description = "too short" }},
		{"unknown category", func(r *entities.CreateServiceRequest) { r.Category = "Plumbing" }},
		{"duration too short", func(r *entities.CreateServiceRequest) { r.DurationMinutes = 10 }},
		{"duration too long", func(r *entities.CreateServiceRequest) { r.DurationMinutes = 600 }},
		{"negative price", func(r *entities.CreateServiceRequest) { r.PriceCents = -1 }},
		{"bad day of week", func(r *entities.CreateServiceRequest) { r.Availability[0].DayOfWeek = 7 }},
		{"start after end", func(r *entities.CreateServiceRequest) {
			r.Availability[0] = entities.AvailabilityWindowRequest{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}
		}},
		{"overlapping windows", func(r *entities.CreateServiceRequest) {
			r.Availability[1] = entities.AvailabilityWindowRequest{DayOfWeek: 1, StartTime: "11:00", EndTime: "15:00"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validServiceRequest()
			tc.mutate(&req)

			_, err := catalog.CreateService(20, req)
			require.Error(t, err)
			require.Equal(t, http.StatusBadRequest, apperrors.FromError(err).Code)
		})
	}
}

func TestCreateService_BadWindowTime(t *testing.T) {
	catalog := NewCatalogService(&fakeServiceRepo{services: map[int]*db.Service{}})

	req := validServiceRequest()
	req.Availability[0].StartTime = "9:00"

	_, err := catalog.CreateService(20, req)
	require.ErrorIs(t, err, schedule.ErrInvalidFormat)
}
