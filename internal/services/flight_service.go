package services

import (
	"context"
	"fmt"
	"time"

	"skyreserva/internal/apiclient"
	"skyreserva/internal/cache"
	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/forms"
	"skyreserva/internal/utils"
)

const citiesKey = "ciudades"

type SearchResult struct {
	Flights []models.Flight `json:"vuelos"`
	Message string          `json:"message,omitempty"`
}

// FlightService reads the catalogue (cities, flights) through a cache.
// Cache failures are logged and fall through to the API.
type FlightService struct {
	API       FlightAPI
	Cache     cache.Cache
	TTL       time.Duration
	RequestID string
}

func (s FlightService) Cities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if s.cached(ctx, citiesKey, &cities) {
		return cities, nil
	}
	cities, err := s.API.Cities(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, citiesKey, cities)
	return cities, nil
}

func (s FlightService) Search(ctx context.Context, form forms.Search) (SearchResult, error) {
	if err := form.Validate(); err != nil {
		return SearchResult{}, err
	}
	form = form.Normalize()
	key := searchKey(form)

	var flights []models.Flight
	if !s.cached(ctx, key, &flights) {
		q := apiclient.FlightQuery{Origin: form.Origin, Destination: form.Destination, Date: form.Date}
		var err error
		if form.Sort == forms.SortBySchedule {
			flights, err = s.API.FlightsBySchedule(ctx, q)
		} else {
			flights, err = s.API.FlightsByFare(ctx, q)
		}
		if err != nil {
			return SearchResult{}, err
		}
		s.store(ctx, key, flights)
	}

	out := SearchResult{Flights: flights}
	if len(flights) == 0 {
		out.Flights = []models.Flight{}
		out.Message = forms.MsgNoFlights
	}
	utils.LogEvent(s.RequestID, "flights", "search", fmt.Sprintf("key=%s results=%d", key, len(flights)))
	return out, nil
}

// Flight is read live: seat availability changes with every booking.
func (s FlightService) Flight(ctx context.Context, id int64) (models.Flight, error) {
	if id <= 0 {
		return models.Flight{}, domain.ValidationError{Field: "vl_id", Msg: "id no válido"}
	}
	return s.API.Flight(ctx, id)
}

func searchKey(f forms.Search) string {
	return fmt.Sprintf("vuelos:%s:%d:%d:%s", f.Sort, f.Origin, f.Destination, f.Date)
}

func (s FlightService) cached(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}
	ok, err := s.Cache.Get(ctx, key, dst)
	if err != nil {
		utils.LogEvent(s.RequestID, "cache", "get", key+": "+err.Error())
		return false
	}
	return ok
}

func (s FlightService) store(ctx context.Context, key string, value any) {
	if s.Cache == nil || s.TTL <= 0 {
		return
	}
	if err := s.Cache.Set(ctx, key, value, s.TTL); err != nil {
		utils.LogEvent(s.RequestID, "cache", "set", key+": "+err.Error())
	}
}
