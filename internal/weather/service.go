package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Service turns lookup requests into records using a provider and a store.
type Service struct {
	store         Store
	provider      Provider
	storeOnCreate bool
	newID         func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithStoreOnCreate makes Create insert every record it builds into the store.
// Without it created records are returned but never persisted.
func WithStoreOnCreate(enabled bool) Option {
	return func(s *Service) {
		s.storeOnCreate = enabled
	}
}

// NewService creates a new Service.
func NewService(store Store, provider Provider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		provider: provider,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create queries the provider for the request location and assembles a report.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Report, error) {
	if s.provider == nil {
		return Report{}, ErrMissingCredential
	}

	current, err := s.provider.Current(ctx, req.Location)
	if err != nil {
		return Report{}, fmt.Errorf("%s current conditions for %q: %w", s.provider.Name(), req.Location, err)
	}

	rec := Record{
		ID:       s.newID(),
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
		Weather:  json.RawMessage(current),
	}

	if s.storeOnCreate {
		s.store.Save(rec)
		log.Printf("INFO: stored weather record %s for %q", rec.ID, rec.Location)
	}

	return Report{
		Record:      rec,
		Temperature: temperatureOf(current),
		Description: descriptionOf(current),
	}, nil
}

// Get returns a previously stored record.
func (s *Service) Get(id string) (Record, error) {
	return s.store.Get(id)
}

func temperatureOf(current CurrentConditions) json.RawMessage {
	t := gjson.GetBytes(current, "temperature")
	if !t.Exists() {
		return nil
	}
	return json.RawMessage(t.Raw)
}

// descriptionOf returns the first weather description as text. A missing,
// empty or non-list value, or a null first entry, yields DescriptionFallback.
func descriptionOf(current CurrentConditions) string {
	list := gjson.GetBytes(current, "weather_descriptions")
	if !list.IsArray() {
		return DescriptionFallback
	}
	items := list.Array()
	if len(items) == 0 || items[0].Type == gjson.Null {
		return DescriptionFallback
	}
	return items[0].String()
}
