package weather

import (
	"context"
	"errors"
)

var (
	// ErrMissingCredential is returned when the provider has no access key configured.
	ErrMissingCredential = errors.New("weather provider credential is not configured")
	// ErrUpstream is returned when the provider call fails at the transport or status level.
	ErrUpstream = errors.New("weather provider request failed")
	// ErrNoCurrentConditions is returned when the provider answers without current conditions,
	// usually because the location could not be resolved.
	ErrNoCurrentConditions = errors.New("weather provider returned no current conditions")
)

// Provider abstracts a current-conditions weather source (e.g. weatherstack).
type Provider interface {
	Name() string
	Current(ctx context.Context, query string) (CurrentConditions, error)
}

// Store is the contract the in-memory record store must satisfy.
type Store interface {
	Save(rec Record)
	Get(id string) (Record, error)
	Len() int
}
