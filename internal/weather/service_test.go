package weather_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-records/internal/store"
	"github.com/i474232898/weather-records/internal/weather"
)

type fakeProvider struct {
	current weather.CurrentConditions
	err     error
	queries []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Current(_ context.Context, query string) (weather.CurrentConditions, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.current, nil
}

var parisRequest = weather.CreateRequest{Date: "2024-01-01", Location: "Paris", Notes: "trip"}

func TestCreateReport(t *testing.T) {
	prov := &fakeProvider{current: weather.CurrentConditions(`{"temperature":18,"weather_descriptions":["Sunny","Windy"],"humidity":40}`)}
	svc := weather.NewService(store.NewMemoryStore(), prov)

	report, err := svc.Create(context.Background(), parisRequest)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "2024-01-01", report.Date)
	assert.Equal(t, "Paris", report.Location)
	assert.Equal(t, "trip", report.Notes)
	assert.JSONEq(t, string(prov.current), string(report.Weather))
	assert.Equal(t, "18", string(report.Temperature))
	assert.Equal(t, "Sunny", report.Description)
	assert.Equal(t, []string{"Paris"}, prov.queries)
}

func TestCreateDescriptionFallback(t *testing.T) {
	cases := map[string]string{
		"missing list":     `{"temperature":3}`,
		"empty list":       `{"temperature":3,"weather_descriptions":[]}`,
		"null first entry": `{"temperature":3,"weather_descriptions":[null,"Rain"]}`,
		"object not list":  `{"temperature":3,"weather_descriptions":{"0":"Obj"}}`,
		"string not list":  `{"temperature":3,"weather_descriptions":"Sunny"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			svc := weather.NewService(store.NewMemoryStore(), &fakeProvider{current: weather.CurrentConditions(payload)})

			report, err := svc.Create(context.Background(), parisRequest)
			require.NoError(t, err)
			assert.Equal(t, weather.DescriptionFallback, report.Description)
		})
	}
}

func TestCreateTemperatureKeepsProviderValue(t *testing.T) {
	cases := []string{`12345678901234567890`, `18.50`, `-0`, `"warm"`}
	for _, raw := range cases {
		current := weather.CurrentConditions(`{"temperature":` + raw + `,"weather_descriptions":["Sunny"]}`)
		svc := weather.NewService(store.NewMemoryStore(), &fakeProvider{current: current})

		report, err := svc.Create(context.Background(), parisRequest)
		require.NoError(t, err)
		assert.Equal(t, raw, string(report.Temperature))

		body, err := json.Marshal(report)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"temperature":`+raw+`,`)
	}
}

func TestCreateMissingTemperatureIsNull(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(), &fakeProvider{current: weather.CurrentConditions(`{"weather_descriptions":["Fog"]}`)})

	report, err := svc.Create(context.Background(), parisRequest)
	require.NoError(t, err)
	assert.Nil(t, report.Temperature)

	body, err := json.Marshal(report)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out, "temperature")
	assert.Nil(t, out["temperature"])
	assert.Equal(t, "Fog", out["description"])
}

func TestCreatePropagatesProviderErrors(t *testing.T) {
	for _, kind := range []error{weather.ErrMissingCredential, weather.ErrUpstream, weather.ErrNoCurrentConditions} {
		svc := weather.NewService(store.NewMemoryStore(), &fakeProvider{err: kind})

		_, err := svc.Create(context.Background(), parisRequest)
		require.ErrorIs(t, err, kind)
	}
}

func TestCreateDistinctIDs(t *testing.T) {
	prov := &fakeProvider{current: weather.CurrentConditions(`{"temperature":18,"weather_descriptions":["Sunny"]}`)}
	svc := weather.NewService(store.NewMemoryStore(), prov)

	first, err := svc.Create(context.Background(), parisRequest)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), parisRequest)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Weather, second.Weather)
}

func TestCreateDoesNotStoreByDefault(t *testing.T) {
	memStore := store.NewMemoryStore()
	svc := weather.NewService(memStore, &fakeProvider{current: weather.CurrentConditions(`{}`)})

	report, err := svc.Create(context.Background(), parisRequest)
	require.NoError(t, err)

	_, err = svc.Get(report.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, memStore.Len())
}

func TestCreateStoresWhenEnabled(t *testing.T) {
	memStore := store.NewMemoryStore()
	svc := weather.NewService(memStore, &fakeProvider{current: weather.CurrentConditions(`{"temperature":1}`)},
		weather.WithStoreOnCreate(true))

	report, err := svc.Create(context.Background(), parisRequest)
	require.NoError(t, err)

	rec, err := svc.Get(report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Record, rec)
	assert.Equal(t, 1, memStore.Len())
}

func TestCreateWithoutProvider(t *testing.T) {
	svc := weather.NewService(store.NewMemoryStore(), nil)

	_, err := svc.Create(context.Background(), parisRequest)
	require.ErrorIs(t, err, weather.ErrMissingCredential)
}
