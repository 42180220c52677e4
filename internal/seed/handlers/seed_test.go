package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"planetary-server/internal/body"
	"planetary-server/internal/seed"
	"planetary-server/internal/settings"
	"planetary-server/internal/shared/validation"
	"planetary-server/internal/store"
	"planetary-server/internal/store/memory"
	"planetary-server/internal/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *SeedHandler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := memory.New()
	v := validation.New()

	bodies := body.NewService(store.NewCollection[body.PlanetaryBody](backend, body.CollectionName), v, store.DefaultListLimit, logger)
	st := settings.NewService(store.NewCollection[settings.SimulationSettings](backend, settings.CollectionName), v, store.DefaultListLimit, logger)
	systems := system.NewService(store.NewCollection[system.PlanetarySystem](backend, system.CollectionName), bodies, st, v, store.DefaultListLimit, logger)

	return NewSeedHandler(seed.NewSeeder(bodies, st, systems, logger))
}

func TestSeedHandler_Initialize(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Initialize(rec, httptest.NewRequest(http.MethodPost, "/api/planetary/initialize", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Default data initialized successfully"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Initialize(rec, httptest.NewRequest(http.MethodPost, "/api/planetary/initialize", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Default data already exists"}`, rec.Body.String())
}

func TestSeedHandler_RejectsGet(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Initialize(rec, httptest.NewRequest(http.MethodGet, "/api/planetary/initialize", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
