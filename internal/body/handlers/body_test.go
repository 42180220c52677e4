package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planetary-server/internal/body"
	"planetary-server/internal/shared/response"
	"planetary-server/internal/shared/validation"
	"planetary-server/internal/store"
	"planetary-server/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bodies := store.NewCollection[body.PlanetaryBody](memory.New(), body.CollectionName, store.WithLogger(logger))
	handler := NewBodyHandler(body.NewService(bodies, validation.New(), store.DefaultListLimit, logger))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/planetary/bodies", handler.HandleCollection)
	mux.HandleFunc("/api/planetary/bodies/{id}", handler.HandleItem)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if payload != "" {
		reader = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestBodyHandler_Lifecycle(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/planetary/bodies", `{"name":"Test","radius":1.5,"color":"#FF5733"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[body.PlanetaryBody](t, rec)
	assert.Equal(t, []float64{0, 0, 0}, created.Position)
	assert.Equal(t, 0.001, created.RotationSpeed)
	assert.Equal(t, body.BodyTypePlanet, created.BodyType)

	rec = do(t, mux, http.MethodPut, "/api/planetary/bodies/"+created.ID, `{"radius":2.0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[body.PlanetaryBody](t, rec)
	assert.Equal(t, "Test", updated.Name)
	assert.Equal(t, 2.0, updated.Radius)

	rec = do(t, mux, http.MethodDelete, "/api/planetary/bodies/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planetary body deleted successfully", decode[response.MessageResponse](t, rec).Message)

	rec = do(t, mux, http.MethodGet, "/api/planetary/bodies/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decode[response.ErrorResponse](t, rec)
	assert.Equal(t, "not_found", errResp.Error)
	assert.Equal(t, "Planetary body not found", errResp.Message)
}

func TestBodyHandler_PatchNullClearsTexture(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/planetary/bodies", `{"id":"earth","name":"Earth","radius":1.3,"color":"#6B93D6","texture":"earth.jpg"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, mux, http.MethodPatch, "/api/planetary/bodies/earth", `{"texture":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "texture")
	assert.Nil(t, raw["texture"])
	assert.Equal(t, "Earth", raw["name"])
}

func TestBodyHandler_Errors(t *testing.T) {
	mux := newTestMux(t)
	require.Equal(t, http.StatusCreated, do(t, mux, http.MethodPost, "/api/planetary/bodies", `{"id":"sun","name":"Sun","radius":5,"color":"#FDB813"}`).Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"create missing fields", http.MethodPost, "/api/planetary/bodies", `{"name":"x"}`, http.StatusBadRequest},
		{"create malformed json", http.MethodPost, "/api/planetary/bodies", `{"name":`, http.StatusBadRequest},
		{"create empty body", http.MethodPost, "/api/planetary/bodies", ``, http.StatusBadRequest},
		{"create wrong type", http.MethodPost, "/api/planetary/bodies", `{"name":"x","radius":"big","color":"#fff"}`, http.StatusBadRequest},
		{"create duplicate id", http.MethodPost, "/api/planetary/bodies", `{"id":"sun","name":"Sun","radius":5,"color":"#FDB813"}`, http.StatusConflict},
		{"update null name", http.MethodPut, "/api/planetary/bodies/sun", `{"name":null}`, http.StatusBadRequest},
		{"update missing", http.MethodPut, "/api/planetary/bodies/nope", `{"name":"x"}`, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/api/planetary/bodies/nope", ``, http.StatusNotFound},
		{"collection wrong method", http.MethodDelete, "/api/planetary/bodies", ``, http.StatusMethodNotAllowed},
		{"item wrong method", http.MethodPost, "/api/planetary/bodies/sun", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestBodyHandler_ValidationDetails(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/planetary/bodies", `{"radius":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errResp := decode[response.ErrorResponse](t, rec)
	assert.Equal(t, "validation", errResp.Error)
	assert.Equal(t, http.StatusBadRequest, errResp.Code)
	assert.Equal(t, "is required", errResp.Details["name"])
	assert.Equal(t, "is required", errResp.Details["color"])
	assert.Contains(t, errResp.Details, "radius")
}

func TestBodyHandler_ListReturnsEmptyArray(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodGet, "/api/planetary/bodies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
