package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planetary-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func decodeBody(t *testing.T, body string) (payload, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst payload
	err := DecodeJSON(httptest.NewRecorder(), req, &dst)
	return dst, err
}

func TestDecodeJSON(t *testing.T) {
	got, err := decodeBody(t, `{"name":"Earth","unknown":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Earth", got.Name)
}

func TestDecodeJSON_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty body", body: "", wantMsg: "request body must be a JSON object"},
		{name: "malformed", body: `{"name":`, wantMsg: "invalid request body"},
		{name: "wrong type", body: `{"name":42}`, wantMsg: "invalid request body"},
		{name: "trailing object", body: `{"name":"a"}{"name":"b"}`, wantMsg: "single JSON object"},
		{name: "too large", body: `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`, wantMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBody(t, tt.body)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
