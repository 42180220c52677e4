package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"planetary-server/internal/app"
	"planetary-server/internal/body"
	"planetary-server/internal/seed"
	"planetary-server/internal/shared/config"
	"planetary-server/internal/shared/errors"
	"planetary-server/internal/store/memory"
	"planetary-server/internal/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFactory shares one memory backend across every command run in a test
func newFactory(t *testing.T) AppFactory {
	t.Helper()

	backend := memory.New()
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory, ListLimit: 1000}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return func(ctx context.Context) (*app.App, error) {
		return app.NewWithBackend(cfg, backend, logger)
	}
}

func execute(t *testing.T, open AppFactory, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := RootCommand(open)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	open := newFactory(t)

	out, err := execute(t, open, "seed")
	require.NoError(t, err)
	assert.Equal(t, seed.MessageInitialized+"\n", out)

	out, err = execute(t, open, "seed")
	require.NoError(t, err)
	assert.Equal(t, seed.MessageAlreadyExists+"\n", out)
}

func TestListAndGetCommands(t *testing.T) {
	open := newFactory(t)
	_, err := execute(t, open, "seed")
	require.NoError(t, err)

	out, err := execute(t, open, "list", "bodies")
	require.NoError(t, err)
	var bodies []body.PlanetaryBody
	require.NoError(t, json.Unmarshal([]byte(out), &bodies))
	assert.Len(t, bodies, 8)

	out, err = execute(t, open, "get", "systems", seed.DefaultSystemID)
	require.NoError(t, err)
	var sys system.PlanetarySystem
	require.NoError(t, json.Unmarshal([]byte(out), &sys))
	assert.Equal(t, seed.DefaultSettingsID, *sys.Settings)

	_, err = execute(t, open, "get", "bodies", "pluto")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
}

func TestDeleteThenIntegrity(t *testing.T) {
	open := newFactory(t)
	_, err := execute(t, open, "seed")
	require.NoError(t, err)

	out, err := execute(t, open, "integrity", "--strict")
	require.NoError(t, err)
	var report system.IntegrityReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.OK)

	out, err = execute(t, open, "delete", "bodies", "earth")
	require.NoError(t, err)
	assert.Equal(t, "Deleted bodies earth\n", out)

	out, err = execute(t, open, "integrity")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.OK)
	assert.NotEmpty(t, report.DanglingParents)

	_, err = execute(t, open, "integrity", "--strict")
	assert.ErrorContains(t, err, "integrity check found problems")
}

func TestUnknownResource(t *testing.T) {
	_, err := execute(t, newFactory(t), "list", "comets")
	assert.ErrorContains(t, err, "unknown resource \"comets\", expected one of bodies, settings, systems")
}
