// Package seed installs the default solar system into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"planetary-server/internal/body"
	"planetary-server/internal/settings"
	apperrors "planetary-server/internal/shared/errors"
	"planetary-server/internal/system"
)

const (
	MessageInitialized   = "Default data initialized successfully"
	MessageAlreadyExists = "Default data already exists"
)

type Outcome struct {
	Message string `json:"message"`
	// Created is false when the store already held bodies
	Created bool `json:"-"`
}

type Seeder struct {
	bodies   *body.Service
	settings *settings.Service
	systems  *system.Service
	logger   *slog.Logger

	// serializes runs within this process; separate processes may still race
	mu sync.Mutex
}

func NewSeeder(bodies *body.Service, settings *settings.Service, systems *system.Service, logger *slog.Logger) *Seeder {
	return &Seeder{
		bodies:   bodies,
		settings: settings,
		systems:  systems,
		logger:   logger,
	}
}

// InitializeDefaults seeds the store unless any body exists. A partial earlier
// run is completed: records that already exist are kept as they are.
func (s *Seeder) InitializeDefaults(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("component", "seeder", "operation", "initialize_defaults")

	count, err := s.bodies.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		logger.Debug("Bodies already present, skipping seed", "count", count)
		return &Outcome{Message: MessageAlreadyExists}, nil
	}

	logger.Info("Seeding default solar system")

	bodies := DefaultBodies()
	for _, req := range bodies {
		if _, err := s.bodies.Create(ctx, req); err != nil && !alreadyPresent(err) {
			return nil, fmt.Errorf("failed to seed body %s: %w", req.ID, err)
		}
	}

	if _, err := s.settings.Create(ctx, DefaultSettings()); err != nil {
		if !alreadyPresent(err) {
			return nil, fmt.Errorf("failed to seed settings: %w", err)
		}
		logger.Info("Default settings already present, keeping them")
	}

	if _, err := s.systems.Create(ctx, DefaultSystem(bodies)); err != nil {
		if !alreadyPresent(err) {
			return nil, fmt.Errorf("failed to seed system: %w", err)
		}
		logger.Info("Default system already present, keeping it")
	}

	logger.Info("Default data seeded", "bodies", len(bodies))
	return &Outcome{Message: MessageInitialized, Created: true}, nil
}

func alreadyPresent(err error) bool {
	return apperrors.GetType(err) == apperrors.ErrorTypeConflict
}
