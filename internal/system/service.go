package system

import (
	"context"
	"errors"
	"log/slog"

	"planetary-server/internal/body"
	"planetary-server/internal/settings"
	apperrors "planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/validation"
	"planetary-server/internal/store"

	"github.com/google/uuid"
)

// BodyLister and SettingsLister read a whole family for the integrity audit
type BodyLister interface {
	ListAll(ctx context.Context) ([]body.PlanetaryBody, error)
}

type SettingsLister interface {
	ListAll(ctx context.Context) ([]settings.SimulationSettings, error)
}

type Service struct {
	systems   *store.Collection[PlanetarySystem]
	bodies    BodyLister
	settings  SettingsLister
	validator *validation.Validator
	listLimit int
	logger    *slog.Logger
}

func NewService(
	systems *store.Collection[PlanetarySystem],
	bodies BodyLister,
	settings SettingsLister,
	validator *validation.Validator,
	listLimit int,
	logger *slog.Logger,
) *Service {
	logger.Debug("Initializing system service")

	return &Service{
		systems:   systems,
		bodies:    bodies,
		settings:  settings,
		validator: validator,
		listLimit: listLimit,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*PlanetarySystem, error) {
	logger := s.logger.With("component", "system_service", "operation", "create", "name", req.Name)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	bodies := req.Bodies
	if bodies == nil {
		bodies = []string{}
	}

	now := s.systems.Now()
	created, err := s.systems.Insert(ctx, id, &PlanetarySystem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		Bodies:      bodies,
		Settings:    req.Settings,
		IsDefault:   req.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, s.storeError(err, id, "failed to create planetary system")
	}

	logger.Info("Planetary system created", "id", id, "bodies", len(bodies))
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PlanetarySystem, error) {
	found, err := s.systems.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, id, "failed to get planetary system")
	}
	return found, nil
}

func (s *Service) GetAll(ctx context.Context) ([]PlanetarySystem, error) {
	all, err := s.systems.List(ctx, s.listLimit)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list planetary systems", err)
	}
	return all, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*PlanetarySystem, error) {
	logger := s.logger.With("component", "system_service", "operation", "update", "id", id)

	fields, err := req.Fields()
	if err != nil {
		return nil, err
	}

	updated, err := s.systems.MergeUpdate(ctx, id, fields)
	if err != nil {
		return nil, s.storeError(err, id, "failed to update planetary system")
	}

	logger.Info("Planetary system updated", "fields", len(fields))
	return updated, nil
}

// Delete removes only the system record; its bodies and settings stay.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.systems.Delete(ctx, id)
	if err != nil {
		return apperrors.WrapInternal("failed to delete planetary system", err)
	}
	if deleted == 0 {
		return apperrors.NotFoundf("Planetary system not found")
	}

	s.logger.Info("Planetary system deleted", "component", "system_service", "operation", "delete", "id", id)
	return nil
}

func (s *Service) storeError(err error, id, message string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFoundf("Planetary system not found")
	case errors.Is(err, store.ErrDuplicateKey):
		return apperrors.Conflictf("planetary system %q already exists", id)
	default:
		return apperrors.WrapInternal(message, err)
	}
}
