package settings

import (
	"context"
	"errors"
	"log/slog"

	apperrors "planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/validation"
	"planetary-server/internal/store"

	"github.com/google/uuid"
)

type Service struct {
	settings  *store.Collection[SimulationSettings]
	validator *validation.Validator
	listLimit int
	logger    *slog.Logger
}

func NewService(settings *store.Collection[SimulationSettings], validator *validation.Validator, listLimit int, logger *slog.Logger) *Service {
	logger.Debug("Initializing settings service")

	return &Service{
		settings:  settings,
		validator: validator,
		listLimit: listLimit,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*SimulationSettings, error) {
	logger := s.logger.With("component", "settings_service", "operation", "create")

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := s.settings.Now()
	created, err := s.settings.Insert(ctx, id, &SimulationSettings{
		ID:                    id,
		UserID:                req.UserID,
		TimeSpeed:             valueOr(req.TimeSpeed, DefaultTimeSpeed),
		ShowOrbits:            valueOr(req.ShowOrbits, DefaultShowOrbits),
		ShowLabels:            valueOr(req.ShowLabels, DefaultShowLabels),
		CameraDistance:        valueOr(req.CameraDistance, DefaultCameraDistance),
		AmbientLightIntensity: valueOr(req.AmbientLightIntensity, DefaultAmbientLightIntensity),
		PointLightIntensity:   valueOr(req.PointLightIntensity, DefaultPointLightIntensity),
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return nil, s.storeError(err, id, "failed to create settings")
	}

	logger.Info("Settings created", "id", id)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*SimulationSettings, error) {
	found, err := s.settings.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, id, "failed to get settings")
	}
	return found, nil
}

func (s *Service) GetAll(ctx context.Context) ([]SimulationSettings, error) {
	all, err := s.settings.List(ctx, s.listLimit)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list settings", err)
	}
	return all, nil
}

// ListAll returns every record, ignoring the list limit
func (s *Service) ListAll(ctx context.Context) ([]SimulationSettings, error) {
	all, err := s.settings.ListAll(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list all settings", err)
	}
	return all, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*SimulationSettings, error) {
	logger := s.logger.With("component", "settings_service", "operation", "update", "id", id)

	fields, err := req.Fields()
	if err != nil {
		return nil, err
	}

	updated, err := s.settings.MergeUpdate(ctx, id, fields)
	if err != nil {
		return nil, s.storeError(err, id, "failed to update settings")
	}

	logger.Info("Settings updated", "fields", len(fields))
	return updated, nil
}

// Delete removes the settings record. Systems that reference it keep the stale id.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.settings.Delete(ctx, id)
	if err != nil {
		return apperrors.WrapInternal("failed to delete settings", err)
	}
	if deleted == 0 {
		return apperrors.NotFoundf("Settings not found")
	}

	s.logger.Info("Settings deleted", "component", "settings_service", "operation", "delete", "id", id)
	return nil
}

func (s *Service) storeError(err error, id, message string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFoundf("Settings not found")
	case errors.Is(err, store.ErrDuplicateKey):
		return apperrors.Conflictf("settings %q already exist", id)
	default:
		return apperrors.WrapInternal(message, err)
	}
}
