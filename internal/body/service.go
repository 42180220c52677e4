package body

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
	bodies    *store.Collection[PlanetaryBody]
	validator *validation.Validator
	listLimit int
	logger    *slog.Logger
}

func NewService(bodies *store.Collection[PlanetaryBody], validator *validation.Validator, listLimit int, logger *slog.Logger) *Service {
	logger.Debug("Initializing body service")

	return &Service{
		bodies:    bodies,
		validator: validator,
		listLimit: listLimit,
		logger:    logger,
	}
}

// Create stores a new body, generating an id when the request has none
func (s *Service) Create(ctx context.Context, req CreateRequest) (*PlanetaryBody, error) {
	logger := s.logger.With("component", "body_service", "operation", "create", "name", req.Name)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := s.bodies.Now()
	body := &PlanetaryBody{
		ID:            id,
		Name:          req.Name,
		Radius:        req.Radius,
		Color:         req.Color,
		Position:      req.Position,
		RotationSpeed: DefaultRotationSpeed,
		Description:   req.Description,
		Facts:         req.Facts,
		Texture:       req.Texture,
		Emissive:      req.Emissive,
		HasFlares:     req.HasFlares,
		HasAtmosphere: req.HasAtmosphere,
		OrbitRadius:   req.OrbitRadius,
		OrbitSpeed:    req.OrbitSpeed,
		Parent:        req.Parent,
		BodyType:      req.BodyType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if len(body.Position) == 0 {
		body.Position = []float64{0, 0, 0}
	}
	if req.RotationSpeed != nil {
		body.RotationSpeed = *req.RotationSpeed
	}
	if body.Facts == nil {
		body.Facts = []string{}
	}
	if body.BodyType == "" {
		body.BodyType = BodyTypePlanet
	}

	created, err := s.bodies.Insert(ctx, id, body)
	if err != nil {
		return nil, s.storeError(err, id, "failed to create planetary body")
	}

	logger.Info("Planetary body created", "id", id, "body_type", created.BodyType)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PlanetaryBody, error) {
	body, err := s.bodies.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, id, "failed to get planetary body")
	}
	return body, nil
}

func (s *Service) GetAll(ctx context.Context) ([]PlanetaryBody, error) {
	bodies, err := s.bodies.List(ctx, s.listLimit)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list planetary bodies", err)
	}
	return bodies, nil
}

// ListAll returns every record, ignoring the list limit
func (s *Service) ListAll(ctx context.Context) ([]PlanetaryBody, error) {
	all, err := s.bodies.ListAll(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list all planetary bodies", err)
	}
	return all, nil
}

// Update changes only the fields present in req
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*PlanetaryBody, error) {
	logger := s.logger.With("component", "body_service", "operation", "update", "id", id)

	fields, err := req.Fields()
	if err != nil {
		return nil, err
	}

	body, err := s.bodies.MergeUpdate(ctx, id, fields)
	if err != nil {
		return nil, s.storeError(err, id, "failed to update planetary body")
	}

	logger.Info("Planetary body updated", "fields", len(fields))
	return body, nil
}

// Delete removes the body. Bodies naming it as parent are left as they are.
func (s *Service) Delete(ctx context.Context, id string) error {
	logger := s.logger.With("component", "body_service", "operation", "delete", "id", id)

	deleted, err := s.bodies.Delete(ctx, id)
	if err != nil {
		return apperrors.WrapInternal("failed to delete planetary body", err)
	}
	if deleted == 0 {
		return apperrors.NotFoundf("Planetary body not found")
	}

	logger.Info("Planetary body deleted")
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.bodies.Count(ctx)
	if err != nil {
		return 0, apperrors.WrapInternal("failed to count planetary bodies", err)
	}
	return count, nil
}

func (s *Service) storeError(err error, id, message string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFoundf("Planetary body not found")
	case errors.Is(err, store.ErrDuplicateKey):
		return apperrors.Conflictf("planetary body %q already exists", id)
	default:
		return apperrors.WrapInternal(message, err)
	}
}
