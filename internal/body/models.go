package body

import (
	"time"

	"planetary-server/internal/shared/patch"
	"planetary-server/internal/store"

	"github.com/oapi-codegen/nullable"
)

// CollectionName is the store collection holding planetary bodies
const CollectionName = "planetary_bodies"

const DefaultRotationSpeed = 0.001

type BodyType string

const (
	BodyTypePlanet    BodyType = "planet"
	BodyTypeMoon      BodyType = "moon"
	BodyTypeSatellite BodyType = "satellite"
	BodyTypeStar      BodyType = "star"
)

func (t BodyType) IsValid() bool {
	switch t {
	case BodyTypePlanet, BodyTypeMoon, BodyTypeSatellite, BodyTypeStar:
		return true
	default:
		return false
	}
}

type PlanetaryBody struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Radius        float64   `json:"radius"`
	Color         string    `json:"color"`
	Position      []float64 `json:"position"`
	RotationSpeed float64   `json:"rotation_speed"`
	Description   string    `json:"description"`
	Facts         []string  `json:"facts"`
	Texture       *string   `json:"texture"`
	Emissive      bool      `json:"emissive"`
	HasFlares     bool      `json:"has_flares"`
	HasAtmosphere bool      `json:"has_atmosphere"`
	OrbitRadius   *float64  `json:"orbit_radius"`
	OrbitSpeed    *float64  `json:"orbit_speed"`
	// Parent is the id of the body this one orbits. Deleting the parent leaves it dangling.
	Parent    *string   `json:"parent"`
	BodyType  BodyType  `json:"body_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for a new body. Pointer fields fall back to
// their defaults when omitted.
type CreateRequest struct {
	ID            string    `json:"id" validate:"omitempty,max=128"`
	Name          string    `json:"name" validate:"required"`
	Radius        float64   `json:"radius" validate:"required,gt=0"`
	Color         string    `json:"color" validate:"required"`
	Position      []float64 `json:"position" validate:"omitempty,len=3"`
	RotationSpeed *float64  `json:"rotation_speed"`
	Description   string    `json:"description"`
	Facts         []string  `json:"facts"`
	Texture       *string   `json:"texture"`
	Emissive      bool      `json:"emissive"`
	HasFlares     bool      `json:"has_flares"`
	HasAtmosphere bool      `json:"has_atmosphere"`
	OrbitRadius   *float64  `json:"orbit_radius"`
	OrbitSpeed    *float64  `json:"orbit_speed"`
	Parent        *string   `json:"parent"`
	BodyType      BodyType  `json:"body_type"`
}

// UpdateRequest distinguishes omitted fields from explicit nulls
type UpdateRequest struct {
	Name          nullable.Nullable[string]    `json:"name"`
	Radius        nullable.Nullable[float64]   `json:"radius"`
	Color         nullable.Nullable[string]    `json:"color"`
	Position      nullable.Nullable[[]float64] `json:"position"`
	RotationSpeed nullable.Nullable[float64]   `json:"rotation_speed"`
	Description   nullable.Nullable[string]    `json:"description"`
	Facts         nullable.Nullable[[]string]  `json:"facts"`
	Texture       nullable.Nullable[string]    `json:"texture"`
	Emissive      nullable.Nullable[bool]      `json:"emissive"`
	HasFlares     nullable.Nullable[bool]      `json:"has_flares"`
	HasAtmosphere nullable.Nullable[bool]      `json:"has_atmosphere"`
	OrbitRadius   nullable.Nullable[float64]   `json:"orbit_radius"`
	OrbitSpeed    nullable.Nullable[float64]   `json:"orbit_speed"`
	Parent        nullable.Nullable[string]    `json:"parent"`
	BodyType      nullable.Nullable[BodyType]  `json:"body_type"`
}

// Fields returns only the keys the client sent
func (u UpdateRequest) Fields() (store.Fields, error) {
	b := patch.New()
	patch.Required(b, "name", u.Name, patch.NotEmpty)
	patch.Required(b, "radius", u.Radius, patch.Positive)
	patch.Required(b, "color", u.Color, patch.NotEmpty)
	patch.Required(b, "position", u.Position, patch.Length[float64](3))
	patch.Required(b, "rotation_speed", u.RotationSpeed)
	patch.Required(b, "description", u.Description)
	patch.Required(b, "facts", u.Facts)
	patch.Optional(b, "texture", u.Texture)
	patch.Required(b, "emissive", u.Emissive)
	patch.Required(b, "has_flares", u.HasFlares)
	patch.Required(b, "has_atmosphere", u.HasAtmosphere)
	patch.Optional(b, "orbit_radius", u.OrbitRadius)
	patch.Optional(b, "orbit_speed", u.OrbitSpeed)
	patch.Optional(b, "parent", u.Parent)
	patch.Required(b, "body_type", u.BodyType)
	return b.Fields()
}
