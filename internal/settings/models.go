package settings

import (
	"time"

	"planetary-server/internal/shared/patch"
	"planetary-server/internal/store"

	"github.com/oapi-codegen/nullable"
)

// CollectionName is the store collection holding simulation settings
const CollectionName = "simulation_settings"

const (
	DefaultTimeSpeed             = 1.0
	DefaultShowOrbits            = true
	DefaultShowLabels            = true
	DefaultCameraDistance        = 80.0
	DefaultAmbientLightIntensity = 0.2
	DefaultPointLightIntensity   = 1.5
)

// SimulationSettings tunes how a client renders a system. The values are opaque here.
type SimulationSettings struct {
	ID                    string    `json:"id"`
	UserID                *string   `json:"user_id"`
	TimeSpeed             float64   `json:"time_speed"`
	ShowOrbits            bool      `json:"show_orbits"`
	ShowLabels            bool      `json:"show_labels"`
	CameraDistance        float64   `json:"camera_distance"`
	AmbientLightIntensity float64   `json:"ambient_light_intensity"`
	PointLightIntensity   float64   `json:"point_light_intensity"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type CreateRequest struct {
	ID                    string   `json:"id" validate:"omitempty,max=128"`
	UserID                *string  `json:"user_id"`
	TimeSpeed             *float64 `json:"time_speed"`
	ShowOrbits            *bool    `json:"show_orbits"`
	ShowLabels            *bool    `json:"show_labels"`
	CameraDistance        *float64 `json:"camera_distance"`
	AmbientLightIntensity *float64 `json:"ambient_light_intensity"`
	PointLightIntensity   *float64 `json:"point_light_intensity"`
}

// UpdateRequest has no user_id: ownership is fixed at creation
type UpdateRequest struct {
	TimeSpeed             nullable.Nullable[float64] `json:"time_speed"`
	ShowOrbits            nullable.Nullable[bool]    `json:"show_orbits"`
	ShowLabels            nullable.Nullable[bool]    `json:"show_labels"`
	CameraDistance        nullable.Nullable[float64] `json:"camera_distance"`
	AmbientLightIntensity nullable.Nullable[float64] `json:"ambient_light_intensity"`
	PointLightIntensity   nullable.Nullable[float64] `json:"point_light_intensity"`
}

func (u UpdateRequest) Fields() (store.Fields, error) {
	b := patch.New()
	patch.Required(b, "time_speed", u.TimeSpeed)
	patch.Required(b, "show_orbits", u.ShowOrbits)
	patch.Required(b, "show_labels", u.ShowLabels)
	patch.Required(b, "camera_distance", u.CameraDistance)
	patch.Required(b, "ambient_light_intensity", u.AmbientLightIntensity)
	patch.Required(b, "point_light_intensity", u.PointLightIntensity)
	return b.Fields()
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
