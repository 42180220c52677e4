package seed

import (
	"planetary-server/internal/body"
	"planetary-server/internal/settings"
	"planetary-server/internal/system"
)

const (
	DefaultSettingsID = "default_settings"
	DefaultSystemID   = "default_system"
)

func ptr[T any](v T) *T { return &v }

// DefaultBodies is the canonical solar system, in the order the default system lists it.
func DefaultBodies() []body.CreateRequest {
	return []body.CreateRequest{
		{
			ID:            "sun",
			Name:          "Sun",
			Radius:        5.0,
			Color:         "#FDB813",
			Position:      []float64{0, 0, 0},
			RotationSpeed: ptr(0.001),
			Description:   "The Sun is the star at the center of our solar system.",
			Facts:         []string{"Temperature: 5,778 K (surface)", "Mass: 1.989 × 10³⁰ kg"},
			Emissive:      true,
			HasFlares:     true,
			BodyType:      body.BodyTypeStar,
		},
		{
			ID:            "mercury",
			Name:          "Mercury",
			Radius:        0.8,
			Color:         "#8C7853",
			OrbitRadius:   ptr(15.0),
			OrbitSpeed:    ptr(0.02),
			RotationSpeed: ptr(0.005),
			Position:      []float64{15, 0, 0},
			Description:   "Mercury is the smallest planet in our solar system.",
			Facts:         []string{"Distance from Sun: 58 million km", "Orbital period: 88 Earth days"},
			BodyType:      body.BodyTypePlanet,
		},
		{
			ID:            "venus",
			Name:          "Venus",
			Radius:        1.2,
			Color:         "#FFC649",
			OrbitRadius:   ptr(22.0),
			OrbitSpeed:    ptr(0.015),
			RotationSpeed: ptr(-0.002),
			Position:      []float64{22, 0, 0},
			Description:   "Venus is the second planet from the Sun.",
			Facts:         []string{"Distance from Sun: 108 million km", "Orbital period: 225 Earth days"},
			BodyType:      body.BodyTypePlanet,
		},
		{
			ID:            "earth",
			Name:          "Earth",
			Radius:        1.3,
			Color:         "#6B93D6",
			OrbitRadius:   ptr(30.0),
			OrbitSpeed:    ptr(0.01),
			RotationSpeed: ptr(0.01),
			Position:      []float64{30, 0, 0},
			Description:   "Earth is the third planet from the Sun.",
			Facts:         []string{"Distance from Sun: 150 million km", "Orbital period: 365.25 days"},
			HasAtmosphere: true,
			BodyType:      body.BodyTypePlanet,
		},
		{
			ID:            "moon",
			Name:          "Moon",
			Radius:        0.35,
			Color:         "#D3D3D3",
			OrbitRadius:   ptr(4.0),
			OrbitSpeed:    ptr(0.05),
			RotationSpeed: ptr(0.05),
			Parent:        ptr("earth"),
			Position:      []float64{34, 0, 0},
			Description:   "The Moon is Earth's only natural satellite.",
			Facts:         []string{"Distance from Earth: 384,400 km", "Orbital period: 27.3 days"},
			BodyType:      body.BodyTypeMoon,
		},
		{
			ID:          "iss",
			Name:        "International Space Station",
			Radius:      0.08,
			Color:       "#C0C0C0",
			OrbitRadius: ptr(6.5),
			OrbitSpeed:  ptr(0.08),
			Parent:      ptr("earth"),
			Description: "The ISS is a large spacecraft in orbit around Earth.",
			Facts:       []string{"Altitude: 408 km above Earth", "Speed: 28,000 km/h"},
			BodyType:    body.BodyTypeSatellite,
		},
		{
			ID:          "hubble",
			Name:        "Hubble Space Telescope",
			Radius:      0.06,
			Color:       "#4A90E2",
			OrbitRadius: ptr(7.2),
			OrbitSpeed:  ptr(0.06),
			Parent:      ptr("earth"),
			Description: "The Hubble Space Telescope is a space-based observatory.",
			Facts:       []string{"Altitude: 547 km above Earth", "Launch: April 24, 1990"},
			BodyType:    body.BodyTypeSatellite,
		},
		{
			ID:          "gps",
			Name:        "GPS Satellite",
			Radius:      0.05,
			Color:       "#FFD700",
			OrbitRadius: ptr(8.5),
			OrbitSpeed:  ptr(0.04),
			Parent:      ptr("earth"),
			Description: "GPS satellites provide global positioning services.",
			Facts:       []string{"Altitude: 20,200 km above Earth", "Constellation: 24+ satellites"},
			BodyType:    body.BodyTypeSatellite,
		},
	}
}

func DefaultSettings() settings.CreateRequest {
	return settings.CreateRequest{
		ID:                    DefaultSettingsID,
		TimeSpeed:             ptr(settings.DefaultTimeSpeed),
		ShowOrbits:            ptr(settings.DefaultShowOrbits),
		ShowLabels:            ptr(settings.DefaultShowLabels),
		CameraDistance:        ptr(settings.DefaultCameraDistance),
		AmbientLightIntensity: ptr(settings.DefaultAmbientLightIntensity),
		PointLightIntensity:   ptr(settings.DefaultPointLightIntensity),
	}
}

func DefaultSystem(bodies []body.CreateRequest) system.CreateRequest {
	ids := make([]string, 0, len(bodies))
	for _, b := range bodies {
		ids = append(ids, b.ID)
	}

	return system.CreateRequest{
		ID:          DefaultSystemID,
		Name:        "Solar System",
		Description: "Our solar system with Sun, planets, moon, and satellites",
		Bodies:      ids,
		Settings:    ptr(DefaultSettingsID),
		IsDefault:   true,
	}
}
