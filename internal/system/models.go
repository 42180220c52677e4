package system

import (
	"time"

	"planetary-server/internal/shared/patch"
	"planetary-server/internal/store"

	"github.com/oapi-codegen/nullable"
)

// CollectionName is the store collection holding planetary systems
const CollectionName = "planetary_systems"

// PlanetarySystem groups bodies and a settings record by id. Neither reference is checked on write.
type PlanetarySystem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      *string   `json:"user_id"`
	Bodies      []string  `json:"bodies"`
	Settings    *string   `json:"settings"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateRequest struct {
	ID          string   `json:"id" validate:"omitempty,max=128"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	UserID      *string  `json:"user_id"`
	Bodies      []string `json:"bodies"`
	Settings    *string  `json:"settings"`
	IsDefault   bool     `json:"is_default"`
}

type UpdateRequest struct {
	Name        nullable.Nullable[string]   `json:"name"`
	Description nullable.Nullable[string]   `json:"description"`
	Bodies      nullable.Nullable[[]string] `json:"bodies"`
	Settings    nullable.Nullable[string]   `json:"settings"`
	IsDefault   nullable.Nullable[bool]     `json:"is_default"`
}

func (u UpdateRequest) Fields() (store.Fields, error) {
	b := patch.New()
	patch.Required(b, "name", u.Name, patch.NotEmpty)
	patch.Required(b, "description", u.Description)
	patch.Required(b, "bodies", u.Bodies)
	patch.Optional(b, "settings", u.Settings)
	patch.Required(b, "is_default", u.IsDefault)
	return b.Fields()
}

// DanglingReference is a record pointing at an id that does not exist
type DanglingReference struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}

type UnknownBodyType struct {
	ID       string `json:"id"`
	BodyType string `json:"body_type"`
}

// IntegrityReport lists every soft invariant the stored data currently breaks
type IntegrityReport struct {
	OK                     bool                `json:"ok"`
	BodiesChecked          int                 `json:"bodies_checked"`
	SystemsChecked         int                 `json:"systems_checked"`
	DanglingParents        []DanglingReference `json:"dangling_parents"`
	UnknownBodyTypes       []UnknownBodyType   `json:"unknown_body_types"`
	DanglingSystemBodies   []DanglingReference `json:"dangling_system_bodies"`
	DanglingSystemSettings []DanglingReference `json:"dangling_system_settings"`
	DefaultSystems         int                 `json:"default_systems"`
}
