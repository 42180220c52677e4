// Package patch turns tri-state update payloads into store fields.
//
// A nullable.Nullable field is either omitted, explicitly null or set. Omitted
// fields never reach the store; null clears optional fields and is rejected for
// required ones.
package patch

import (
	"fmt"

	apperrors "planetary-server/internal/shared/errors"
	"planetary-server/internal/store"

	"github.com/oapi-codegen/nullable"
)

// Check returns a problem description, or "" when value is acceptable
type Check[T any] func(value T) string

type Builder struct {
	fields   store.Fields
	problems map[string]string
}

func New() *Builder {
	return &Builder{
		fields:   store.Fields{},
		problems: map[string]string{},
	}
}

// Required copies a set value into the update. Explicit null is a validation problem.
func Required[T any](b *Builder, name string, field nullable.Nullable[T], checks ...Check[T]) {
	if !field.IsSpecified() {
		return
	}
	if field.IsNull() {
		b.problems[name] = "must not be null"
		return
	}
	set(b, name, field, checks)
}

// Optional copies a set value into the update and turns explicit null into a clear.
func Optional[T any](b *Builder, name string, field nullable.Nullable[T], checks ...Check[T]) {
	if !field.IsSpecified() {
		return
	}
	if field.IsNull() {
		b.fields[name] = nil
		return
	}
	set(b, name, field, checks)
}

func set[T any](b *Builder, name string, field nullable.Nullable[T], checks []Check[T]) {
	value, err := field.Get()
	if err != nil {
		b.problems[name] = "is invalid"
		return
	}
	for _, check := range checks {
		if problem := check(value); problem != "" {
			b.problems[name] = problem
			return
		}
	}
	b.fields[name] = value
}

// Fields returns the collected update, or a validation error naming every bad field.
func (b *Builder) Fields() (store.Fields, error) {
	if len(b.problems) > 0 {
		return nil, apperrors.ValidationWithDetails("validation failed", b.problems)
	}
	return b.fields, nil
}

func NotEmpty(value string) string {
	if value == "" {
		return "must not be empty"
	}
	return ""
}

func Positive(value float64) string {
	if value <= 0 {
		return "must be greater than 0"
	}
	return ""
}

func Length[T any](n int) Check[[]T] {
	return func(value []T) string {
		if len(value) != n {
			return fmt.Sprintf("must have exactly %d elements", n)
		}
		return ""
	}
}
