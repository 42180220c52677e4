package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"planetary-server/internal/app"
)

// resource adapts one record family to the generic list/get/delete commands
type resource struct {
	list   func(ctx context.Context, a *app.App) (any, error)
	get    func(ctx context.Context, a *app.App, id string) (any, error)
	delete func(ctx context.Context, a *app.App, id string) error
}

var resources = map[string]resource{
	"bodies": {
		list:   func(ctx context.Context, a *app.App) (any, error) { return a.Bodies.GetAll(ctx) },
		get:    func(ctx context.Context, a *app.App, id string) (any, error) { return a.Bodies.Get(ctx, id) },
		delete: func(ctx context.Context, a *app.App, id string) error { return a.Bodies.Delete(ctx, id) },
	},
	"settings": {
		list:   func(ctx context.Context, a *app.App) (any, error) { return a.Settings.GetAll(ctx) },
		get:    func(ctx context.Context, a *app.App, id string) (any, error) { return a.Settings.Get(ctx, id) },
		delete: func(ctx context.Context, a *app.App, id string) error { return a.Settings.Delete(ctx, id) },
	},
	"systems": {
		list:   func(ctx context.Context, a *app.App) (any, error) { return a.Systems.GetAll(ctx) },
		get:    func(ctx context.Context, a *app.App, id string) (any, error) { return a.Systems.Get(ctx, id) },
		delete: func(ctx context.Context, a *app.App, id string) error { return a.Systems.Delete(ctx, id) },
	},
}

func resourceNames() []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupResource(name string) (resource, error) {
	r, ok := resources[name]
	if !ok {
		return resource{}, fmt.Errorf("unknown resource %q, expected one of %s", name, strings.Join(resourceNames(), ", "))
	}
	return r, nil
}
