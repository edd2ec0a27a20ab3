// Package menu holds the dish records used by the stream examples and the
// queries run against them, each written both as an imperative loop over the
// collection and as a declarative stream pipeline.
package menu

import (
	"slices"

	gferrors "github.com/vnykmshr/menuflow/pkg/common/errors"
	"github.com/vnykmshr/menuflow/pkg/streaming/stream"
)

// Menu is an ordered, read-only store of dishes. Source order is fixed at
// construction and is the order every stream over the menu starts from.
type Menu struct {
	dishes []Dish
	config stream.Config
}

// New validates dishes and returns a Menu holding them in the given order.
// Dish names must be unique.
func New(dishes ...Dish) (*Menu, error) {
	seen := make(map[string]struct{}, len(dishes))
	for _, d := range dishes {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[d.Name]; dup {
			return nil, gferrors.NewValidationError("menu", "name", d.Name, "duplicate dish name").
				WithHint("dish names must be unique within a menu")
		}
		seen[d.Name] = struct{}{}
	}

	return &Menu{dishes: slices.Clone(dishes)}, nil
}

// Sample returns the menu used throughout the examples.
func Sample() *Menu {
	return &Menu{dishes: []Dish{
		{Name: "pork", Vegetarian: false, Calories: 800, Type: Meat},
		{Name: "beef", Vegetarian: false, Calories: 700, Type: Meat},
		{Name: "chicken", Vegetarian: false, Calories: 400, Type: Meat},
		{Name: "french fries", Vegetarian: true, Calories: 530, Type: Other},
		{Name: "rice", Vegetarian: true, Calories: 350, Type: Other},
		{Name: "season fruit", Vegetarian: true, Calories: 120, Type: Other},
		{Name: "pizza", Vegetarian: true, Calories: 550, Type: Other},
	}}
}

// Records returns the dishes in source order. The slice is a copy.
func (m *Menu) Records() []Dish {
	return slices.Clone(m.dishes)
}

// Len returns the number of dishes.
func (m *Menu) Len() int {
	return len(m.dishes)
}

// Stream returns a new single-use stream over the dishes, configured with
// the menu's stream configuration.
func (m *Menu) Stream() stream.Stream[Dish] {
	return stream.FromSliceWithConfig(m.dishes, m.config)
}

// WithStreamConfig returns a menu over the same dishes whose streams use
// config. The receiver is unchanged.
func (m *Menu) WithStreamConfig(config stream.Config) *Menu {
	return &Menu{dishes: m.dishes, config: config}
}

// StreamWithConfig returns a new single-use stream over the dishes with the
// given stream configuration.
func (m *Menu) StreamWithConfig(config stream.Config) stream.Stream[Dish] {
	return stream.FromSliceWithConfig(m.dishes, config)
}
