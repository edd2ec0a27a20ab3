package menu

import (
	"context"
	"fmt"
	"sort"

	"github.com/vnykmshr/menuflow/pkg/streaming/stream"
)

// LowCaloricDishNamesImperative returns the names of dishes below threshold
// calories, lowest first, using loops and an intermediate slice.
func LowCaloricDishNamesImperative(dishes []Dish, threshold int) []string {
	var lowCaloricDishes []Dish
	for _, d := range dishes {
		if d.Calories < threshold {
			lowCaloricDishes = append(lowCaloricDishes, d)
		}
	}

	sort.SliceStable(lowCaloricDishes, func(i, j int) bool {
		return lowCaloricDishes[i].Calories < lowCaloricDishes[j].Calories
	})

	names := make([]string, 0, len(lowCaloricDishes))
	for _, d := range lowCaloricDishes {
		names = append(names, d.Name)
	}
	return names
}

// LowCaloricDishNames is the pipeline form of LowCaloricDishNamesImperative.
func LowCaloricDishNames(ctx context.Context, m *Menu, threshold int) ([]string, error) {
	names, err := stream.MapTo(
		m.Stream().
			Filter(func(d Dish) bool { return d.Calories < threshold }).
			Sorted(ByCalories),
		Name,
	).ToSlice(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: low caloric dish names: %w", err)
	}
	return names, nil
}

// HighCaloricDishes returns the first n dishes above threshold calories in
// menu order. They are not necessarily the n most caloric ones.
func HighCaloricDishes(ctx context.Context, m *Menu, threshold int, n int64) ([]Dish, error) {
	dishes, err := m.Stream().
		Filter(func(d Dish) bool { return d.Calories > threshold }).
		Limit(n).
		ToSlice(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: high caloric dishes: %w", err)
	}
	return dishes, nil
}

// TopCaloricDishes returns the n most caloric dishes above threshold, highest first.
func TopCaloricDishes(ctx context.Context, m *Menu, threshold int, n int64) ([]Dish, error) {
	dishes, err := m.Stream().
		Filter(func(d Dish) bool { return d.Calories > threshold }).
		Sorted(stream.Reversed(ByCalories)).
		Limit(n).
		ToSlice(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: top caloric dishes: %w", err)
	}
	return dishes, nil
}

// DishNamesForLoop collects dish names with external iteration over the collection.
func DishNamesForLoop(m *Menu) []string {
	names := make([]string, 0, m.Len())
	for _, d := range m.Records() {
		names = append(names, d.Name)
	}
	return names
}

// DishNamesIterator collects dish names with external iteration over a stream.
func DishNamesIterator(ctx context.Context, m *Menu) ([]string, error) {
	it, err := stream.MapTo(m.Stream(), Name).Iterator(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: dish names: %w", err)
	}
	defer it.Stop()

	var names []string
	for {
		name, ok := it.Next()
		if !ok {
			break
		}
		names = append(names, name)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("menu: dish names: %w", err)
	}
	return names, nil
}

// DishNames collects dish names with internal iteration.
func DishNames(ctx context.Context, m *Menu) ([]string, error) {
	names, err := stream.MapTo(m.Stream(), Name).ToSlice(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: dish names: %w", err)
	}
	return names, nil
}

// HighCaloricDishNamesImperative returns the names of dishes above threshold
// calories in menu order.
func HighCaloricDishNamesImperative(m *Menu, threshold int) []string {
	var names []string
	for _, d := range m.Records() {
		if d.Calories > threshold {
			names = append(names, d.Name)
		}
	}
	return names
}

// HighCaloricDishNames is the pipeline form of HighCaloricDishNamesImperative.
func HighCaloricDishNames(ctx context.Context, m *Menu, threshold int) ([]string, error) {
	names, err := stream.MapTo(
		m.Stream().Filter(func(d Dish) bool { return d.Calories > threshold }),
		Name,
	).ToSlice(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: high caloric dish names: %w", err)
	}
	return names, nil
}

// TraceHighCaloricDishNames returns the names of the first n dishes above
// threshold and reports every filter and map invocation to trace, in the
// order the pipeline performs them.
func TraceHighCaloricDishNames(ctx context.Context, m *Menu, threshold int, n int64, trace func(step, name string)) ([]string, error) {
	names, err := stream.MapTo(
		m.Stream().Filter(func(d Dish) bool {
			trace("filtering", d.Name)
			return d.Calories > threshold
		}),
		func(d Dish) string {
			trace("mapping", d.Name)
			return d.Name
		},
	).Limit(n).ToSlice(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: traced dish names: %w", err)
	}
	return names, nil
}
