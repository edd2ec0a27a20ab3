package menu

import (
	gferrors "github.com/vnykmshr/menuflow/pkg/common/errors"
	"github.com/vnykmshr/menuflow/pkg/common/validation"
)

// Type is the category of a dish.
type Type int

const (
	Meat Type = iota
	Fish
	Other
)

func (t Type) String() string {
	switch t {
	case Meat:
		return "MEAT"
	case Fish:
		return "FISH"
	case Other:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Dish is an immutable menu record. Two dishes are the same dish when all
// their attributes are equal.
type Dish struct {
	Name       string
	Vegetarian bool
	Calories   int
	Type       Type
}

// NewDish validates and returns a Dish.
func NewDish(name string, vegetarian bool, calories int, typ Type) (Dish, error) {
	if err := validation.ValidateNotEmpty("menu", "name", name); err != nil {
		return Dish{}, err
	}
	if err := validation.ValidateNonNegative("menu", "calories", calories); err != nil {
		return Dish{}, err
	}
	if typ < Meat || typ > Other {
		return Dish{}, gferrors.NewValidationError("menu", "type", int(typ), "unknown dish type").
			WithHint("use Meat, Fish or Other")
	}

	return Dish{Name: name, Vegetarian: vegetarian, Calories: calories, Type: typ}, nil
}

func (d Dish) String() string {
	return d.Name
}

func (d Dish) validate() error {
	_, err := NewDish(d.Name, d.Vegetarian, d.Calories, d.Type)
	return err
}

// Name returns the dish name.
func Name(d Dish) string {
	return d.Name
}

// Calories returns the dish calorie count.
func Calories(d Dish) int {
	return d.Calories
}

// ByCalories orders dishes by ascending calorie count.
func ByCalories(a, b Dish) int {
	return a.Calories - b.Calories
}
