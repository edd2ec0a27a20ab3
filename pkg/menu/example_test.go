package menu

import (
	"context"
	"fmt"
)

func ExampleLowCaloricDishNames() {
	names, err := LowCaloricDishNames(context.Background(), Sample(), 400)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(names)
	// Output: [season fruit rice]
}

func ExampleTopCaloricDishes() {
	firstThree, _ := HighCaloricDishes(context.Background(), Sample(), 300, 3)
	topThree, _ := TopCaloricDishes(context.Background(), Sample(), 300, 3)

	fmt.Println(firstThree)
	fmt.Println(topThree)
	// Output:
	// [pork beef chicken]
	// [pork beef pizza]
}
