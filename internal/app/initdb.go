package app

import (
	"context"

	"github.com/talkincode/foodhub/internal/domain"
	"go.uber.org/zap"
)

// defaultMenuItems returns a fresh copy of the starter menu
func defaultMenuItems() []*domain.MenuItem {
	return []*domain.MenuItem{
		{FoodName: "Margherita Pizza", Description: "Mozzarella & basil", Price: "$8.99", Image: "food1.jpg"},
		{FoodName: "Veggie Burger", Description: "Grilled veggie patty", Price: "$6.49", Image: "food2.jpg"},
		{FoodName: "Pasta Alfredo", Description: "Creamy Alfredo sauce", Price: "$7.99", Image: "food3.jpg"},
		{FoodName: "Grilled Sandwich", Description: "Veggies and cheese", Price: "$5.49", Image: "food4.jpg"},
		{FoodName: "Caesar Salad", Description: "Fresh lettuce, parmesan", Price: "$4.99", Image: "food5.jpg"},
		{FoodName: "Chicken Wings", Description: "Crispy wings, tangy sauce", Price: "$9.49", Image: "food6.jpg"},
		{FoodName: "Beef Taco", Description: "Soft taco, seasoned beef", Price: "$3.99", Image: "food7.jpg"},
		{FoodName: "Fruit Bowl", Description: "Mixed seasonal fruits", Price: "$5.29", Image: "food8.jpg"},
		{FoodName: "French Fries", Description: "Golden crispy fries", Price: "$2.99", Image: "food9.jpg"},
		{FoodName: "Chocolate Muffin", Description: "Rich muffin with choco chips", Price: "$2.49", Image: "food10.jpg"},
		{FoodName: "Greek Salad", Description: "Feta cheese, olives", Price: "$4.79", Image: "food11.jpg"},
		{FoodName: "Cheese Pizza", Description: "Extra cheesy delight", Price: "$9.19", Image: "food12.jpg"},
	}
}

// SeedMenu inserts the starter menu. There is no dedup key: every call adds
// all twelve records again.
func (a *Application) SeedMenu(ctx context.Context) (int, error) {
	items := defaultMenuItems()
	if err := a.Menus().CreateMany(ctx, items); err != nil {
		return 0, err
	}
	zap.L().Info("seeded menu items", zap.Int("count", len(items)))
	return len(items), nil
}
