package inventory

import "marigold-suites/internal/domain"

var allDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// SeedRooms returns the fixed room configuration: five rooms of each
// type. Booking selects in this order.
func SeedRooms() []domain.Room {
	var rooms []domain.Room
	types := []struct {
		roomType domain.RoomType
		price    float64
		floor    int
		base     int
	}{
		{domain.RoomSingle, 100, 1, 100},
		{domain.RoomDouble, 150, 2, 200},
		{domain.RoomTriple, 200, 3, 300},
	}
	for _, t := range types {
		for i := 1; i <= 5; i++ {
			rooms = append(rooms, domain.Room{
				Number:        t.base + i,
				Type:          t.roomType,
				Floor:         t.floor,
				PricePerNight: t.price,
				Available:     true,
			})
		}
	}
	return rooms
}

func SeedMenu() []domain.MenuItem {
	pizzaSizes := map[string]domain.CustomizationOption{
		"small":  {Name: "Small", PriceModifier: -2},
		"medium": {Name: "Medium", PriceModifier: 0},
		"large":  {Name: "Large", PriceModifier: 3},
	}
	return []domain.MenuItem{
		{
			Name: "Pepperoni Pizza", Category: "main", Price: 15, Quantity: 20,
			MealTypes:     []domain.MealType{domain.MealLunch, domain.MealDinner},
			AvailableDays: allDays,
			Customizable:  true,
			Options: map[domain.CustomizationCategory]map[string]domain.CustomizationOption{
				domain.CategorySize: pizzaSizes,
				domain.CategoryHalfToppings: {
					"pepperoni":  {Name: "Pepperoni", PriceModifier: 0},
					"vegetable":  {Name: "Vegetable", PriceModifier: 0},
					"extra_meat": {Name: "Extra Meat", PriceModifier: 2},
				},
				domain.CategoryExtras: {
					"extra_cheese": {Name: "Extra Cheese", PriceModifier: 1.5},
					"mushrooms":    {Name: "Mushrooms", PriceModifier: 1},
				},
			},
			Defaults: map[domain.CustomizationCategory]string{
				domain.CategorySize: "medium",
			},
		},
		{
			Name: "Vegetable Pizza", Category: "main", Price: 12, Quantity: 20,
			MealTypes:     []domain.MealType{domain.MealLunch, domain.MealDinner},
			AvailableDays: allDays,
			Customizable:  true,
			Options: map[domain.CustomizationCategory]map[string]domain.CustomizationOption{
				domain.CategorySize: pizzaSizes,
			},
			Defaults: map[domain.CustomizationCategory]string{
				domain.CategorySize: "medium",
			},
		},
		{
			Name: "Cheeseburger", Category: "main", Price: 10, Quantity: 30,
			MealTypes:     []domain.MealType{domain.MealLunch, domain.MealDinner},
			AvailableDays: allDays,
			Customizable:  true,
			Options: map[domain.CustomizationCategory]map[string]domain.CustomizationOption{
				domain.CategoryExtras: {
					"bacon":        {Name: "Bacon", PriceModifier: 2},
					"extra_cheese": {Name: "Extra Cheese", PriceModifier: 1},
				},
				domain.CategorySauce: {
					"ketchup": {Name: "Ketchup", PriceModifier: 0},
					"special": {Name: "Special Sauce", PriceModifier: 0.5},
				},
			},
			Defaults: map[domain.CustomizationCategory]string{
				domain.CategorySauce: "ketchup",
			},
		},
		{
			Name: "Caesar Salad", Category: "starter", Price: 8, Quantity: 25,
			MealTypes:     []domain.MealType{domain.MealBreakfast, domain.MealLunch, domain.MealDinner},
			AvailableDays: allDays,
		},
		{
			Name: "Soft Drink", Category: "beverage", Price: 2, Quantity: 50,
			MealTypes:     []domain.MealType{domain.MealBreakfast, domain.MealLunch, domain.MealDinner},
			AvailableDays: allDays,
		},
		{
			Name: "Persian Kabob Koobideh", Category: "main", Price: 25, Quantity: 15,
			MealTypes:     []domain.MealType{domain.MealLunch, domain.MealDinner},
			AvailableDays: []string{"thursday", "friday", "saturday", "sunday"},
		},
		{
			Name: "Saffron Joojeh Kabab", Category: "main", Price: 22, Quantity: 15,
			MealTypes:     []domain.MealType{domain.MealDinner},
			AvailableDays: []string{"friday", "saturday"},
		},
	}
}

func SeedTables() []domain.Table {
	specs := []struct {
		number, capacity int
		location         string
	}{
		{1, 4, "window"},
		{2, 4, "window"},
		{3, 4, "main hall"},
		{4, 4, "main hall"},
		{5, 5, "main hall"},
		{6, 5, "patio"},
		{7, 5, "patio"},
		{8, 6, "main hall"},
		{9, 6, "patio"},
		{10, 6, "private room"},
		{11, 10, "private room"},
		{12, 10, "private room"},
	}
	tables := make([]domain.Table, 0, len(specs))
	for _, sp := range specs {
		tables = append(tables, domain.Table{
			TableNumber: sp.number,
			Capacity:    sp.capacity,
			Location:    sp.location,
			Available:   true,
		})
	}
	return tables
}

// SeedMealProgram maps lowercase day names to the meal of the day.
// Prices and availability resolve against the live menu at query time.
func SeedMealProgram() map[string]map[domain.MealType]string {
	return map[string]map[domain.MealType]string{
		"monday":    {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Cheeseburger", domain.MealDinner: "Pepperoni Pizza"},
		"tuesday":   {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Vegetable Pizza", domain.MealDinner: "Cheeseburger"},
		"wednesday": {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Cheeseburger", domain.MealDinner: "Vegetable Pizza"},
		"thursday":  {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Pepperoni Pizza", domain.MealDinner: "Persian Kabob Koobideh"},
		"friday":    {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Persian Kabob Koobideh", domain.MealDinner: "Saffron Joojeh Kabab"},
		"saturday":  {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Cheeseburger", domain.MealDinner: "Saffron Joojeh Kabab"},
		"sunday":    {domain.MealBreakfast: "Caesar Salad", domain.MealLunch: "Vegetable Pizza", domain.MealDinner: "Persian Kabob Koobideh"},
	}
}
