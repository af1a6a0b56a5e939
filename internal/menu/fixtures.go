package menu

// SampleCategories is the reference category set used by the seed command
// and tests.
func SampleCategories() []Category {
	return []Category{
		{ID: "starters", Name: "Starters", SortOrder: 1},
		{ID: "mains", Name: "Mains", SortOrder: 2},
		{ID: "desserts", Name: "Desserts", SortOrder: 3},
		{ID: "drinks", Name: "Drinks", SortOrder: 4},
	}
}

// SampleDishes returns a fresh copy of the reference menu.
func SampleDishes() []Dish {
	return []Dish{
		{
			ID:         "edamame",
			CategoryID: "starters",
			Name:       "Edamame",
			ShortDesc:  "Steamed young soybeans with sea salt",
			Price:      price(5),
			DietTags:   []string{"vegetarian", "vegan"},
			Allergens:  []string{"soy"},
			Available:  true,
		},
		{
			ID:         "chicken-strips",
			CategoryID: "starters",
			Name:       "Chicken Strips (4pcs)",
			ShortDesc:  "Crispy breaded chicken with honey mustard",
			FullDesc:   "Free-range chicken breast, panko crust, served with house honey mustard dip.",
			Price:      price(10),
			Allergens:  []string{"gluten", "egg", "mustard"},
			Available:  true,
		},
		{
			ID:         "spring-rolls",
			CategoryID: "starters",
			Name:       "Vegetable Spring Rolls",
			ShortDesc:  "Crispy rolls with sweet chili sauce",
			Variants: []Variant{
				{Label: "small", Price: 9},
				{Label: "large", Price: 15},
			},
			DietTags:  []string{"vegetarian"},
			Allergens: []string{"gluten"},
			Available: true,
		},
		{
			ID:         "halloumi-salad",
			CategoryID: "starters",
			Name:       "Grilled Halloumi Salad",
			ShortDesc:  "Rocket, watermelon, mint",
			Price:      price(11),
			DietTags:   []string{"vegetarian", "gluten-free"},
			Allergens:  []string{"milk"},
			Available:  false,
		},
		{
			ID:         "seafood-platter",
			CategoryID: "mains",
			Name:       "Seafood Platter",
			ShortDesc:  "Prawns, calamari and catch of the day",
			Price:      price(20),
			Allergens:  []string{"crustaceans", "molluscs", "fish"},
			Available:  true,
		},
		{
			ID:         "wagyu-burger",
			CategoryID: "mains",
			Name:       "Wagyu Burger",
			ShortDesc:  "Brioche bun, aged cheddar, truffle fries",
			Price:      price(20.01),
			Allergens:  []string{"gluten", "milk", "egg"},
			Available:  true,
		},
		{
			ID:         "catch-of-the-day",
			CategoryID: "mains",
			Name:       "Catch of the Day",
			ShortDesc:  "Ask your server",
			Allergens:  []string{"fish"},
			Available:  true,
		},
		{
			ID:         "chocolate-fondant",
			CategoryID: "desserts",
			Name:       "Chocolate Fondant",
			ShortDesc:  "Molten centre, vanilla ice cream",
			Price:      price(8.5),
			DietTags:   []string{"vegetarian"},
			Allergens:  []string{"milk", "egg", "gluten"},
			Available:  true,
		},
		{
			ID:         "fresh-juice",
			CategoryID: "drinks",
			Name:       "Fresh Juice",
			ShortDesc:  "Orange, lemonade or carrot",
			Variants: []Variant{
				{Label: "glass", Price: 4},
				{Label: "carafe", Price: 12.5},
			},
			DietTags:  []string{"vegetarian", "vegan", "gluten-free"},
			Available: true,
		},
	}
}

func price(p float64) *float64 { return &p }
