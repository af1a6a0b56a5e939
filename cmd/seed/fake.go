package main

import (
	"fmt"

	"portsanantonio/internal/menu"

	"github.com/jaswdr/faker"
)

var (
	dietTags  = []string{"vegetarian", "vegan", "gluten-free", "dairy-free"}
	allergens = []string{"gluten", "milk", "egg", "soy", "nuts", "fish", "crustaceans", "mustard", "sesame"}
	sizes     = [][2]string{{"small", "large"}, {"glass", "bottle"}, {"half", "full"}}
)

// fakeDishes generates n dishes spread across categories. Roughly one in
// five has variants and one in twenty has no price at all.
func fakeDishes(f faker.Faker, n int, categories []menu.Category) []menu.Dish {
	dishes := make([]menu.Dish, 0, n)

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s", f.Food().Fruit(), f.Food().Vegetable())

		d := menu.Dish{
			ID:         fmt.Sprintf("%s-%04d", menu.Slugify(name), i),
			CategoryID: categories[f.IntBetween(0, len(categories)-1)].ID,
			Name:       name,
			ShortDesc:  f.Lorem().Sentence(8),
			FullDesc:   f.Lorem().Paragraph(2),
			DietTags:   pick(f, dietTags, 2),
			Allergens:  pick(f, allergens, 3),
			Available:  f.IntBetween(0, 9) > 0,
		}

		switch roll := f.IntBetween(0, 19); {
		case roll == 0:
			// market price
		case roll <= 4:
			pair := sizes[f.IntBetween(0, len(sizes)-1)]
			small := f.Float64(2, 3, 15)
			d.Variants = []menu.Variant{
				{Label: pair[0], Price: small},
				{Label: pair[1], Price: small + f.Float64(2, 2, 10)},
			}
		default:
			p := f.Float64(2, 3, 45)
			d.Price = &p
		}

		dishes = append(dishes, d)
	}
	return dishes
}

func pick(f faker.Faker, from []string, max int) []string {
	out := []string{}
	seen := map[string]bool{}
	for i := 0; i < f.IntBetween(0, max); i++ {
		v := from[f.IntBetween(0, len(from)-1)]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
