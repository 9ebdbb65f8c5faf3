package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nutrition is an energy and macro breakdown. Grams for macros.
type Nutrition struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fat      float64 `bson:"fat" json:"fat"`
}

// Add returns the sum of two breakdowns.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

// Scale multiplies every field by f.
func (n Nutrition) Scale(f float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * f,
		Protein:  n.Protein * f,
		Carbs:    n.Carbs * f,
		Fat:      n.Fat * f,
	}
}

// Ingredient is a catalog entry with nutrition values per 100 g.
type Ingredient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameKey   string             `bson:"nameKey" json:"-"` // Lowercased name, unique
	Per100g   Nutrition          `bson:"per100g" json:"per100g"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// For returns the nutrition of the given amount of the ingredient.
func (i *Ingredient) For(grams float64) Nutrition {
	return i.Per100g.Scale(grams / 100)
}
