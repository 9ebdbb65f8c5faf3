package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes in the order they happen during a day.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func (t MealType) Valid() bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

var ErrUnknownIngredient = errors.New("meal references an unknown ingredient")

// MealItem is an amount of one ingredient inside a meal.
type MealItem struct {
	IngredientID primitive.ObjectID `bson:"ingredientId" json:"ingredientId"`
	Grams        float64            `bson:"grams" json:"grams"`
}

// Meal is a catalog recipe made from ingredients. Nutrition is derived
// from the items every time the meal is saved.
type Meal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameKey     string             `bson:"nameKey" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        MealType           `bson:"type" json:"type"`
	Items       []MealItem         `bson:"items" json:"items"`
	Nutrition   Nutrition          `bson:"nutrition" json:"nutrition"` // Per serving
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeNutrition recalculates Nutrition from the item list.
func (m *Meal) ComputeNutrition(ingredients map[primitive.ObjectID]Ingredient) error {
	var total Nutrition
	for _, item := range m.Items {
		ing, ok := ingredients[item.IngredientID]
		if !ok {
			return ErrUnknownIngredient
		}
		total = total.Add(ing.For(item.Grams))
	}
	m.Nutrition = total
	return nil
}

// IngredientIDs lists the distinct ingredients the meal uses.
func (m *Meal) IngredientIDs() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(m.Items))
	ids := make([]primitive.ObjectID, 0, len(m.Items))
	for _, item := range m.Items {
		if !seen[item.IngredientID] {
			seen[item.IngredientID] = true
			ids = append(ids, item.IngredientID)
		}
	}
	return ids
}
