package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngredientInput carries the editable fields of an ingredient.
type IngredientInput struct {
	Name    string
	Per100g domain.Nutrition
}

// MealInput carries the editable fields of a meal.
type MealInput struct {
	Name        string
	Description string
	Type        domain.MealType
	Items       []domain.MealItem
}

// MealService manages the ingredient and meal catalogs.
type MealService interface {
	CreateIngredient(ctx context.Context, in IngredientInput) (*domain.Ingredient, error)
	GetIngredient(ctx context.Context, id primitive.ObjectID) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, id primitive.ObjectID, in IngredientInput) (*domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, id primitive.ObjectID) error

	CreateMeal(ctx context.Context, in MealInput) (*domain.Meal, error)
	GetMeal(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error)
	ListMeals(ctx context.Context, mealType domain.MealType) ([]domain.Meal, error)
	UpdateMeal(ctx context.Context, id primitive.ObjectID, in MealInput) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, id primitive.ObjectID) error
}

type mealService struct {
	ingredientRepo repository.IngredientRepository
	mealRepo       repository.MealRepository
}

func NewMealService(ingredientRepo repository.IngredientRepository, mealRepo repository.MealRepository) MealService {
	return &mealService{
		ingredientRepo: ingredientRepo,
		mealRepo:       mealRepo,
	}
}

// === Ingredients ===

func validateIngredientInput(in IngredientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("ingredient name is required")
	}
	n := in.Per100g
	if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 {
		return invalid("nutrition values must not be negative")
	}
	return nil
}

func (s *mealService) CreateIngredient(ctx context.Context, in IngredientInput) (*domain.Ingredient, error) {
	if err := validateIngredientInput(in); err != nil {
		return nil, err
	}
	ingredient := &domain.Ingredient{Name: strings.TrimSpace(in.Name), Per100g: in.Per100g}

	id, err := s.ingredientRepo.Create(ctx, ingredient)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	ingredient.ID = id
	return ingredient, nil
}

func (s *mealService) GetIngredient(ctx context.Context, id primitive.ObjectID) (*domain.Ingredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *mealService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.ingredientRepo.List(ctx)
}

// UpdateIngredient changes an ingredient. Meals already saved keep the
// nutrition computed when they were saved.
func (s *mealService) UpdateIngredient(ctx context.Context, id primitive.ObjectID, in IngredientInput) (*domain.Ingredient, error) {
	if err := validateIngredientInput(in); err != nil {
		return nil, err
	}
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}

	ingredient.Name = strings.TrimSpace(in.Name)
	ingredient.Per100g = in.Per100g
	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrIngredientNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *mealService) DeleteIngredient(ctx context.Context, id primitive.ObjectID) error {
	if err := s.ingredientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIngredientNotFound
		}
		return err
	}
	return nil
}

// === Meals ===

func validateMealInput(in MealInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("meal name is required")
	}
	if !in.Type.Valid() {
		return invalid("unknown meal type %q", in.Type)
	}
	if len(in.Items) == 0 {
		return invalid("a meal needs at least one ingredient")
	}
	for _, item := range in.Items {
		if item.Grams <= 0 {
			return invalid("ingredient amounts must be positive")
		}
	}
	return nil
}

// buildMeal loads the referenced ingredients and derives the nutrition.
func (s *mealService) buildMeal(ctx context.Context, meal *domain.Meal, in MealInput) error {
	meal.Name = strings.TrimSpace(in.Name)
	meal.Description = in.Description
	meal.Type = in.Type
	meal.Items = in.Items

	found, err := s.ingredientRepo.GetByIDs(ctx, meal.IngredientIDs())
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]domain.Ingredient, len(found))
	for _, ing := range found {
		byID[ing.ID] = ing
	}
	if err := meal.ComputeNutrition(byID); err != nil {
		if errors.Is(err, domain.ErrUnknownIngredient) {
			return ErrIngredientNotFound
		}
		return err
	}
	return nil
}

func (s *mealService) CreateMeal(ctx context.Context, in MealInput) (*domain.Meal, error) {
	if err := validateMealInput(in); err != nil {
		return nil, err
	}
	meal := &domain.Meal{}
	if err := s.buildMeal(ctx, meal, in); err != nil {
		return nil, err
	}

	id, err := s.mealRepo.Create(ctx, meal)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	meal.ID = id
	return meal, nil
}

func (s *mealService) GetMeal(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

func (s *mealService) ListMeals(ctx context.Context, mealType domain.MealType) ([]domain.Meal, error) {
	if mealType != "" && !mealType.Valid() {
		return nil, invalid("unknown meal type %q", mealType)
	}
	return s.mealRepo.List(ctx, mealType)
}

func (s *mealService) UpdateMeal(ctx context.Context, id primitive.ObjectID, in MealInput) (*domain.Meal, error) {
	if err := validateMealInput(in); err != nil {
		return nil, err
	}
	meal, err := s.GetMeal(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.buildMeal(ctx, meal, in); err != nil {
		return nil, err
	}

	if err := s.mealRepo.Update(ctx, meal); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrMealNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return meal, nil
}

func (s *mealService) DeleteMeal(ctx context.Context, id primitive.ObjectID) error {
	if err := s.mealRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	return nil
}
