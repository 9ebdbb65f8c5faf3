package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns on purpose wraps one of these,
// so callers can branch on the kind with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrRuleViolation = errors.New("business rule violation")
	ErrValidation    = errors.New("validation failed")
	ErrForbidden     = errors.New("access denied")
)

// kindError is a sentinel with a message of its own that unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(msg string) error      { return &kindError{kind: ErrNotFound, msg: msg} }
func ruleViolation(msg string) error { return &kindError{kind: ErrRuleViolation, msg: msg} }
func forbidden(msg string) error     { return &kindError{kind: ErrForbidden, msg: msg} }

// invalid wraps a validation failure with its detail.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// violation wraps a domain error as a business rule violation, keeping both
// in the chain.
func violation(err error) error {
	return fmt.Errorf("%w: %w", ErrRuleViolation, err)
}

// --- Error Definitions ---
var (
	ErrUserNotFound          = notFound("user not found")
	ErrProfileNotFound       = notFound("profile not found")
	ErrIngredientNotFound    = notFound("ingredient not found")
	ErrMealNotFound          = notFound("meal not found")
	ErrExerciseNotFound      = notFound("exercise not found")
	ErrNutritionPlanNotFound = notFound("nutrition plan not found")
	ErrRoutineNotFound       = notFound("routine not found")
	ErrAssignmentNotFound    = notFound("assignment not found")
	ErrProgressNotFound      = notFound("progress entry not found")
	ErrPhotoNotFound         = notFound("progress entry has no photo")

	ErrDuplicateName     = ruleViolation("an item with this name already exists")
	ErrProfileExists     = ruleViolation("user already has a profile")
	ErrAssignmentOverlap = ruleViolation("an active assignment of this kind overlaps the requested dates")

	ErrAssignmentAccessDenied = forbidden("assignment does not belong to this profile")
	ErrProgressAccessDenied   = forbidden("progress entry does not belong to this profile")
)
