package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

func (g Goal) Valid() bool {
	return g == GoalLose || g == GoalMaintain || g == GoalGain
}

// ActivityLevel multipliers applied to the basal metabolic rate.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

func (a ActivityLevel) Valid() bool {
	_, ok := activityFactors[a]
	return ok
}

// Profile holds the body data of a user. One per user.
type Profile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	BirthDate     *time.Time         `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Sex           Sex                `bson:"sex,omitempty" json:"sex,omitempty"`
	HeightCm      float64            `bson:"heightCm" json:"heightCm"`
	WeightKg      float64            `bson:"weightKg" json:"weightKg"`
	ActivityLevel ActivityLevel      `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	Goal          Goal               `bson:"goal,omitempty" json:"goal,omitempty"`
	DailyCalories float64            `bson:"dailyCalories" json:"dailyCalories"` // Target intake
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AgeAt returns the age in whole years, or 0 when no birth date is known.
func (p *Profile) AgeAt(now time.Time) int {
	if p.BirthDate == nil {
		return 0
	}
	b := p.BirthDate.UTC()
	now = now.UTC()
	age := now.Year() - b.Year()
	if now.YearDay() < b.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// EstimateDailyCalories uses the Mifflin-St Jeor equation adjusted for
// activity level and goal. Returns 0 if height, weight or age are missing.
func (p *Profile) EstimateDailyCalories(now time.Time) float64 {
	age := p.AgeAt(now)
	if p.HeightCm <= 0 || p.WeightKg <= 0 || age == 0 {
		return 0
	}
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(age)
	if p.Sex == SexFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		factor = activityFactors[ActivitySedentary]
	}
	tdee := bmr * factor
	switch p.Goal {
	case GoalLose:
		tdee -= 500
	case GoalGain:
		tdee += 300
	}
	return math.Round(tdee)
}
