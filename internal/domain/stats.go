package domain

import (
	"sort"
	"time"
)

// CategoryStat is one group of log entries with its totals.
type CategoryStat struct {
	Category string  `json:"category"` // Meal type, or exercise id hex
	Label    string  `json:"label"`    // Human readable name of the group
	Count    int     `json:"count"`
	Calories float64 `json:"calories"`
	Minutes  int     `json:"minutes,omitempty"` // Exercise groups only
}

// DailySummary is the energy balance of one calendar day.
type DailySummary struct {
	Date      time.Time `json:"date"`
	Consumed  float64   `json:"consumed"`
	Burned    float64   `json:"burned"`
	Net       float64   `json:"net"`
	Target    float64   `json:"target"`
	Remaining float64   `json:"remaining"`
}

// SumMealCalories totals consumed calories of the logs inside r.
func SumMealCalories(logs []MealLog, r DateRange) float64 {
	var total float64
	for _, l := range logs {
		if r.Contains(l.ConsumedAt) {
			total += l.Calories
		}
	}
	return total
}

// SumExerciseCalories totals burned calories of the logs inside r.
func SumExerciseCalories(logs []ExerciseLog, r DateRange) float64 {
	var total float64
	for _, l := range logs {
		if r.Contains(l.PerformedAt) {
			total += l.Calories
		}
	}
	return total
}

// MealStatsByType groups the logs inside r by meal type, in day order.
// Types without entries are omitted.
func MealStatsByType(logs []MealLog, r DateRange) []CategoryStat {
	groups := make(map[MealType]*CategoryStat)
	for _, l := range logs {
		if !r.Contains(l.ConsumedAt) {
			continue
		}
		g, ok := groups[l.MealType]
		if !ok {
			g = &CategoryStat{Category: string(l.MealType), Label: string(l.MealType)}
			groups[l.MealType] = g
		}
		g.Count++
		g.Calories += l.Calories
	}

	stats := make([]CategoryStat, 0, len(groups))
	for _, mt := range MealTypes {
		if g, ok := groups[mt]; ok {
			stats = append(stats, *g)
			delete(groups, mt)
		}
	}
	// Anything left has a type outside the known set; keep it, sorted by name.
	rest := make([]CategoryStat, 0, len(groups))
	for _, g := range groups {
		rest = append(rest, *g)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Category < rest[j].Category })
	return append(stats, rest...)
}

// ExerciseStatsByExercise groups the logs inside r by exercise, highest
// calorie total first.
func ExerciseStatsByExercise(logs []ExerciseLog, r DateRange) []CategoryStat {
	groups := make(map[string]*CategoryStat)
	for _, l := range logs {
		if !r.Contains(l.PerformedAt) {
			continue
		}
		key := l.ExerciseID.Hex()
		g, ok := groups[key]
		if !ok {
			g = &CategoryStat{Category: key, Label: l.ExerciseName}
			groups[key] = g
		}
		g.Count++
		g.Calories += l.Calories
		g.Minutes += l.DurationMinutes
	}

	stats := make([]CategoryStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, *g)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Calories != stats[j].Calories {
			return stats[i].Calories > stats[j].Calories
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// DailySummaries returns one row per day of r, including empty days.
func DailySummaries(meals []MealLog, exercises []ExerciseLog, r DateRange, target float64) []DailySummary {
	consumed := make(map[time.Time]float64)
	burned := make(map[time.Time]float64)
	for _, l := range meals {
		if r.Contains(l.ConsumedAt) {
			consumed[Day(l.ConsumedAt)] += l.Calories
		}
	}
	for _, l := range exercises {
		if r.Contains(l.PerformedAt) {
			burned[Day(l.PerformedAt)] += l.Calories
		}
	}

	days := r.Days()
	out := make([]DailySummary, 0, len(days))
	for _, d := range days {
		net := consumed[d] - burned[d]
		out = append(out, DailySummary{
			Date:      d,
			Consumed:  consumed[d],
			Burned:    burned[d],
			Net:       net,
			Target:    target,
			Remaining: target - net,
		})
	}
	return out
}
