package plan

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for survey validation before profile creation.
var activityMultipliers = map[string]float64{
	"sedentary":  1.2,   // little or no exercise
	"light":      1.375, // light exercise 1-3 days/week
	"moderate":   1.55,  // moderate exercise 3-5 days/week
	"active":     1.725, // hard exercise 6-7 days/week
	"veryActive": 1.9,   // very hard exercise & physical job
}

// occupationBonus is a flat NEAT kcal/day bonus by occupation type.
var occupationBonus = map[string]float64{
	"sedentary": 0,   // desk job
	"standing":  50,  // standing job (retail, teaching)
	"physical":  150, // physical job (construction, nursing)
}

// paceAdjustments is the daily kcal delta by goal and pace.
var paceAdjustments = map[string]map[string]float64{
	"lose": {
		"slow":     -250, // ~0.5 lb/week
		"moderate": -500, // ~1 lb/week
		"fast":     -750, // ~1.5 lb/week
	},
	"gain": {
		"slow":     250,
		"moderate": 500,
		"fast":     750,
	},
	"maintain": {
		"slow":     0,
		"moderate": 0,
		"fast":     0,
	},
}

// ValidActivityLevel reports whether level is a known activity level.
func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// ValidGoal reports whether goal is a known goal.
func ValidGoal(goal string) bool {
	_, ok := paceAdjustments[goal]
	return ok
}

// Calculate derives the daily plan from survey answers. It is a pure
// function and never fails: the caller validates input first, and unknown
// enum values fall through to zero adjustments.
//
// BMR uses Mifflin-St Jeor:
//
//	men:   10*kg + 6.25*cm - 5*age + 5
//	women: 10*kg + 6.25*cm - 5*age - 161
func Calculate(s Survey) Targets {
	weightKg, heightCm := toMetric(float64(s.Weight), float64(s.Height), s.MeasurementSystem)
	age := float64(s.Age)

	bmr := 10*weightKg + 6.25*heightCm - 5*age
	if s.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultipliers[s.ActivityLevel]
	tdee += occupationBonus[s.Occupation]

	// Sleep adjustment: poor sleep suppresses, optimal sleep boosts.
	sleep := float64(s.SleepHours)
	if sleep < 6 {
		tdee *= 0.95
	} else if sleep >= 8 {
		tdee *= 1.02
	}

	calories := math.Round(tdee + paceAdjustments[s.Goal][s.Pace])

	// Macro split: 30% protein, 40% carbs, 30% fat (4/4/9 kcal per gram).
	protein := math.Round(calories * 0.30 / 4)
	carbs := math.Round(calories * 0.40 / 4)
	fats := math.Round(calories * 0.30 / 9)

	return Targets{
		Calories: int(calories),
		Protein:  int(protein),
		Carbs:    int(carbs),
		Fats:     int(fats),
		BMR:      int(math.Round(bmr)),
		TDEE:     int(math.Round(tdee)),
	}
}

func toMetric(weight, height float64, system string) (kg, cm float64) {
	if system == "imperial" {
		return weight * 0.453592, height * 2.54
	}
	return weight, height
}
