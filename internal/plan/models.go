package plan

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that also decodes from a JSON string. The legacy
// survey stored every numeric answer as the raw text-field value, so
// pre-migration data carries "65" where new data carries 65.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// A non-numeric value decodes to 0; validation of survey input is the
// caller's job, not the decoder's.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// Survey holds the onboarding answers a profile is created from.
// Field names mirror the stored userData object.
type Survey struct {
	Name   string `json:"name"`
	Gender string `json:"gender"` // "male" or "female"
	Age    Number `json:"age"`
	Weight Number `json:"weight"` // kg (metric) or lb (imperial)
	Height Number `json:"height"` // cm (metric) or in (imperial)

	MeasurementSystem string `json:"measurementSystem"` // "metric" or "imperial"

	ActivityLevel string `json:"activityLevel"` // key of activityMultipliers
	Occupation    string `json:"occupation"`    // "sedentary", "standing", "physical"
	SleepHours    Number `json:"sleepHours"`

	Goal         string `json:"goal"` // "lose", "gain", "maintain"
	Pace         string `json:"pace"` // "slow", "moderate", "fast"
	TargetWeight Number `json:"targetWeight"`
	Timeframe    string `json:"timeframe"` // weeks to achieve goal

	DietaryRestrictions []string `json:"dietaryRestrictions"`
	ExercisePreference  string   `json:"exercisePreference"`

	Motivation         string `json:"motivation"`
	PreviousExperience string `json:"previousExperience"` // "yes" or "no"
}

// Targets is the daily plan computed from a Survey. Macros are grams,
// everything else kcal.
type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	BMR      int `json:"bmr"`
	TDEE     int `json:"tdee"`
}
