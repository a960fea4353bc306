package profiles

import "github.com/caloclash/caloclash/internal/caldate"

// ApplyRollover resets the day-scoped fields of a profile whose stored
// data belongs to an earlier day. Meals and water roll over independently
// because their dates can diverge when the app skips a day. The second
// return reports whether anything changed, so callers persist only on a
// real rollover.
func ApplyRollover(p Profile, today caldate.Day) (Profile, bool) {
	changed := false

	if p.LastSaveDate != today {
		p.TodayMeals = []Meal{}
		p.LastSaveDate = today
		changed = true
	}
	if p.WaterIntakeDate != today {
		p.WaterIntake = 0
		p.WaterIntakeDate = today
		changed = true
	}

	return p, changed
}
