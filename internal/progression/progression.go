package progression

import (
	"github.com/caloclash/caloclash/internal/caldate"
)

// State is a profile's progression record. It is moved around by value and
// only changed by the pure transition functions below; persisting the
// result is the caller's job.
type State struct {
	Points           int          `json:"points"`
	Level            int          `json:"level"`
	Streak           int          `json:"streak"`
	LastLogDate      *caldate.Day `json:"lastLogDate"`
	Badges           []string     `json:"badges"`
	TotalMealsLogged int          `json:"totalMealsLogged"`
}

// NewState returns the progression record of a fresh profile.
func NewState() State {
	return State{Level: 1, Badges: []string{}}
}

// HasBadge reports whether the badge id has been awarded.
func (s State) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Events describes the user-visible outcomes of a transition. They carry
// no state of their own; replaying a transition never re-fires them.
type Events struct {
	PointsAwarded int
	LeveledUp     bool
	NewLevel      int
	NewBadges     []string
}

// Rules holds the progression tuning. Zero values are not usable; start
// from DefaultRules.
type Rules struct {
	PointsPerMeal           int
	PointsPerLevel          int
	WaterMilestoneGlasses   int
	PointsPerWaterMilestone int
}

// DefaultRules returns the product defaults: 10 points per meal, a level
// every 100 points, +5 points every 4th glass of water.
func DefaultRules() Rules {
	return Rules{
		PointsPerMeal:           10,
		PointsPerLevel:          100,
		WaterMilestoneGlasses:   4,
		PointsPerWaterMilestone: 5,
	}
}

// MealLogged applies one "meal logged" event on the given calendar day.
//
// Streak: first log ever starts at 1; a log on the day after the previous
// one extends it; a log on the same day leaves it unchanged; a gap of more
// than one day resets it to 1 (broken, then restarted by this log).
// Points and totalMealsLogged increment on every call, including repeat
// logs on the same day.
func (r Rules) MealLogged(s State, today caldate.Day) (State, Events) {
	switch {
	case s.LastLogDate == nil:
		s.Streak = 1
	case today.Sub(*s.LastLogDate) == 1:
		s.Streak++
	case today.Sub(*s.LastLogDate) > 1:
		s.Streak = 1
	}
	day := today
	s.LastLogDate = &day

	var ev Events
	s, ev = r.addPoints(s, r.PointsPerMeal)
	s.TotalMealsLogged++

	s, ev.NewBadges = awardBadges(s)
	return s, ev
}

// WaterLogged applies one added glass of water. newCount is the glass
// count for the day after the add. Every WaterMilestoneGlasses-th glass
// earns points through the usual points/level rule; there is no streak or
// badge interaction.
func (r Rules) WaterLogged(s State, newCount int) (State, Events) {
	if newCount <= 0 || newCount%r.WaterMilestoneGlasses != 0 {
		return s, Events{}
	}
	return r.addPoints(s, r.PointsPerWaterMilestone)
}

// CheckStreakDecay is the passive check run at profile load: a streak is
// forced to 0 when the last log is more than one day in the past. A meal
// logged later the same day restarts the streak at 1 via MealLogged.
func (r Rules) CheckStreakDecay(s State, today caldate.Day) (State, bool) {
	if s.LastLogDate == nil || s.Streak == 0 {
		return s, false
	}
	if today.Sub(*s.LastLogDate) > 1 {
		s.Streak = 0
		return s, true
	}
	return s, false
}

// addPoints adds points and rederives the level. Level is never stored
// independently: it is always points/PointsPerLevel + 1.
func (r Rules) addPoints(s State, points int) (State, Events) {
	oldLevel := s.Level
	s.Points += points
	s.Level = s.Points/r.PointsPerLevel + 1

	return s, Events{
		PointsAwarded: points,
		LeveledUp:     s.Level > oldLevel,
		NewLevel:      s.Level,
	}
}
