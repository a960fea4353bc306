package progression

// Badge ids. A badge, once awarded, is never removed.
const (
	BadgeWeekWarrior      = "week_warrior"
	BadgeMonthMaster      = "month_master"
	BadgeNoviceLogger     = "novice_logger"
	BadgeDedicatedTracker = "dedicated_tracker"
	BadgeLoggingLegend    = "logging_legend"
	BadgePointCollector   = "point_collector"
)

// Badge is the presentation record for an awarded badge id.
type Badge struct {
	ID          string
	Name        string
	Description string
}

type badgeRule struct {
	Badge
	earned func(State) bool
}

// badgeRules is evaluated in order after every meal-logged transition,
// against the post-update state. Each condition is independent.
var badgeRules = []badgeRule{
	{Badge{BadgeWeekWarrior, "Week Warrior", "7-day streak"}, func(s State) bool { return s.Streak >= 7 }},
	{Badge{BadgeMonthMaster, "Month Master", "30-day streak"}, func(s State) bool { return s.Streak >= 30 }},
	{Badge{BadgeNoviceLogger, "Novice Logger", "10 meals logged"}, func(s State) bool { return s.TotalMealsLogged >= 10 }},
	{Badge{BadgeDedicatedTracker, "Dedicated Tracker", "50 meals logged"}, func(s State) bool { return s.TotalMealsLogged >= 50 }},
	{Badge{BadgeLoggingLegend, "Logging Legend", "100 meals logged"}, func(s State) bool { return s.TotalMealsLogged >= 100 }},
	{Badge{BadgePointCollector, "Point Collector", "500 points earned"}, func(s State) bool { return s.Points >= 500 }},
}

// BadgeInfo returns the presentation record for a badge id.
func BadgeInfo(id string) (Badge, bool) {
	for _, r := range badgeRules {
		if r.ID == id {
			return r.Badge, true
		}
	}
	return Badge{}, false
}

// awardBadges unions newly earned badges into the state. The badge slice
// is copied before appending so callers holding the old state never see
// it change.
func awardBadges(s State) (State, []string) {
	var awarded []string
	for _, r := range badgeRules {
		if r.earned(s) && !s.HasBadge(r.ID) {
			awarded = append(awarded, r.ID)
		}
	}
	if len(awarded) == 0 {
		return s, nil
	}

	badges := make([]string, 0, len(s.Badges)+len(awarded))
	badges = append(badges, s.Badges...)
	badges = append(badges, awarded...)
	s.Badges = badges
	return s, awarded
}
