package profiles

import (
	"time"

	"github.com/caloclash/caloclash/internal/caldate"
	"github.com/caloclash/caloclash/internal/plan"
	"github.com/caloclash/caloclash/internal/progression"
)

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Profile — полное состояние одного пользователя устройства. Это единица
// персистентности: репозиторий всегда читает и пишет профиль целиком.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	UserData plan.Survey  `json:"userData"`
	Plan     plan.Targets `json:"plan"`

	// TodayMeals is only meaningful while LastSaveDate is today; stale
	// entries are dropped by the rollover at load time.
	TodayMeals   []Meal      `json:"todayMeals"`
	LastSaveDate caldate.Day `json:"lastSaveDate"`

	Gamification progression.State `json:"gamification"`

	WaterIntake     int         `json:"waterIntake"`
	WaterIntakeDate caldate.Day `json:"waterIntakeDate"`

	FavoriteMeals []FavoriteMeal `json:"favoriteMeals"`
}

// Meal — одна запись в журнале за день.
type Meal struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Calories  plan.Number `json:"calories"`
	Protein   plan.Number `json:"protein"`
	Carbs     plan.Number `json:"carbs"`
	Fats      plan.Number `json:"fats"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// FavoriteMeal — переиспользуемый шаблон блюда, не привязан ко дню.
type FavoriteMeal struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Calories plan.Number `json:"calories"`
	Protein  plan.Number `json:"protein"`
	Carbs    plan.Number `json:"carbs"`
	Fats     plan.Number `json:"fats"`
	Type     string      `json:"type"`
}

// MealInput — входные данные операции "добавить блюдо".
type MealInput struct {
	Name     string      `json:"name"`
	Calories plan.Number `json:"calories"`
	Protein  plan.Number `json:"protein"`
	Carbs    plan.Number `json:"carbs"`
	Fats     plan.Number `json:"fats"`
	Type     string      `json:"type"`
}

// Totals — суммы по сегодняшним записям для отображения.
type Totals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// SumToday computes display totals over the current meal log.
func SumToday(p Profile) Totals {
	var t Totals
	for _, m := range p.TodayMeals {
		t.Calories += int(m.Calories)
		t.Protein += int(m.Protein)
		t.Carbs += int(m.Carbs)
		t.Fats += int(m.Fats)
	}
	return t
}
