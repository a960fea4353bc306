package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/caloclash/caloclash/internal/caldate"
	"github.com/caloclash/caloclash/internal/config"
	"github.com/caloclash/caloclash/internal/kvstore"
	"github.com/caloclash/caloclash/internal/plan"
	"github.com/caloclash/caloclash/internal/progression"
)

var (
	ErrNotFound         = errors.New("profile not found")
	ErrNoActiveProfile  = errors.New("no active profile")
	ErrSurveyIncomplete = errors.New("survey is missing required answers")
	ErrMealIncomplete   = errors.New("meal name and calories are required")
	ErrMealNotFound     = errors.New("meal not found")
	ErrFavoriteNotFound = errors.New("favorite meal not found")
)

// Service содержит бизнес-логику движка профилей. Каждая мутирующая
// операция принимает профиль значением, возвращает обновлённый профиль и
// явно сохраняет его; скрытого I/O нет.
type Service struct {
	repo  *Repository
	rules progression.Rules
}

// NewService создаёт сервис поверх key/value хранилища.
func NewService(store kvstore.Store, cfg *config.Config) *Service {
	return &Service{
		repo: NewRepository(store),
		rules: progression.Rules{
			PointsPerMeal:           cfg.PointsPerMeal,
			PointsPerLevel:          cfg.PointsPerLevel,
			WaterMilestoneGlasses:   cfg.WaterMilestoneGlasses,
			PointsPerWaterMilestone: cfg.PointsPerWaterMilestone,
		},
	}
}

// Repo exposes the repository for callers that need raw reads.
func (s *Service) Repo() *Repository {
	return s.repo
}

// Bootstrap выполняет (идемпотентную) миграцию старой раскладки и
// возвращает коллекцию профилей вместе с id активного. Вызывается при
// каждом старте приложения до любых чтений профилей.
func (s *Service) Bootstrap(ctx context.Context) ([]Profile, string, error) {
	if err := s.repo.MigrateLegacy(ctx, caldate.Today()); err != nil {
		return nil, "", err
	}
	profiles := s.repo.List(ctx)
	activeID, _ := s.repo.ActiveID(ctx)
	return profiles, activeID, nil
}

// ActiveProfile загружает активный профиль, применяет перенос дня и
// пассивную проверку серии. Сохраняет профиль только если что-то
// изменилось.
func (s *Service) ActiveProfile(ctx context.Context) (Profile, error) {
	id, ok := s.repo.ActiveID(ctx)
	if !ok {
		return Profile{}, ErrNoActiveProfile
	}
	p, ok := s.repo.Get(ctx, id)
	if !ok {
		return Profile{}, ErrNotFound
	}

	today := caldate.Today()
	p, rolled := ApplyRollover(p, today)
	state, decayed := s.rules.CheckStreakDecay(p.Gamification, today)
	p.Gamification = state

	if rolled || decayed {
		if err := s.repo.Save(ctx, p); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

// CreateProfile валидирует анкету, рассчитывает план и создаёт профиль,
// делая его активным.
func (s *Service) CreateProfile(ctx context.Context, survey plan.Survey) (Profile, error) {
	if err := validateSurvey(survey); err != nil {
		return Profile{}, err
	}

	p, err := s.repo.Create(ctx, survey, plan.Calculate(survey))
	if err != nil {
		return Profile{}, err
	}
	if err := s.repo.SetActiveID(ctx, p.ID); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SwitchProfile делает профиль активным.
func (s *Service) SwitchProfile(ctx context.Context, id string) error {
	if _, ok := s.repo.Get(ctx, id); !ok {
		return ErrNotFound
	}
	return s.repo.SetActiveID(ctx, id)
}

// DeleteProfile удаляет профиль; указатель активного профиля при
// необходимости переводится или очищается репозиторием.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if _, ok := s.repo.Get(ctx, id); !ok {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// AddMeal добавляет блюдо в сегодняшний журнал и проводит переход машины
// прогресса. Возвращает обновлённый профиль и события (новый уровень,
// новые бейджи) для отображения.
func (s *Service) AddMeal(ctx context.Context, p Profile, in MealInput) (Profile, progression.Events, error) {
	if strings.TrimSpace(in.Name) == "" || in.Calories <= 0 {
		return p, progression.Events{}, ErrMealIncomplete
	}

	today := caldate.Today()
	p, _ = ApplyRollover(p, today)

	mealType := in.Type
	if mealType == "" {
		mealType = MealSnack
	}
	p.TodayMeals = append(p.TodayMeals, Meal{
		ID:        newMealID(),
		Name:      strings.TrimSpace(in.Name),
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fats:      in.Fats,
		Type:      mealType,
		Timestamp: time.Now(),
	})

	state, events := s.rules.MealLogged(p.Gamification, today)
	p.Gamification = state

	if err := s.repo.Save(ctx, p); err != nil {
		return p, events, err
	}
	return p, events, nil
}

// DeleteMeal убирает блюдо из сегодняшнего журнала. Очки и счётчики не
// откатываются.
func (s *Service) DeleteMeal(ctx context.Context, p Profile, mealID string) (Profile, error) {
	p, _ = ApplyRollover(p, caldate.Today())

	kept := make([]Meal, 0, len(p.TodayMeals))
	found := false
	for _, m := range p.TodayMeals {
		if m.ID == mealID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return p, ErrMealNotFound
	}
	p.TodayMeals = kept

	if err := s.repo.Save(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// AddWater добавляет стакан воды. Каждый четвёртый стакан за день даёт
// очки через обычное правило очков и уровней.
func (s *Service) AddWater(ctx context.Context, p Profile) (Profile, progression.Events, error) {
	p, _ = ApplyRollover(p, caldate.Today())
	p.WaterIntake++

	state, events := s.rules.WaterLogged(p.Gamification, p.WaterIntake)
	p.Gamification = state

	if err := s.repo.Save(ctx, p); err != nil {
		return p, events, err
	}
	return p, events, nil
}

// RemoveWater убирает стакан воды, не опускаясь ниже нуля. Очки не
// вычитаются.
func (s *Service) RemoveWater(ctx context.Context, p Profile) (Profile, error) {
	p, _ = ApplyRollover(p, caldate.Today())
	if p.WaterIntake > 0 {
		p.WaterIntake--
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// SaveFavorite сохраняет блюдо из сегодняшнего журнала как шаблон с
// новым id.
func (s *Service) SaveFavorite(ctx context.Context, p Profile, mealID string) (Profile, error) {
	var src *Meal
	for i := range p.TodayMeals {
		if p.TodayMeals[i].ID == mealID {
			src = &p.TodayMeals[i]
			break
		}
	}
	if src == nil {
		return p, ErrMealNotFound
	}

	p.FavoriteMeals = append(p.FavoriteMeals, FavoriteMeal{
		ID:       newMealID(),
		Name:     src.Name,
		Calories: src.Calories,
		Protein:  src.Protein,
		Carbs:    src.Carbs,
		Fats:     src.Fats,
		Type:     src.Type,
	})

	if err := s.repo.Save(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// RemoveFavorite удаляет шаблон по id.
func (s *Service) RemoveFavorite(ctx context.Context, p Profile, favoriteID string) (Profile, error) {
	kept := make([]FavoriteMeal, 0, len(p.FavoriteMeals))
	found := false
	for _, f := range p.FavoriteMeals {
		if f.ID == favoriteID {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return p, ErrFavoriteNotFound
	}
	p.FavoriteMeals = kept

	if err := s.repo.Save(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// LogFavorite логирует блюдо по шаблону: полный путь AddMeal со всеми
// эффектами прогресса.
func (s *Service) LogFavorite(ctx context.Context, p Profile, favoriteID string) (Profile, progression.Events, error) {
	for _, f := range p.FavoriteMeals {
		if f.ID == favoriteID {
			return s.AddMeal(ctx, p, MealInput{
				Name:     f.Name,
				Calories: f.Calories,
				Protein:  f.Protein,
				Carbs:    f.Carbs,
				Fats:     f.Fats,
				Type:     f.Type,
			})
		}
	}
	return p, progression.Events{}, ErrFavoriteNotFound
}

// validateSurvey проверяет обязательные поля анкеты до любых мутаций.
func validateSurvey(s plan.Survey) error {
	if s.Age <= 0 || s.Weight <= 0 || s.Height <= 0 {
		return ErrSurveyIncomplete
	}
	if !plan.ValidActivityLevel(s.ActivityLevel) || !plan.ValidGoal(s.Goal) {
		return ErrSurveyIncomplete
	}
	return nil
}
