package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/caloclash/caloclash/internal/caldate"
	"github.com/caloclash/caloclash/internal/kvstore"
	"github.com/caloclash/caloclash/internal/plan"
	"github.com/caloclash/caloclash/internal/progression"
	"github.com/google/uuid"
)

// Storage keys owned by the engine. The legacy flat keys live in migrate.go.
const (
	keyProfiles        = "caloclash_profiles"
	keyActiveProfileID = "caloclash_activeProfileId"
	keyStorageVersion  = "caloclash_storageVersion"

	currentStorageVersion = "2"

	defaultProfileName = "My Profile"
)

// Repository — CRUD над коллекцией профилей и указателем активного
// профиля. Все мутации выполняются по схеме read-modify-write целиком:
// частичных обновлений нет, параллельные Save по одному профилю не
// безопасны (единственный локальный актор).
type Repository struct {
	store kvstore.Store
}

// NewRepository создаёт репозиторий поверх key/value хранилища.
func NewRepository(store kvstore.Store) *Repository {
	return &Repository{store: store}
}

// List возвращает все профили. Ошибка чтения или разбора логируется и
// даёт пустую коллекцию: один повреждённый документ не должен блокировать
// загрузку приложения.
func (r *Repository) List(ctx context.Context) []Profile {
	raw, ok, err := r.store.Get(ctx, keyProfiles)
	if err != nil {
		log.Printf("profiles: read %s failed: %v", keyProfiles, err)
		return []Profile{}
	}
	return kvstore.DecodeOr(raw, ok, []Profile{})
}

// Get возвращает профиль по id.
func (r *Repository) Get(ctx context.Context, id string) (Profile, bool) {
	for _, p := range r.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// Create добавляет новый профиль в коллекцию. Указатель активного профиля
// не трогается; это решение уровня сервиса.
func (r *Repository) Create(ctx context.Context, survey plan.Survey, targets plan.Targets) (Profile, error) {
	today := caldate.Today()
	p := Profile{
		ID:              uuid.NewString(),
		Name:            profileName(survey),
		UserData:        survey,
		Plan:            targets,
		TodayMeals:      []Meal{},
		LastSaveDate:    today,
		Gamification:    progression.NewState(),
		WaterIntake:     0,
		WaterIntakeDate: today,
		FavoriteMeals:   []FavoriteMeal{},
	}

	all := append(r.List(ctx), p)
	if err := r.writeProfiles(ctx, all); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save выполняет upsert профиля по id и пересчитывает денормализованное
// имя из анкеты.
func (r *Repository) Save(ctx context.Context, p Profile) error {
	p.Name = profileName(p.UserData)

	all := r.List(ctx)
	replaced := false
	for i := range all {
		if all[i].ID == p.ID {
			all[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, p)
	}
	return r.writeProfiles(ctx, all)
}

// Delete удаляет профиль. Если он был активным, указатель переводится на
// первый оставшийся профиль либо очищается, когда профилей больше нет.
func (r *Repository) Delete(ctx context.Context, id string) error {
	all := r.List(ctx)
	kept := make([]Profile, 0, len(all))
	for _, p := range all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := r.writeProfiles(ctx, kept); err != nil {
		return err
	}

	active, ok := r.ActiveID(ctx)
	if !ok || active != id {
		return nil
	}
	if len(kept) > 0 {
		return r.SetActiveID(ctx, kept[0].ID)
	}
	return r.store.Remove(ctx, keyActiveProfileID)
}

// ActiveID возвращает id активного профиля.
func (r *Repository) ActiveID(ctx context.Context) (string, bool) {
	raw, ok, err := r.store.Get(ctx, keyActiveProfileID)
	if err != nil {
		log.Printf("profiles: read %s failed: %v", keyActiveProfileID, err)
		return "", false
	}
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

// SetActiveID назначает активный профиль.
func (r *Repository) SetActiveID(ctx context.Context, id string) error {
	if err := r.store.Set(ctx, keyActiveProfileID, id); err != nil {
		return fmt.Errorf("set active profile: %w", err)
	}
	return nil
}

func (r *Repository) writeProfiles(ctx context.Context, all []Profile) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := r.store.Set(ctx, keyProfiles, string(data)); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}

func profileName(s plan.Survey) string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return defaultProfileName
}

// newMealID returns a time-ordered meal/favorite id. UUIDv7 keeps the
// meal log sortable by creation; a random UUID is an acceptable stand-in
// if the clock source fails.
func newMealID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
