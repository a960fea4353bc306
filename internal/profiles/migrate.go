package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/caloclash/caloclash/internal/caldate"
	"github.com/caloclash/caloclash/internal/kvstore"
	"github.com/caloclash/caloclash/internal/plan"
	"github.com/caloclash/caloclash/internal/progression"
	"github.com/google/uuid"
)

// Flat keys of the single-profile layout that predates the versioned
// collection. They exist only until MigrateLegacy has run once.
const (
	legacyKeyUserData        = "userData"
	legacyKeyUserPlan        = "userPlan"
	legacyKeyTodayMeals      = "todayMeals"
	legacyKeyLastSaveDate    = "lastSaveDate"
	legacyKeyGamification    = "gamification"
	legacyKeyWaterIntake     = "waterIntake"
	legacyKeyWaterIntakeDate = "waterIntakeDate"
	legacyKeyFavoriteMeals   = "favoriteMeals"
)

var legacyKeys = []string{
	legacyKeyUserData,
	legacyKeyUserPlan,
	legacyKeyTodayMeals,
	legacyKeyLastSaveDate,
	legacyKeyGamification,
	legacyKeyWaterIntake,
	legacyKeyWaterIntakeDate,
	legacyKeyFavoriteMeals,
}

// MigrateLegacy переводит дореформенную плоскую раскладку в коллекцию
// профилей. Идемпотентна: маркер версии обрывает повторный запуск, так
// что безопасно вызывать при каждом старте.
//
// Порядок записи: профили, активный указатель, маркер версии, удаление
// старых ключей. Падение между записью профилей и маркером приводит к
// повторной миграции при следующем запуске; падение после маркера, но до
// удаления, оставляет мёртвые ключи, которые больше никто не читает.
func (r *Repository) MigrateLegacy(ctx context.Context, today caldate.Day) error {
	version, ok, err := r.store.Get(ctx, keyStorageVersion)
	if err != nil {
		return fmt.Errorf("read storage version: %w", err)
	}
	if ok && version == currentStorageVersion {
		return nil
	}

	p, found := r.legacyProfile(ctx, today)
	if !found {
		// Nothing to carry over (or the core documents are unreadable).
		// Stamp the marker so the check above short-circuits from now on.
		return r.stampVersion(ctx)
	}

	if err := r.writeProfiles(ctx, []Profile{p}); err != nil {
		return err
	}
	if err := r.SetActiveID(ctx, p.ID); err != nil {
		return err
	}
	if err := r.stampVersion(ctx); err != nil {
		return err
	}
	if err := r.store.RemoveMany(ctx, legacyKeys); err != nil {
		return fmt.Errorf("remove legacy keys: %w", err)
	}
	log.Printf("profiles: migrated legacy data into profile %s", p.ID)
	return nil
}

// legacyProfile assembles one profile from the flat keys. userData and
// userPlan are required and must parse; every other field degrades to a
// typed default so one corrupt value cannot sink the rest.
func (r *Repository) legacyProfile(ctx context.Context, today caldate.Day) (Profile, bool) {
	rawData, okData := r.legacyGet(ctx, legacyKeyUserData)
	rawPlan, okPlan := r.legacyGet(ctx, legacyKeyUserPlan)
	if !okData || !okPlan {
		return Profile{}, false
	}

	var survey plan.Survey
	if err := json.Unmarshal([]byte(rawData), &survey); err != nil {
		log.Printf("profiles: legacy userData unreadable, skipping migration: %v", err)
		return Profile{}, false
	}
	var targets plan.Targets
	if err := json.Unmarshal([]byte(rawPlan), &targets); err != nil {
		log.Printf("profiles: legacy userPlan unreadable, skipping migration: %v", err)
		return Profile{}, false
	}

	rawMeals, okMeals := r.legacyGet(ctx, legacyKeyTodayMeals)
	rawState, okState := r.legacyGet(ctx, legacyKeyGamification)
	rawFavs, okFavs := r.legacyGet(ctx, legacyKeyFavoriteMeals)

	return Profile{
		ID:              uuid.NewString(),
		Name:            profileName(survey),
		UserData:        survey,
		Plan:            targets,
		TodayMeals:      kvstore.DecodeOr(rawMeals, okMeals, []Meal{}),
		LastSaveDate:    r.legacyDate(ctx, legacyKeyLastSaveDate, today),
		Gamification:    kvstore.DecodeOr(rawState, okState, progression.NewState()),
		WaterIntake:     r.legacyWater(ctx),
		WaterIntakeDate: r.legacyDate(ctx, legacyKeyWaterIntakeDate, today),
		FavoriteMeals:   kvstore.DecodeOr(rawFavs, okFavs, []FavoriteMeal{}),
	}, true
}

func (r *Repository) legacyGet(ctx context.Context, key string) (string, bool) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		log.Printf("profiles: read legacy %s failed: %v", key, err)
		return "", false
	}
	return raw, ok
}

// legacyDate reads a bare (unquoted) date string stored under key.
func (r *Repository) legacyDate(ctx context.Context, key string, fallback caldate.Day) caldate.Day {
	raw, ok := r.legacyGet(ctx, key)
	if !ok {
		return fallback
	}
	if d, ok := caldate.ParseLegacy(strings.TrimSpace(strings.Trim(raw, `"`))); ok {
		return d
	}
	return fallback
}

// legacyWater reads the glass count, stored as a plain numeric string.
func (r *Repository) legacyWater(ctx context.Context) int {
	raw, ok := r.legacyGet(ctx, legacyKeyWaterIntake)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.Trim(raw, `"`)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (r *Repository) stampVersion(ctx context.Context) error {
	if err := r.store.Set(ctx, keyStorageVersion, currentStorageVersion); err != nil {
		return fmt.Errorf("stamp storage version: %w", err)
	}
	return nil
}
