package profiles

import (
	"context"
	"testing"

	"github.com/caloclash/caloclash/internal/caldate"
	"github.com/caloclash/caloclash/internal/kvstore/memory"
)

func mustDay(t *testing.T, s string) caldate.Day {
	t.Helper()
	d, ok := caldate.Parse(s)
	if !ok {
		t.Fatalf("bad test date %q", s)
	}
	return d
}

func seedLegacy(t *testing.T, store *memory.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	seed := map[string]string{
		legacyKeyUserData:        `{"name":"Lena","gender":"female","age":"28","weight":"60","height":"168","measurementSystem":"metric","activityLevel":"light","occupation":"standing","sleepHours":7,"goal":"maintain"}`,
		legacyKeyUserPlan:        `{"calories":2000,"protein":150,"carbs":200,"fats":67,"bmr":1400,"tdee":2000}`,
		legacyKeyTodayMeals:      `[{"id":"m1","name":"Oats","calories":"320","protein":12,"carbs":55,"fats":6,"type":"breakfast","timestamp":"2024-03-09T08:00:00Z"}]`,
		legacyKeyLastSaveDate:    "Sat Mar 09 2024",
		legacyKeyGamification:    `{"points":95,"level":1,"streak":3,"lastLogDate":"2024-03-09","badges":[],"totalMealsLogged":9}`,
		legacyKeyWaterIntake:     "3",
		legacyKeyWaterIntakeDate: "2024-03-09",
		legacyKeyFavoriteMeals:   `[{"id":"f1","name":"Shake","calories":250,"protein":30,"carbs":20,"fats":5,"type":"snack"}]`,
	}
	for k, v := range seed {
		if err := store.Set(ctx, k, v); err != nil {
			t.Fatalf("seed %s failed: %v", k, err)
		}
	}
}

func TestMigrateLegacyFullLayout(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)
	seedLegacy(t, store)

	today := mustDay(t, "2024-03-10")
	if err := repo.MigrateLegacy(ctx, today); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	all := repo.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected exactly one migrated profile, got %d", len(all))
	}
	p := all[0]

	if p.Name != "Lena" || p.UserData.Age != 28 || p.UserData.ActivityLevel != "light" {
		t.Errorf("survey not carried over: %+v", p.UserData)
	}
	if p.Plan.Calories != 2000 || p.Plan.Fats != 67 {
		t.Errorf("plan not carried over: %+v", p.Plan)
	}
	if len(p.TodayMeals) != 1 || p.TodayMeals[0].Calories != 320 {
		t.Errorf("meals not carried over: %+v", p.TodayMeals)
	}
	if want := mustDay(t, "2024-03-09"); p.LastSaveDate != want {
		t.Errorf("lastSaveDate = %v, expected %v", p.LastSaveDate, want)
	}
	if p.Gamification.Points != 95 || p.Gamification.Streak != 3 || p.Gamification.TotalMealsLogged != 9 {
		t.Errorf("gamification not carried over: %+v", p.Gamification)
	}
	if p.Gamification.LastLogDate == nil || *p.Gamification.LastLogDate != mustDay(t, "2024-03-09") {
		t.Errorf("lastLogDate not carried over: %v", p.Gamification.LastLogDate)
	}
	if p.WaterIntake != 3 || p.WaterIntakeDate != mustDay(t, "2024-03-09") {
		t.Errorf("water not carried over: %d @ %v", p.WaterIntake, p.WaterIntakeDate)
	}
	if len(p.FavoriteMeals) != 1 || p.FavoriteMeals[0].Name != "Shake" {
		t.Errorf("favorites not carried over: %+v", p.FavoriteMeals)
	}

	if active, ok := repo.ActiveID(ctx); !ok || active != p.ID {
		t.Errorf("expected migrated profile active, got %q ok=%v", active, ok)
	}
	if v, ok, _ := store.Get(ctx, keyStorageVersion); !ok || v != currentStorageVersion {
		t.Errorf("expected version %q stamped, got %q ok=%v", currentStorageVersion, v, ok)
	}
	for _, k := range legacyKeys {
		if _, ok, _ := store.Get(ctx, k); ok {
			t.Errorf("legacy key %s not removed", k)
		}
	}
}

func TestMigrateLegacySecondRunIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)
	seedLegacy(t, store)

	today := mustDay(t, "2024-03-10")
	if err := repo.MigrateLegacy(ctx, today); err != nil {
		t.Fatalf("first migrate failed: %v", err)
	}

	// Reappearing legacy keys must not produce a second profile.
	if err := store.Set(ctx, legacyKeyUserData, `{"name":"Ghost"}`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := repo.MigrateLegacy(ctx, today); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if all := repo.List(ctx); len(all) != 1 || all[0].Name != "Lena" {
		t.Fatalf("expected single original profile, got %+v", all)
	}
	if _, ok, _ := store.Get(ctx, legacyKeyUserData); !ok {
		t.Error("no-op run must not touch remaining keys")
	}
}

func TestMigrateLegacyNoData(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)

	if err := repo.MigrateLegacy(ctx, mustDay(t, "2024-03-10")); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if all := repo.List(ctx); len(all) != 0 {
		t.Fatalf("expected no profiles, got %+v", all)
	}
	if v, ok, _ := store.Get(ctx, keyStorageVersion); !ok || v != currentStorageVersion {
		t.Fatalf("expected version stamped, got %q ok=%v", v, ok)
	}
}

// userData is required: if it cannot be parsed the migration keeps no
// profile but still stamps the marker so it never retries forever.
func TestMigrateLegacyUnreadableCoreDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)
	seedLegacy(t, store)
	if err := store.Set(ctx, legacyKeyUserData, "{broken"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := repo.MigrateLegacy(ctx, mustDay(t, "2024-03-10")); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if all := repo.List(ctx); len(all) != 0 {
		t.Fatalf("expected no profiles, got %+v", all)
	}
	if v, ok, _ := store.Get(ctx, keyStorageVersion); !ok || v != currentStorageVersion {
		t.Fatalf("expected version stamped, got %q ok=%v", v, ok)
	}
}

// Optional fields degrade one at a time: corrupt gamification and water
// fall back to their defaults without blocking the rest.
func TestMigrateLegacyCorruptOptionalFields(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)
	seedLegacy(t, store)
	if err := store.Set(ctx, legacyKeyGamification, "][nonsense"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.Set(ctx, legacyKeyWaterIntake, "lots"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.Set(ctx, legacyKeyLastSaveDate, "not a date"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	today := mustDay(t, "2024-03-10")
	if err := repo.MigrateLegacy(ctx, today); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	all := repo.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one profile, got %d", len(all))
	}
	p := all[0]
	if p.Gamification.Points != 0 || p.Gamification.Level != 1 {
		t.Errorf("expected default gamification, got %+v", p.Gamification)
	}
	if p.WaterIntake != 0 {
		t.Errorf("expected water 0, got %d", p.WaterIntake)
	}
	if p.LastSaveDate != today {
		t.Errorf("expected lastSaveDate fallback to today, got %v", p.LastSaveDate)
	}
	if len(p.TodayMeals) != 1 {
		t.Errorf("healthy fields must survive, got meals %+v", p.TodayMeals)
	}
}
