package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/caloclash/caloclash/internal/config"
	"github.com/caloclash/caloclash/internal/dbmigrate"
	"github.com/caloclash/caloclash/internal/kvstore"
	"github.com/caloclash/caloclash/internal/plan"
	"github.com/caloclash/caloclash/internal/profiles"
	"github.com/caloclash/caloclash/internal/progression"
	"github.com/caloclash/caloclash/internal/reports"
)

var (
	ctx     = context.Background()
	cfg     *config.Config
	store   kvstore.Store
	svc     *profiles.Service
	profile profiles.Profile
)

func main() {
	fmt.Println("=== CaloClash Engine Walkthrough ===")
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Open Store", stepOpenStore},
		{"Bootstrap", stepBootstrap},
		{"Active Profile", stepActiveProfile},
		{"Log Breakfast", stepLogBreakfast},
		{"Drink Water", stepDrinkWater},
		{"Save Favorite", stepSaveFavorite},
		{"Daily Summary", stepDailySummary},
		{"Export CSV Report", stepExportReport},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	if store != nil {
		store.Close()
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ WALKTHROUGH FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ WALKTHROUGH PASSED")
}

func stepOpenStore() error {
	cfg = config.Load()

	if cfg.StoreMode == config.StoreModePostgres && cfg.RunMigrationsOnStartup {
		dbURL, source, warning, err := dbmigrate.SelectDatabaseURL(cfg, false)
		if err != nil {
			return err
		}
		if warning != "" {
			fmt.Printf("(migrate warning: %s) ", warning)
		}
		fmt.Printf("(migrating via %s) ", source)
		if err := dbmigrate.Run("up", dbURL, dbmigrate.DefaultMigrationsDir); err != nil {
			return err
		}
	}

	var err error
	store, err = kvstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	svc = profiles.NewService(store, cfg)
	return nil
}

func stepBootstrap() error {
	all, activeID, err := svc.Bootstrap(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("(%d profiles, active=%q) ", len(all), activeID)
	return nil
}

// stepActiveProfile loads the active profile, creating a demo one on a
// fresh store.
func stepActiveProfile() error {
	p, err := svc.ActiveProfile(ctx)
	if err == nil {
		profile = p
		return nil
	}
	if err != profiles.ErrNoActiveProfile {
		return err
	}

	p, err = svc.CreateProfile(ctx, plan.Survey{
		Name:              "Ana",
		Gender:            "female",
		Age:               30,
		Weight:            65,
		Height:            165,
		MeasurementSystem: "metric",
		ActivityLevel:     "moderate",
		Occupation:        "sedentary",
		SleepHours:        7,
		Goal:              "lose",
		Pace:              "moderate",
	})
	if err != nil {
		return err
	}
	fmt.Printf("(created %s, plan %d kcal) ", p.Name, p.Plan.Calories)
	profile = p
	return nil
}

func stepLogBreakfast() error {
	p, events, err := svc.AddMeal(ctx, profile, profiles.MealInput{
		Name:     "Oatmeal with berries",
		Calories: 320,
		Protein:  12,
		Carbs:    55,
		Fats:     6,
		Type:     profiles.MealBreakfast,
	})
	if err != nil {
		return err
	}
	profile = p
	reportEvents(events)
	return nil
}

func stepDrinkWater() error {
	for i := 0; i < 4; i++ {
		p, events, err := svc.AddWater(ctx, profile)
		if err != nil {
			return err
		}
		profile = p
		reportEvents(events)
	}
	return nil
}

func stepSaveFavorite() error {
	if len(profile.TodayMeals) == 0 {
		return fmt.Errorf("no meal to favorite")
	}
	p, err := svc.SaveFavorite(ctx, profile, profile.TodayMeals[0].ID)
	if err != nil {
		return err
	}
	profile = p
	return nil
}

func stepDailySummary() error {
	totals := profiles.SumToday(profile)
	g := profile.Gamification
	fmt.Printf("(%d/%d kcal, %d glasses, level %d, %d pts, streak %d) ",
		totals.Calories, profile.Plan.Calories, profile.WaterIntake, g.Level, g.Points, g.Streak)
	return nil
}

func stepExportReport() error {
	data, err := reports.NewGenerator().Generate(profile, reports.FormatCSV)
	if err != nil {
		return err
	}
	path := os.Getenv("REPORT_PATH")
	if path == "" {
		path = "profile-report.csv"
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("(%d bytes -> %s) ", len(data), path)
	return nil
}

func reportEvents(events progression.Events) {
	if events.LeveledUp {
		fmt.Printf("(level up! now %d) ", events.NewLevel)
	}
	for _, id := range events.NewBadges {
		if b, ok := progression.BadgeInfo(id); ok {
			fmt.Printf("(badge: %s) ", b.Name)
		}
	}
}
