package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	StoreModeMemory   = "memory"
	StoreModeSQLite   = "sqlite"
	StoreModePostgres = "postgres"
)

// Config содержит конфигурацию приложения
type Config struct {
	Env string // local | staging | prod

	// Store
	StoreMode  string // memory | sqlite | postgres
	SQLitePath string

	// Database (postgres store only)
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	// Progression tuning. Defaults match the product rules; overriding
	// them is for experiments only.
	PointsPerMeal           int
	PointsPerLevel          int
	WaterMilestoneGlasses   int
	PointsPerWaterMilestone int
	WaterGlassMl            int

	// Migrations
	RunMigrationsOnStartup bool
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	// ---------- Store ----------
	storeMode := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_MODE")))
	if storeMode == "" {
		storeMode = StoreModeSQLite
	}
	switch storeMode {
	case StoreModeMemory, StoreModeSQLite, StoreModePostgres:
	default:
		log.Printf("WARNING: unknown STORE_MODE=%q, fallback to %s", storeMode, StoreModeSQLite)
		storeMode = StoreModeSQLite
	}
	if storeMode == StoreModePostgres && runtimeDB == "" {
		log.Printf("WARNING: STORE_MODE=postgres but no DATABASE_URL configured, fallback to %s", StoreModeSQLite)
		storeMode = StoreModeSQLite
	}

	// SQLITE_PATH (default: caloclash.db)
	sqlitePath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if sqlitePath == "" {
		sqlitePath = "caloclash.db"
	}

	// ---------- Progression ----------
	pointsPerMeal := envInt("POINTS_PER_MEAL", 10)
	pointsPerLevel := envInt("POINTS_PER_LEVEL", 100)
	waterMilestoneGlasses := envInt("WATER_MILESTONE_GLASSES", 4)
	pointsPerWaterMilestone := envInt("POINTS_PER_WATER_MILESTONE", 5)
	waterGlassMl := envInt("WATER_GLASS_ML", 250)

	// ---------- Migrations ----------
	runMigrationsOnStartup := parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP")

	return &Config{
		Env: env,

		StoreMode:  storeMode,
		SQLitePath: sqlitePath,

		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		PointsPerMeal:           pointsPerMeal,
		PointsPerLevel:          pointsPerLevel,
		WaterMilestoneGlasses:   waterMilestoneGlasses,
		PointsPerWaterMilestone: pointsPerWaterMilestone,
		WaterGlassMl:            waterGlassMl,

		RunMigrationsOnStartup: runMigrationsOnStartup,
	}
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
