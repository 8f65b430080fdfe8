package config

import (
	"testing"
	"time"

	"hotel-frontdesk/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DRAFT_TTL", "30m")
	t.Setenv("GRACE_PERIOD_HOURS", "1.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.DraftTTL != 30*time.Minute {
		t.Errorf("expected 30m draft TTL, got %v", cfg.DraftTTL)
	}
	if cfg.GracePeriodHours != 1.5 {
		t.Errorf("expected grace 1.5, got %v", cfg.GracePeriodHours)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.HistoryPageSize != 5 {
		t.Errorf("expected default page size 5, got %d", cfg.HistoryPageSize)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestParseCorsOrigins(t *testing.T) {
	cfg := &Config{}
	if got := cfg.ParseCorsOrigins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("expected wildcard, got %v", got)
	}
	cfg.CorsOrigins = "http://a.test, ,http://b.test"
	if got := cfg.ParseCorsOrigins(); len(got) != 2 || got[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", got)
	}
}

func TestResolveMySQLDSN(t *testing.T) {
	dsn, err := resolveMySQLDSN(&Config{MySQLURL: "mysql://u:p@db.test/hotel"})
	if err != nil {
		t.Fatal(err)
	}
	want := "u:p@tcp(db.test:3306)/hotel?charset=utf8mb4&loc=Local&parseTime=True"
	if dsn != want {
		t.Errorf("expected %s, got %s", want, dsn)
	}

	if _, err := resolveMySQLDSN(&Config{MySQLURL: "mysql://u:p@db.test/"}); err == nil {
		t.Error("expected error for missing database name")
	}

	dsn, _ = resolveMySQLDSN(&Config{DBUser: "root", DBHost: "127.0.0.1", DBName: "hotel_db"})
	if dsn != "root:@tcp(127.0.0.1:3306)/hotel_db?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Errorf("unexpected dsn %s", dsn)
	}
}

func TestSeedDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(nil))
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &Config{
		SeedOwnerEmail:    "owner@hotel.test",
		SeedOwnerPassword: "secret",
		SeedDeskEmail:     "desk@hotel.test",
	}
	SeedDatabase(db, cfg)
	SeedDatabase(db, cfg)

	var ops []models.Operator
	db.Find(&ops)
	if len(ops) != 1 || ops[0].Role != models.RoleOwner {
		t.Errorf("expected only the owner seeded, got %+v", ops)
	}

	var rooms int64
	db.Model(&models.Room{}).Where("status = ?", models.RoomAvailable).Count(&rooms)
	if rooms != int64(len(defaultRooms)) {
		t.Errorf("expected %d rooms, got %d", len(defaultRooms), rooms)
	}
}
