package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in parent->child order.
func Models() []any {
	return []any{
		&models.Operator{},
		&models.HotelSetting{},
		&models.Room{},
		&models.Booking{},
		&models.Guest{},
		&models.GuestHistory{},
		&models.SystemLog{},
		&models.CheckinDraft{},
	}
}

// GormConfig stamps created_at/updated_at in civil time so stored rows compare consistently.
func GormConfig(l logger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
		NowFunc:        func() time.Time { return civiltime.SystemClock{}.Now() },
	}
}

var defaultRooms = []models.Room{
	{RoomNumber: "101", RoomType: "Ordinary", Floor: "1", BasePrice: 1000},
	{RoomNumber: "102", RoomType: "Ordinary", Floor: "1", BasePrice: 1000},
	{RoomNumber: "103", RoomType: "Single", Floor: "1", BasePrice: 1200},
	{RoomNumber: "201", RoomType: "Double", Floor: "2", BasePrice: 1800},
	{RoomNumber: "202", RoomType: "Double", Floor: "2", BasePrice: 1800},
	{RoomNumber: "203", RoomType: "Double", Floor: "2", BasePrice: 2000},
	{RoomNumber: "301", RoomType: "Triple", Floor: "3", BasePrice: 2500},
	{RoomNumber: "302", RoomType: "Triple", Floor: "3", BasePrice: 2500},
}

func seedOperator(db *gorm.DB, name, email, password, role string) {
	if strings.TrimSpace(password) == "" {
		slog.Warn("no seed password configured; skipping operator", "email", email, "role", role)
		return
	}
	var count int64
	db.Model(&models.Operator{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Warn("failed to hash seed password", "email", email, "err", err)
		return
	}
	op := models.Operator{FullName: name, Email: email, Password: string(hash), Role: role}
	if err := db.Create(&op).Error; err != nil {
		slog.Warn("failed to create seed operator", "email", email, "err", err)
		return
	}
	slog.Info("operator seeded", "email", email, "role", role)
}

// SeedDatabase fills an empty database with operators, rooms and hotel details.
func SeedDatabase(db *gorm.DB, cfg *Config) {
	seedOperator(db, "Owner", cfg.SeedOwnerEmail, cfg.SeedOwnerPassword, models.RoleOwner)
	seedOperator(db, "Billing Desk", cfg.SeedDeskEmail, cfg.SeedDeskPassword, models.RoleBillingDesk)

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := make([]models.Room, len(defaultRooms))
		copy(rooms, defaultRooms)
		for i := range rooms {
			rooms[i].Status = models.RoomAvailable
		}
		if err := db.Create(&rooms).Error; err != nil {
			slog.Warn("failed to seed rooms", "err", err)
		} else {
			slog.Info("rooms seeded", "count", len(rooms))
		}
	}

	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		if err := db.Create(&models.HotelSetting{Name: "Hotel"}).Error; err != nil {
			slog.Warn("failed to seed hotel settings", "err", err)
		}
	}
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func or(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func resolveMySQLDSN(cfg *Config) (string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			dsn, _, err := mysqlDSNFromURL(raw)
			return dsn, err
		}
		return raw, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, or(cfg.DBPort, "3306"), cfg.DBName,
	)
	return dsn, nil
}

func resolvePostgresDSN(cfg *Config) string {
	if raw := strings.TrimSpace(cfg.DatabaseURL); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, or(cfg.DBPort, "5432"))
}

// Dialector picks the gorm driver for DB_DRIVER.
func Dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		return postgres.Open(resolvePostgresDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	case "mysql", "":
		dsn, err := resolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func ConnectDatabase(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.IsDev() {
		level = logger.Info
	}
	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.IsDev(),
		},
	)

	db, err := gorm.Open(dialector, GormConfig(gormLogger))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	SeedDatabase(db, cfg)
	return db, nil
}
