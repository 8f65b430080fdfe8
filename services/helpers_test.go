package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/config"
	"hotel-frontdesk/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db    *gorm.DB
	clock *civiltime.FixedClock
	audit *AuditService
}

var testCheckin = time.Date(2024, 1, 1, 10, 0, 0, 0, civiltime.Zone)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig(logger.Discard))
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(config.Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	clock := civiltime.NewFixedClock(testCheckin)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{db: db, clock: clock, audit: NewAuditService(db, clock, log)}
}

func (f *fixture) room(t *testing.T, number, roomType string, price float64) models.Room {
	t.Helper()
	r := models.Room{RoomNumber: number, RoomType: roomType, Floor: number[:1], BasePrice: price, Status: models.RoomAvailable}
	if err := f.db.Create(&r).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	return r
}

func (f *fixture) actions(t *testing.T) []string {
	t.Helper()
	var logs []models.SystemLog
	if err := f.db.Order("id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("list logs: %v", err)
	}
	out := make([]string, len(logs))
	for i, l := range logs {
		out[i] = l.Action
	}
	return out
}

func (f *fixture) count(t *testing.T, model any, where ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func primaryForm(state string) GuestForm {
	return GuestForm{
		ID:                     1,
		Name:                   "Asha Rao",
		Age:                    34,
		Phone:                  "9876543210",
		Gender:                 "Female",
		IsPrimary:              true,
		IDProofType:            "Aadhaar",
		IDProofNumber:          "123412341234",
		Address:                "12 MG Road",
		City:                   "Bengaluru",
		State:                  state,
		EmergencyContactName:   "Ravi Rao",
		EmergencyContactNumber: "9123456780",
	}
}

func companionForm(id uint, name string) GuestForm {
	return GuestForm{ID: id, Name: name, Age: 30, Phone: "9000000001", Gender: "Male"}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
