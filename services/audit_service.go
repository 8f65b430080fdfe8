package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

const (
	ActionLogin             = "LOGIN"
	ActionLoginFailed       = "LOGIN_FAILED"
	ActionCheckinInitiated  = "CHECKIN_INITIATED"
	ActionCheckinCompleted  = "Check-In Completed"
	ActionCheckinFailed     = "CHECKIN_FAILED"
	ActionCheckoutInitiated = "CHECKOUT_INITIATED"
	ActionCheckoutCompleted = "CHECKOUT_COMPLETED"
	ActionCheckoutFailed    = "CHECKOUT_FAILED"
	ActionEditSuccessful    = "Edit-Successful"
	ActionEditFailed        = "Edit-Failed"
	ActionDownloadPDF       = "DOWNLOAD_PDF"
)

// EventPublisher forwards audit entries off-box. KafkaPublisher is the production one.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error
}

type AuditService struct {
	DB        *gorm.DB
	Clock     civiltime.Clock
	Publisher EventPublisher
	Topic     string
	Log       *slog.Logger
}

func NewAuditService(db *gorm.DB, clock civiltime.Clock, log *slog.Logger) *AuditService {
	return &AuditService{DB: db, Clock: clock, Log: log}
}

// WithPublisher also sends every entry to topic.
func (s *AuditService) WithPublisher(p EventPublisher, topic string) *AuditService {
	s.Publisher = p
	s.Topic = topic
	return s
}

// Record writes one audit entry. Failures are logged and swallowed so the
// audited action never fails because of its audit trail.
func (s *AuditService) Record(ctx context.Context, action, details string, userID, bookingID *uint) {
	if s == nil {
		return
	}
	entry := models.SystemLog{
		Action:    action,
		Details:   details,
		UserID:    userID,
		BookingID: bookingID,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		s.Log.ErrorContext(ctx, "audit write failed", "action", action, "err", err)
	}

	if s.Publisher == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		s.Log.ErrorContext(ctx, "audit encode failed", "action", action, "err", err)
		return
	}
	key := ""
	if bookingID != nil {
		key = strconv.FormatUint(uint64(*bookingID), 10)
	}
	headers := map[string]string{"action": action}
	if err := s.Publisher.Publish(ctx, s.Topic, key, payload, headers); err != nil {
		s.Log.WarnContext(ctx, "audit publish failed", "action", action, "topic", s.Topic, "err", err)
	}
}

type LogFilter struct {
	Action    string
	BookingID *uint
	Limit     int
}

// List returns the newest entries first.
func (s *AuditService) List(ctx context.Context, f LogFilter) ([]models.SystemLog, error) {
	q := s.DB.WithContext(ctx).Model(&models.SystemLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.BookingID != nil {
		q = q.Where("booking_id = ?", *f.BookingID)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.SystemLog
	err := q.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func uintPtr(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}
