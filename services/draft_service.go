package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Draft is an operator's unfinished check-in.
type Draft struct {
	ID        string         `json:"id"`
	Request   CheckinRequest `json:"request"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// DraftService keeps one check-in draft per operator, each with an expiry.
type DraftService struct {
	DB    *gorm.DB
	Clock civiltime.Clock
	TTL   time.Duration
}

func NewDraftService(db *gorm.DB, clock civiltime.Clock, ttl time.Duration) *DraftService {
	return &DraftService{DB: db, Clock: clock, TTL: ttl}
}

func toDraft(row models.CheckinDraft) (Draft, error) {
	var req CheckinRequest
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &req); err != nil {
			return Draft{}, err
		}
	}
	return Draft{ID: row.ID, Request: req, ExpiresAt: civiltime.ToCivil(row.ExpiresAt)}, nil
}

// Save replaces the operator's draft and restarts its expiry.
func (s *DraftService) Save(ctx context.Context, operatorID uint, req CheckinRequest) (Draft, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Draft{}, err
	}
	expires := s.Clock.Now().Add(s.TTL)
	var roomID *uint
	if req.RoomID != 0 {
		roomID = &req.RoomID
	}

	var row models.CheckinDraft
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("operator_id = ?", operatorID).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.CheckinDraft{
				ID:         uuid.New().String(),
				OperatorID: operatorID,
				RoomID:     roomID,
				Payload:    datatypes.JSON(payload),
				ExpiresAt:  expires,
			}
			return tx.Create(&row).Error
		case err != nil:
			return err
		}
		row.RoomID = roomID
		row.Payload = datatypes.JSON(payload)
		row.ExpiresAt = expires
		return tx.Save(&row).Error
	})
	if err != nil {
		return Draft{}, err
	}
	return toDraft(row)
}

// Load returns ErrDraftNotFound for a missing or expired draft.
func (s *DraftService) Load(ctx context.Context, operatorID uint) (Draft, error) {
	var row models.CheckinDraft
	if err := s.DB.WithContext(ctx).Where("operator_id = ?", operatorID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Draft{}, ErrDraftNotFound
		}
		return Draft{}, err
	}
	if !s.Clock.Now().Before(row.ExpiresAt) {
		return Draft{}, ErrDraftNotFound
	}
	return toDraft(row)
}

func (s *DraftService) Discard(ctx context.Context, operatorID uint) error {
	return s.DB.WithContext(ctx).Where("operator_id = ?", operatorID).Delete(&models.CheckinDraft{}).Error
}

// PurgeExpired deletes every draft past its expiry.
func (s *DraftService) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Where("expires_at <= ?", s.Clock.Now()).Delete(&models.CheckinDraft{})
	return res.RowsAffected, res.Error
}

// RunJanitor purges expired drafts every interval until ctx is done.
func (s *DraftService) RunJanitor(ctx context.Context, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				log.Warn("draft purge failed", "err", err)
				continue
			}
			if n > 0 {
				log.Debug("expired drafts purged", "count", n)
			}
		}
	}
}
