package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hotel-frontdesk/models"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type RoomService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewRoomService(db *gorm.DB, audit *AuditService) *RoomService {
	return &RoomService{DB: db, Audit: audit}
}

type RoomFilter struct {
	RoomType string
	Floor    string
	Status   string
}

// RoomTypeSummary is one bookable category with its cheapest rate.
type RoomTypeSummary struct {
	RoomType  string  `json:"room_type"`
	BasePrice float64 `json:"base_price"`
	Available int     `json:"available"`
	Total     int     `json:"total"`
}

type RoomInput struct {
	RoomNumber *string  `json:"room_number"`
	RoomType   *string  `json:"room_type"`
	Floor      *string  `json:"floor"`
	BasePrice  *float64 `json:"base_price"`
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqlDriver.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Model(&models.Room{})
	if t := strings.TrimSpace(f.RoomType); t != "" {
		q = q.Where("room_type = ?", t)
	}
	if fl := strings.TrimSpace(f.Floor); fl != "" {
		q = q.Where("floor = ?", fl)
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		q = q.Where("status = ?", st)
	}
	var rooms []models.Room
	err := q.Order("floor ASC, room_number ASC").Find(&rooms).Error
	return rooms, err
}

// Types summarizes rooms by type, cheapest first.
func (s *RoomService) Types(ctx context.Context) ([]RoomTypeSummary, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, err
	}
	byType := map[string]*RoomTypeSummary{}
	for _, r := range rooms {
		sum, ok := byType[r.RoomType]
		if !ok {
			sum = &RoomTypeSummary{RoomType: r.RoomType, BasePrice: r.BasePrice}
			byType[r.RoomType] = sum
		}
		if r.BasePrice < sum.BasePrice {
			sum.BasePrice = r.BasePrice
		}
		sum.Total++
		if r.IsAvailable() {
			sum.Available++
		}
	}
	out := make([]RoomTypeSummary, 0, len(byType))
	for _, sum := range byType {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BasePrice == out[j].BasePrice {
			return out[i].RoomType < out[j].RoomType
		}
		return out[i].BasePrice < out[j].BasePrice
	})
	return out, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, err
	}
	return room, nil
}

func (in RoomInput) validate(creating bool) error {
	if creating && (in.RoomNumber == nil || strings.TrimSpace(*in.RoomNumber) == "") {
		return invalid("room_number", "room number is required")
	}
	if in.RoomNumber != nil && strings.TrimSpace(*in.RoomNumber) == "" {
		return invalid("room_number", "room number must not be empty")
	}
	if creating && (in.RoomType == nil || strings.TrimSpace(*in.RoomType) == "") {
		return invalid("room_type", "room type is required")
	}
	if in.BasePrice != nil && *in.BasePrice < 0 {
		return invalid("base_price", "must not be negative")
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (models.Room, error) {
	if err := in.validate(true); err != nil {
		return models.Room{}, err
	}
	room := models.Room{
		RoomNumber: strings.TrimSpace(*in.RoomNumber),
		RoomType:   strings.TrimSpace(*in.RoomType),
		Status:     models.RoomAvailable,
	}
	if in.Floor != nil {
		room.Floor = strings.TrimSpace(*in.Floor)
	}
	if in.BasePrice != nil {
		room.BasePrice = *in.BasePrice
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, fmt.Errorf("room %s: %w", room.RoomNumber, ErrDuplicateRoom)
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (models.Room, error) {
	if err := in.validate(false); err != nil {
		return models.Room{}, err
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	updates := map[string]interface{}{}
	if in.RoomNumber != nil {
		updates["room_number"] = strings.TrimSpace(*in.RoomNumber)
	}
	if in.RoomType != nil {
		updates["room_type"] = strings.TrimSpace(*in.RoomType)
	}
	if in.Floor != nil {
		updates["floor"] = strings.TrimSpace(*in.Floor)
	}
	if in.BasePrice != nil {
		updates["base_price"] = *in.BasePrice
	}
	if len(updates) == 0 {
		return room, nil
	}
	if err := s.DB.WithContext(ctx).Model(&room).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, ErrDuplicateRoom
		}
		return models.Room{}, err
	}
	return s.Get(ctx, id)
}

// Delete refuses rooms that still have a guest in them.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	room, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == models.RoomOccupied {
		return ErrRoomOccupied
	}
	return s.DB.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// Select starts a check-in on an available room.
func (s *RoomService) Select(ctx context.Context, id, operatorID uint) (models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	if !room.IsAvailable() {
		return models.Room{}, ErrRoomNotAvailable
	}
	s.Audit.Record(ctx, ActionCheckinInitiated,
		fmt.Sprintf("Room %s selected for check-in", room.RoomNumber), uintPtr(operatorID), nil)
	return room, nil
}
