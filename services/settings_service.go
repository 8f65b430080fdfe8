package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

var gstinRegex = regexp.MustCompile(`^[0-9A-Z]{15}$`)

type HotelSettingsInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
}

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Hotel returns the letterhead, or an empty one before it is configured.
func (s *SettingsService) Hotel(ctx context.Context) (models.HotelSetting, error) {
	var hotel models.HotelSetting
	if err := s.DB.WithContext(ctx).Order("id ASC").First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.HotelSetting{}, nil
		}
		return models.HotelSetting{}, err
	}
	return hotel, nil
}

func (s *SettingsService) UpdateHotel(ctx context.Context, in HotelSettingsInput) (models.HotelSetting, error) {
	gstin := strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if gstin != "" && !gstinRegex.MatchString(gstin) {
		return models.HotelSetting{}, invalid("gstin", "GSTIN must be 15 letters or digits")
	}

	hotel, err := s.Hotel(ctx)
	if err != nil {
		return models.HotelSetting{}, err
	}
	hotel.Name = strings.TrimSpace(in.Name)
	hotel.Address = strings.TrimSpace(in.Address)
	hotel.Phone = strings.TrimSpace(in.Phone)
	hotel.Email = strings.TrimSpace(in.Email)
	hotel.GSTIN = gstin

	if err := s.DB.WithContext(ctx).Save(&hotel).Error; err != nil {
		return models.HotelSetting{}, err
	}
	return hotel, nil
}
