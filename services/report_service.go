package services

import (
	"context"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalRooms     int64   `json:"total_rooms"`
	AvailableRooms int64   `json:"available_rooms"`
	OccupiedRooms  int64   `json:"occupied_rooms"`
	CurrentGuests  int64   `json:"current_guests"`
	CheckInsToday  int64   `json:"check_ins_today"`
	CheckOutsToday int64   `json:"check_outs_today"`
	RevenueToday   float64 `json:"revenue_today"`
	RevenueWeek    float64 `json:"revenue_week"`
	RevenueMonth   float64 `json:"revenue_month"`
	AsOf           string  `json:"as_of"`
}

type ReportService struct {
	DB    *gorm.DB
	Clock civiltime.Clock
}

func NewReportService(db *gorm.DB, clock civiltime.Clock) *ReportService {
	return &ReportService{DB: db, Clock: clock}
}

func (s *ReportService) revenueSince(db *gorm.DB, from, to time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.GuestHistory{}).
		Select("COALESCE(SUM(gross_total), 0)").
		Where("checkout_time >= ? AND checkout_time < ?", from, to).
		Scan(&total).Error
	return total, err
}

// Dashboard computes the owner's overview in civil time. Revenue sums gross
// totals of completed checkouts, which only the primary guest's row carries.
func (s *ReportService) Dashboard(ctx context.Context) (DashboardStats, error) {
	db := s.DB.WithContext(ctx)
	now := s.Clock.Now()
	today := civiltime.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := civiltime.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	monthStart := civiltime.StartOfMonth(now)

	var st DashboardStats
	st.AsOf = civiltime.FormatDisplay(now)

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&st.TotalRooms, db.Model(&models.Room{})},
		{&st.AvailableRooms, db.Model(&models.Room{}).Where("status = ?", models.RoomAvailable)},
		{&st.OccupiedRooms, db.Model(&models.Room{}).Where("status = ?", models.RoomOccupied)},
		{&st.CurrentGuests, db.Model(&models.Guest{}).Where("is_primary = ?", true)},
		{&st.CheckOutsToday, db.Model(&models.GuestHistory{}).
			Where("is_primary = ? AND checkout_time >= ? AND checkout_time < ?", true, today, tomorrow)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return DashboardStats{}, err
		}
	}

	var activeToday, departedToday int64
	if err := db.Model(&models.Booking{}).
		Where("checkin_time >= ? AND checkin_time < ?", today, tomorrow).
		Count(&activeToday).Error; err != nil {
		return DashboardStats{}, err
	}
	if err := db.Model(&models.GuestHistory{}).
		Where("is_primary = ? AND checkin_time >= ? AND checkin_time < ?", true, today, tomorrow).
		Count(&departedToday).Error; err != nil {
		return DashboardStats{}, err
	}
	st.CheckInsToday = activeToday + departedToday

	var err error
	if st.RevenueToday, err = s.revenueSince(db, today, tomorrow); err != nil {
		return DashboardStats{}, err
	}
	if st.RevenueWeek, err = s.revenueSince(db, weekStart, weekEnd); err != nil {
		return DashboardStats{}, err
	}
	if st.RevenueMonth, err = s.revenueSince(db, monthStart, now.Add(time.Second)); err != nil {
		return DashboardStats{}, err
	}
	return st, nil
}
