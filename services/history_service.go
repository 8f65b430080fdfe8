package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"gorm.io/gorm"
)

const (
	FilterWeekly  = "weekly"
	FilterMonthly = "monthly"
	FilterYearly  = "yearly"
	FilterCustom  = "custom"
	FilterAll     = "all"
)

type HistoryQuery struct {
	Filter   string `form:"filter"`
	From     string `form:"from"`
	To       string `form:"to"`
	Search   string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type HistoryPage struct {
	Items      []models.GuestHistory `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int64                 `json:"total"`
	TotalPages int                   `json:"total_pages"`
}

type HistoryService struct {
	DB              *gorm.DB
	Clock           civiltime.Clock
	DefaultPageSize int
}

func NewHistoryService(db *gorm.DB, clock civiltime.Clock, pageSize int) *HistoryService {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &HistoryService{DB: db, Clock: clock, DefaultPageSize: pageSize}
}

// window resolves a quick filter to a checkout_time range. A zero bound is open.
func (s *HistoryService) window(q HistoryQuery) (from, to time.Time, err error) {
	now := s.Clock.Now()
	switch strings.ToLower(strings.TrimSpace(q.Filter)) {
	case "", FilterWeekly:
		return now.AddDate(0, 0, -7), time.Time{}, nil
	case FilterMonthly:
		return civiltime.StartOfMonth(now), time.Time{}, nil
	case FilterYearly:
		return civiltime.StartOfYear(now), time.Time{}, nil
	case FilterAll:
		return time.Time{}, time.Time{}, nil
	case FilterCustom:
		if q.From == "" || q.To == "" {
			return time.Time{}, time.Time{}, invalid("from", "custom filter needs from and to dates")
		}
		f, err := time.ParseInLocation("2006-01-02", q.From, civiltime.Zone)
		if err != nil {
			return time.Time{}, time.Time{}, invalid("from", "expected YYYY-MM-DD")
		}
		t, err := time.ParseInLocation("2006-01-02", q.To, civiltime.Zone)
		if err != nil {
			return time.Time{}, time.Time{}, invalid("to", "expected YYYY-MM-DD")
		}
		if t.Before(f) {
			return time.Time{}, time.Time{}, invalid("to", "must not be before from")
		}
		// inclusive of the whole "to" day
		return f, t.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, invalid("filter", "unknown filter %q", q.Filter)
	}
}

func (s *HistoryService) scoped(ctx context.Context, q HistoryQuery) (*gorm.DB, error) {
	from, to, err := s.window(q)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx).Model(&models.GuestHistory{})
	if !from.IsZero() {
		db = db.Where("checkout_time >= ?", from)
	}
	if !to.IsZero() {
		db = db.Where("checkout_time < ?", to)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		db = db.Where("LOWER(name) LIKE ? OR phone LIKE ? OR room_number LIKE ?", like, like, like)
	}
	return db, nil
}

// List pages through history newest checkout first.
func (s *HistoryService) List(ctx context.Context, q HistoryQuery) (HistoryPage, error) {
	db, err := s.scoped(ctx, q)
	if err != nil {
		return HistoryPage{}, err
	}

	size := q.PageSize
	if size <= 0 || size > 100 {
		size = s.DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return HistoryPage{}, err
	}
	var items []models.GuestHistory
	if err := db.Order("checkout_time DESC, id ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&items).Error; err != nil {
		return HistoryPage{}, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	return HistoryPage{Items: items, Page: page, PageSize: size, Total: total, TotalPages: totalPages}, nil
}

func (s *HistoryService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.GuestHistory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

var historyCSVHeader = []string{
	"id", "booking_id", "room_number", "name", "age", "phone", "gender", "is_primary",
	"id_proof_type", "id_proof_number", "city", "state",
	"checkin_time", "checkout_time", "stay_days",
	"gross_total", "discount", "advance_payment", "extra_charges", "payment_method",
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExportCSV writes every row matching q, ignoring paging.
func (s *HistoryService) ExportCSV(ctx context.Context, q HistoryQuery, out io.Writer) (int, error) {
	db, err := s.scoped(ctx, q)
	if err != nil {
		return 0, err
	}
	var rows []models.GuestHistory
	if err := db.Order("checkout_time DESC, id ASC").Find(&rows).Error; err != nil {
		return 0, err
	}

	w := csv.NewWriter(out)
	if err := w.Write(historyCSVHeader); err != nil {
		return 0, err
	}
	for _, h := range rows {
		record := []string{
			strconv.FormatUint(uint64(h.ID), 10),
			strconv.FormatUint(uint64(h.BookingID), 10),
			h.RoomNumber,
			h.Name,
			strconv.Itoa(h.Age),
			h.Phone,
			h.Gender,
			strconv.FormatBool(h.IsPrimary),
			h.IDProofType,
			h.IDProofNumber,
			h.City,
			h.State,
			civiltime.FormatStorage(h.CheckinTime),
			civiltime.FormatStorage(h.CheckoutTime),
			strconv.Itoa(h.StayDays),
			money(h.GrossTotal),
			money(h.Discount),
			money(h.AdvancePayment),
			money(h.ExtraCharges),
			h.PaymentMethod,
		}
		if err := w.Write(record); err != nil {
			return 0, fmt.Errorf("write row %d: %w", h.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// IsNotFound groups the lookup failures controllers turn into 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrDraftNotFound) ||
		errors.Is(err, ErrHistoryNotFound)
}
