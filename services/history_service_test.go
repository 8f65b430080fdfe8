package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, civiltime.Zone)
}

func seedHistory(t *testing.T, f *fixture) []models.GuestHistory {
	t.Helper()
	rows := []models.GuestHistory{
		{BookingID: 1, RoomNumber: "101", Name: "Asha Rao", Phone: "9876543210", IsPrimary: true,
			CheckinTime: at(2024, 3, 12, 10), CheckoutTime: at(2024, 3, 14, 9), StayDays: 2, GrossTotal: 2100, PaymentMethod: "UPI"},
		{BookingID: 2, RoomNumber: "202", Name: "Kiran Shetty", Phone: "9000000001", IsPrimary: true,
			CheckinTime: at(2024, 2, 28, 10), CheckoutTime: at(2024, 3, 1, 11), StayDays: 2, GrossTotal: 1050, PaymentMethod: "Cash"},
		{BookingID: 3, RoomNumber: "301", Name: "Meera Nair", Phone: "9000000002", IsPrimary: true,
			CheckinTime: at(2024, 1, 8, 10), CheckoutTime: at(2024, 1, 10, 23), StayDays: 2, GrossTotal: 4200, PaymentMethod: "Cash"},
		{BookingID: 4, RoomNumber: "102", Name: "Ravi Kumar", Phone: "9000000003", IsPrimary: true,
			CheckinTime: at(2023, 12, 29, 10), CheckoutTime: at(2023, 12, 31, 10), StayDays: 2, GrossTotal: 800, PaymentMethod: "UPI"},
	}
	if err := f.db.Create(&rows).Error; err != nil {
		t.Fatalf("seed history: %v", err)
	}
	return rows
}

func names(items []models.GuestHistory) []string {
	out := make([]string, len(items))
	for i, h := range items {
		out[i] = h.Name
	}
	return out
}

func TestHistoryFilters(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(at(2024, 3, 15, 12))
	seedHistory(t, f)
	svc := NewHistoryService(f.db, f.clock, 10)
	ctx := context.Background()

	cases := []struct {
		name  string
		query HistoryQuery
		want  []string
	}{
		{"DefaultIsWeekly", HistoryQuery{}, []string{"Asha Rao"}},
		{"Monthly", HistoryQuery{Filter: FilterMonthly}, []string{"Asha Rao", "Kiran Shetty"}},
		{"Yearly", HistoryQuery{Filter: FilterYearly}, []string{"Asha Rao", "Kiran Shetty", "Meera Nair"}},
		{"All", HistoryQuery{Filter: FilterAll}, []string{"Asha Rao", "Kiran Shetty", "Meera Nair", "Ravi Kumar"}},
		{"CustomIncludesLastDay", HistoryQuery{Filter: FilterCustom, From: "2024-01-10", To: "2024-03-01"}, []string{"Kiran Shetty", "Meera Nair"}},
		{"SearchByName", HistoryQuery{Filter: FilterAll, Search: "KIR"}, []string{"Kiran Shetty"}},
		{"SearchByRoom", HistoryQuery{Filter: FilterAll, Search: "301"}, []string{"Meera Nair"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.List(ctx, tc.query)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			got := names(page.Items)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}

	bad := map[string]HistoryQuery{
		"unknown filter":   {Filter: "fortnightly"},
		"custom no dates":  {Filter: FilterCustom},
		"custom bad date":  {Filter: FilterCustom, From: "10/01/2024", To: "2024-03-01"},
		"custom backwards": {Filter: FilterCustom, From: "2024-03-01", To: "2024-01-01"},
	}
	for name, q := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.List(ctx, q); !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestHistoryPaging(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(at(2024, 3, 15, 12))
	seedHistory(t, f)
	svc := NewHistoryService(f.db, f.clock, 0)

	page, err := svc.List(context.Background(), HistoryQuery{Filter: FilterAll, Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 4 || page.TotalPages != 2 || len(page.Items) != 1 || page.Items[0].Name != "Ravi Kumar" {
		t.Errorf("unexpected page %+v", page)
	}

	page, _ = svc.List(context.Background(), HistoryQuery{Filter: FilterAll})
	if page.PageSize != 5 || page.Page != 1 {
		t.Errorf("expected default page size 5 on page 1, got %d/%d", page.PageSize, page.Page)
	}
}

func TestHistoryExportAndDelete(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(at(2024, 3, 15, 12))
	rows := seedHistory(t, f)
	svc := NewHistoryService(f.db, f.clock, 10)
	ctx := context.Background()

	var buf bytes.Buffer
	n, err := svc.ExportCSV(ctx, HistoryQuery{Filter: FilterYearly}, &buf)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if n != 3 || len(records) != 4 {
		t.Fatalf("expected 3 rows plus header, got n=%d records=%d", n, len(records))
	}
	if records[0][3] != "name" || records[1][3] != "Asha Rao" || records[1][15] != "2100.00" {
		t.Errorf("unexpected csv %v", records[:2])
	}
	if records[1][13] != "2024-03-14 09:00:00" {
		t.Errorf("expected civil checkout time, got %q", records[1][13])
	}

	if err := svc.Delete(ctx, rows[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, rows[0].ID); !errors.Is(err, ErrHistoryNotFound) {
		t.Errorf("expected ErrHistoryNotFound, got %v", err)
	}
	if !IsNotFound(ErrHistoryNotFound) {
		t.Error("IsNotFound should cover history lookups")
	}
}
