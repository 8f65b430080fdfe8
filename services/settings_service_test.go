package services

import (
	"context"
	"testing"
)

func TestHotelSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewSettingsService(f.db)

	hotel, err := svc.Hotel(ctx)
	if err != nil || hotel.ID != 0 {
		t.Fatalf("expected empty letterhead, got %+v (%v)", hotel, err)
	}

	if _, err := svc.UpdateHotel(ctx, HotelSettingsInput{Name: "Hotel", GSTIN: "29ABC"}); !IsValidation(err) {
		t.Errorf("expected validation error for short GSTIN, got %v", err)
	}

	saved, err := svc.UpdateHotel(ctx, HotelSettingsInput{Name: " Hotel Sagar ", GSTIN: "29abcde1234f1z5"})
	if err != nil {
		t.Fatalf("UpdateHotel: %v", err)
	}
	if saved.ID == 0 || saved.Name != "Hotel Sagar" || saved.GSTIN != "29ABCDE1234F1Z5" {
		t.Errorf("unexpected settings %+v", saved)
	}

	again, err := svc.UpdateHotel(ctx, HotelSettingsInput{Name: "Hotel Sagar", Phone: "080-2222"})
	if err != nil {
		t.Fatalf("UpdateHotel: %v", err)
	}
	if again.ID != saved.ID || again.Phone != "080-2222" {
		t.Errorf("expected the same row updated, got %+v", again)
	}
}
