package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-frontdesk/models"
)

func TestDraftLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewDraftService(f.db, f.clock, 30*time.Minute)

	if _, err := svc.Load(ctx, 3); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}

	first, err := svc.Save(ctx, 3, CheckinRequest{RoomID: 4, StayDays: 2, Guests: []GuestForm{primaryForm("Goa")}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first.ID == "" || !first.ExpiresAt.Equal(testCheckin.Add(30*time.Minute)) {
		t.Errorf("unexpected draft %+v", first)
	}

	f.clock.Advance(20 * time.Minute)
	second, err := svc.Save(ctx, 3, CheckinRequest{RoomID: 4, StayDays: 5})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.ID != first.ID {
		t.Error("saving again should keep the operator's draft id")
	}
	if f.count(t, &models.CheckinDraft{}) != 1 {
		t.Error("expected one draft per operator")
	}

	got, err := svc.Load(ctx, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Request.StayDays != 5 || got.Request.RoomID != 4 {
		t.Errorf("unexpected payload %+v", got.Request)
	}

	if _, err := svc.Save(ctx, 9, CheckinRequest{RoomID: 1}); err != nil {
		t.Fatalf("Save other operator: %v", err)
	}

	f.clock.Advance(31 * time.Minute)
	if _, err := svc.Load(ctx, 3); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected expired draft to be hidden, got %v", err)
	}
	n, err := svc.PurgeExpired(ctx)
	if err != nil || n != 2 {
		t.Errorf("expected 2 purged, got %d (%v)", n, err)
	}

	if _, err := svc.Save(ctx, 3, CheckinRequest{RoomID: 2}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Discard(ctx, 3); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if _, err := svc.Load(ctx, 3); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected discarded draft gone, got %v", err)
	}
}
