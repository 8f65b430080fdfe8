package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-frontdesk/models"
)

func TestAuthLoginAndTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAuthService(f.db, "test-secret", time.Hour, f.clock, f.audit)

	op, err := svc.CreateOperator(ctx, OperatorInput{
		FullName: "Front Desk", Email: " Desk@Hotel.test ", Password: "desk-pass-1", Role: models.RoleBillingDesk,
	})
	if err != nil {
		t.Fatalf("CreateOperator: %v", err)
	}
	if op.Email != "desk@hotel.test" || op.Password == "desk-pass-1" {
		t.Errorf("expected normalized email and hashed password, got %+v", op)
	}

	if _, err := svc.Login(ctx, "desk@hotel.test", "wrong"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@hotel.test", "desk-pass-1"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential for unknown email, got %v", err)
	}

	res, err := svc.Login(ctx, "DESK@hotel.test", "desk-pass-1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" || !res.ExpiresAt.Equal(f.clock.Now().Add(time.Hour)) {
		t.Errorf("unexpected login result %+v", res)
	}

	claims, err := svc.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.OperatorID() != op.ID || claims.Role != models.RoleBillingDesk {
		t.Errorf("unexpected claims %+v", claims)
	}

	t.Run("OtherSecret", func(t *testing.T) {
		other := NewAuthService(f.db, "another-secret", time.Hour, f.clock, nil)
		if _, err := other.ParseToken(res.Token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		f.clock.Advance(2 * time.Hour)
		if _, err := svc.ParseToken(res.Token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := svc.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	actions := f.actions(t)
	if !contains(actions, ActionLogin) || !contains(actions, ActionLoginFailed) {
		t.Errorf("missing login audit entries in %v", actions)
	}
}

func TestCreateOperatorValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewAuthService(f.db, "test-secret", 0, f.clock, f.audit)

	if svc.TokenDuration != 12*time.Hour {
		t.Errorf("expected default token duration, got %v", svc.TokenDuration)
	}

	ok := OperatorInput{Email: "owner@hotel.test", Password: "owner-pass", Role: models.RoleOwner}
	if _, err := svc.CreateOperator(ctx, ok); err != nil {
		t.Fatalf("CreateOperator: %v", err)
	}

	cases := map[string]OperatorInput{
		"duplicate email": ok,
		"bad email":       {Email: "owner", Password: "owner-pass", Role: models.RoleOwner},
		"short password":  {Email: "a@hotel.test", Password: "short", Role: models.RoleOwner},
		"unknown role":    {Email: "b@hotel.test", Password: "long-enough", Role: "manager"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.CreateOperator(ctx, in); !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	ops, err := svc.ListOperators(ctx)
	if err != nil || len(ops) != 1 {
		t.Errorf("expected one operator, got %d (%v)", len(ops), err)
	}
}
