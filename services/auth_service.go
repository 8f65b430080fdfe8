package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel-frontdesk/civiltime"
	"hotel-frontdesk/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims identify an operator session.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) OperatorID() uint {
	id, _ := strconv.ParseUint(c.UserID, 10, 64)
	return uint(id)
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Operator  models.Operator `json:"operator"`
}

type OperatorInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthService struct {
	DB            *gorm.DB
	Secret        []byte
	TokenDuration time.Duration
	Clock         civiltime.Clock
	Audit         *AuditService
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, clock civiltime.Clock, audit *AuditService) *AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{DB: db, Secret: []byte(secret), TokenDuration: ttl, Clock: clock, Audit: audit}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, invalid("email", "email and password required")
	}

	var op models.Operator
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&op).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResult{}, err
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(op.Password), []byte(password)) != nil {
		s.Audit.Record(ctx, ActionLoginFailed, fmt.Sprintf("Failed login for %s", email), uintPtr(op.ID), nil)
		return LoginResult{}, ErrInvalidCredential
	}

	token, exp, err := s.IssueToken(op)
	if err != nil {
		return LoginResult{}, err
	}
	s.Audit.Record(ctx, ActionLogin, fmt.Sprintf("%s logged in as %s", op.Email, op.Role), uintPtr(op.ID), nil)
	return LoginResult{Token: token, ExpiresAt: exp, Operator: op}, nil
}

func (s *AuthService) IssueToken(op models.Operator) (string, time.Time, error) {
	now := s.Clock.Now()
	exp := now.Add(s.TokenDuration)
	claims := Claims{
		UserID: strconv.FormatUint(uint64(op.ID), 10),
		Role:   op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	return signed, exp, err
}

func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.Clock.Now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.OperatorID() == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) ListOperators(ctx context.Context) ([]models.Operator, error) {
	var ops []models.Operator
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&ops).Error
	return ops, err
}

func (s *AuthService) CreateOperator(ctx context.Context, in OperatorInput) (models.Operator, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return models.Operator{}, invalid("email", "a valid email is required")
	}
	if len(in.Password) < 8 {
		return models.Operator{}, invalid("password", "must be at least 8 characters")
	}
	if in.Role != models.RoleOwner && in.Role != models.RoleBillingDesk {
		return models.Operator{}, invalid("role", "role must be %s or %s", models.RoleOwner, models.RoleBillingDesk)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Operator{}, err
	}
	op := models.Operator{FullName: strings.TrimSpace(in.FullName), Email: email, Password: string(hash), Role: in.Role}
	if err := s.DB.WithContext(ctx).Create(&op).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Operator{}, invalid("email", "an operator with this email already exists")
		}
		return models.Operator{}, err
	}
	return op, nil
}
