package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

const minRegistrationAge = 13

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, tokenID uuid.UUID) error
	// IssueToken mints a JWT backed by a fresh auth_tokens row.
	IssueToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error)
	// VerifyToken parses the JWT and checks its backing row still exists.
	VerifyToken(ctx context.Context, tokenString string) (userID, tokenID uuid.UUID, err error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	emailTaken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperror.WithDetails(apperror.ErrValidation, "validation failed", map[string]any{
			"email": "email is already registered",
		})
	}

	phoneTaken, err := s.userRepo.ExistsByPhone(ctx, req.PhoneNumber, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if phoneTaken {
		return nil, apperror.WithDetails(apperror.ErrValidation, "validation failed", map[string]any{
			"phone_number": "phone number is already registered",
		})
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		Bio:          req.Bio,
		BirthDate:    birthDate,
		Gender:       req.Gender,
		ImageURL:     req.Image,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.ErrConflict, "email or phone number is already registered")
		}
		return nil, err
	}

	return s.authResponse(ctx, &user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password; do not leak which one.
			return nil, apperror.New(apperror.ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.ErrUnauthorized, "invalid email or password")
	}

	return s.authResponse(ctx, user)
}

func (s *authService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokenRepo.Delete(ctx, tokenID)
}

func (s *authService) IssueToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	row := entity.AuthToken{
		UserID: userID,
		Name:   "auth_token",
	}
	if err := s.tokenRepo.Create(ctx, &row); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		ID:        row.ID.String(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *authService) VerifyToken(ctx context.Context, tokenString string) (uuid.UUID, uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.ErrUnauthorized, "invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.ErrUnauthorized, "invalid or expired token")
	}
	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.ErrUnauthorized, "invalid or expired token")
	}

	// A deleted row means the token was revoked, even if the JWT itself
	// is still within its expiry window.
	alive, err := s.tokenRepo.Exists(ctx, tokenID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !alive {
		return uuid.Nil, uuid.Nil, apperror.New(apperror.ErrUnauthorized, "invalid or expired token")
	}
	return userID, tokenID, nil
}

func (s *authService) authResponse(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	signed, expiresAt, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:      user,
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

func parseBirthDate(value string) (*time.Time, error) {
	birthDate, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperror.WithDetails(apperror.ErrValidation, "validation failed", map[string]any{
			"birth_date": "birth date must be in YYYY-MM-DD format",
		})
	}
	if age(birthDate, time.Now()) < minRegistrationAge {
		return nil, apperror.WithDetails(apperror.ErrValidation, "validation failed", map[string]any{
			"birth_date": "you must be at least 13 years old",
		})
	}
	return &birthDate, nil
}

// age counts completed years by calendar date. Comparing month and day
// keeps the birthday boundary stable across leap years.
func age(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		years--
	}
	return years
}
