package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testSecret, time.Hour)

	req := &dto.RegisterRequest{
		FullName:    "Lina Haddad",
		Email:       "lina@example.com",
		Password:    "supersecret",
		PhoneNumber: "+96170123456",
		BirthDate:   "1995-04-12",
		Gender:      "female",
	}

	userRepo.On("ExistsByEmail", ctx(), req.Email).Return(false, nil)
	userRepo.On("ExistsByPhone", ctx(), req.PhoneNumber, uuid.Nil).Return(false, nil)
	userRepo.On("Create", ctx(), mock.MatchedBy(func(u *entity.User) bool {
		// The stored hash must verify against the plaintext and never
		// equal it.
		return u.PasswordHash != req.Password &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
	})).Return(nil)
	tokenRepo.On("Create", ctx(), mock.Anything).Return(nil)

	resp, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenRepository), testSecret, time.Hour)

	userRepo.On("ExistsByEmail", ctx(), "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName:    "Someone",
		Email:       "taken@example.com",
		Password:    "supersecret",
		PhoneNumber: "+96170123456",
		BirthDate:   "1995-04-12",
		Gender:      "male",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAuthService_Register_TooYoung(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenRepository), testSecret, time.Hour)

	userRepo.On("ExistsByEmail", ctx(), mock.Anything).Return(false, nil)
	userRepo.On("ExistsByPhone", ctx(), mock.Anything, uuid.Nil).Return(false, nil)

	recent := time.Now().AddDate(-10, 0, 0).Format("2006-01-02")
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName:    "Kid",
		Email:       "kid@example.com",
		Password:    "supersecret",
		PhoneNumber: "+96170123457",
		BirthDate:   recent,
		Gender:      "male",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAge_CalendarBoundaries(t *testing.T) {
	born := time.Date(2011, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Feb 29 of a leap year is still before a March 1 birthday.
	assert.Equal(t, 12, age(born, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 13, age(born, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, 12, age(born, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 13, age(born, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenRepository), testSecret, time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	userRepo.On("FindByEmail", ctx(), "lina@example.com").Return(&entity.User{
		ID:           uuid.New(),
		Email:        "lina@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "lina@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenRepository), testSecret, time.Hour)

	userRepo.On("FindByEmail", ctx(), "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "anything",
	})
	// Unknown email and wrong password are indistinguishable.
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	tokenRepo := new(MockTokenRepository)
	svc := NewAuthService(new(MockUserRepository), tokenRepo, testSecret, time.Hour)

	userID := uuid.New()
	var issuedID uuid.UUID
	tokenRepo.On("Create", ctx(), mock.Anything).Run(func(args mock.Arguments) {
		issuedID = args.Get(1).(*entity.AuthToken).ID
	}).Return(nil)

	signed, expiresAt, err := svc.IssueToken(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	tokenRepo.On("Exists", ctx(), mock.Anything).Return(true, nil)

	gotUser, gotToken, err := svc.VerifyToken(context.Background(), signed)
	assert.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, issuedID, gotToken)
}

func TestAuthService_VerifyToken_Revoked(t *testing.T) {
	tokenRepo := new(MockTokenRepository)
	svc := NewAuthService(new(MockUserRepository), tokenRepo, testSecret, time.Hour)

	tokenRepo.On("Create", ctx(), mock.Anything).Return(nil)
	signed, _, err := svc.IssueToken(context.Background(), uuid.New())
	assert.NoError(t, err)

	// The row is gone: the JWT is still within expiry but must be
	// rejected.
	tokenRepo.On("Exists", ctx(), mock.Anything).Return(false, nil)

	_, _, err = svc.VerifyToken(context.Background(), signed)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockTokenRepository), testSecret, time.Hour)

	_, _, err := svc.VerifyToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
