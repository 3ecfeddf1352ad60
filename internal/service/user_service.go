package service

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/storage"
)

const latestPostsLimit = 5

type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.MeResponse, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, req *dto.UpdatePasswordRequest) (*dto.AuthResponse, error)
	UpdateImage(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (string, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, req *dto.DeleteAccountRequest) error
}

type userService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	postRepo     repository.PostRepository
	followRepo   repository.FollowRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
	authService  AuthService
	imageStorage storage.ImageStorage
	uploadFolder string
	decorator    postDecorator
}

func NewUserService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	authService AuthService,
	imageStorage storage.ImageStorage,
	uploadFolder string,
) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		postRepo:     postRepo,
		followRepo:   followRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		authService:  authService,
		imageStorage: imageStorage,
		uploadFolder: uploadFolder,
		decorator:    postDecorator{likeRepo: likeRepo, commentRepo: commentRepo},
	}
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	stats, err := s.stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	latest, err := s.postRepo.FindLatestByUser(ctx, userID, latestPostsLimit)
	if err != nil {
		return nil, err
	}
	latestViews, err := s.decorator.decorateAll(ctx, latest, &userID)
	if err != nil {
		return nil, err
	}

	return &dto.MeResponse{
		User:        user,
		Stats:       stats,
		LatestPosts: latestViews,
	}, nil
}

func (s *userService) stats(ctx context.Context, userID uuid.UUID) (dto.UserStats, error) {
	var stats dto.UserStats
	var err error

	if stats.PostsCount, err = s.postRepo.CountByUser(ctx, userID); err != nil {
		return stats, err
	}
	if stats.FollowersCount, err = s.followRepo.CountFollowers(ctx, userID); err != nil {
		return stats, err
	}
	if stats.FollowingCount, err = s.followRepo.CountFollowing(ctx, userID); err != nil {
		return stats, err
	}
	if stats.LikesCount, err = s.likeRepo.CountByUser(ctx, userID); err != nil {
		return stats, err
	}
	if stats.CommentsCount, err = s.commentRepo.CountByUser(ctx, userID); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	if req.PhoneNumber != nil && *req.PhoneNumber != user.PhoneNumber {
		taken, err := s.userRepo.ExistsByPhone(ctx, *req.PhoneNumber, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.WithDetails(apperror.ErrValidation, "validation failed", map[string]any{
				"phone_number": "phone number is already registered",
			})
		}
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		user.BirthDate = birthDate
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Image != nil {
		user.ImageURL = req.Image
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.ErrConflict, "phone number is already registered")
		}
		return nil, err
	}
	return s.Me(ctx, userID)
}

func (s *userService) UpdatePassword(ctx context.Context, userID uuid.UUID, req *dto.UpdatePasswordRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, apperror.New(apperror.ErrUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Every outstanding session dies with the old password.
	if err := s.tokenRepo.DeleteAllForUser(ctx, userID); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.authService.IssueToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) UpdateImage(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (string, error) {
	if s.imageStorage == nil {
		return "", apperror.New(apperror.ErrInternal, "image storage is not configured")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.New(apperror.ErrNotFound, "user not found")
		}
		return "", err
	}

	url, err := s.imageStorage.UploadImage(ctx, file, s.uploadFolder, fileName)
	if err != nil {
		return "", err
	}

	oldURL := user.ImageURL
	user.ImageURL = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	if oldURL != nil && *oldURL != url {
		if err := s.imageStorage.DeleteImage(ctx, *oldURL); err != nil {
			log.Printf("failed to delete previous profile image for user %s: %v", userID, err)
		}
	}
	return url, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID, req *dto.DeleteAccountRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "user not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return apperror.New(apperror.ErrUnauthorized, "password is incorrect")
	}

	if err := s.tokenRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	// Posts, comments, likes, follows and notifications cascade at the
	// store.
	return s.userRepo.Delete(ctx, userID)
}
