package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

func newSearchServiceForTest(userRepo *MockUserRepository, postRepo *MockPostRepository, tagRepo *MockTagRepository) SearchService {
	return NewSearchService(userRepo, postRepo, tagRepo, new(MockLikeRepository), new(MockCommentRepository))
}

func TestSearchService_QueryTooShort(t *testing.T) {
	svc := newSearchServiceForTest(new(MockUserRepository), new(MockPostRepository), new(MockTagRepository))

	_, err := svc.Search(context.Background(), nil, "a", "", 0)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// The # prefix does not count toward the minimum length.
	_, err = svc.Search(context.Background(), nil, "#a", "", 0)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSearchService_TagModeExcludesUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	tagRepo := new(MockTagRepository)
	svc := newSearchServiceForTest(userRepo, postRepo, tagRepo)

	tagRepo.On("SearchPostsByTagName", ctx(), "golang", searchDefaultLimit).Return([]entity.Post{}, nil)
	tagRepo.On("Search", ctx(), "golang", searchDefaultLimit).Return([]entity.Tag{
		{TagName: "golang"},
	}, nil)

	results, err := svc.Search(context.Background(), nil, "#golang", "", 0)
	assert.NoError(t, err)
	assert.True(t, results.IsTagSearch)
	assert.Empty(t, results.Users)
	assert.Len(t, results.Tags, 1)
	userRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchService_LimitClamped(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	tagRepo := new(MockTagRepository)
	svc := newSearchServiceForTest(userRepo, postRepo, tagRepo)

	userRepo.On("Search", ctx(), "hello", searchMaxLimit).Return([]entity.User{}, nil)
	postRepo.On("Search", ctx(), "hello", searchMaxLimit).Return([]entity.Post{}, nil)
	tagRepo.On("Search", ctx(), "hello", searchMaxLimit).Return([]entity.Tag{}, nil)

	_, err := svc.Search(context.Background(), nil, "hello", "", 500)
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestSearchService_TypeFilter(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	tagRepo := new(MockTagRepository)
	svc := newSearchServiceForTest(userRepo, postRepo, tagRepo)

	userRepo.On("Search", ctx(), "lina", searchDefaultLimit).Return([]entity.User{
		{FullName: "Lina"},
	}, nil)

	results, err := svc.Search(context.Background(), nil, "lina", SearchTypeUsers, 0)
	assert.NoError(t, err)
	assert.Len(t, results.Users, 1)
	assert.Equal(t, 1, results.Counts.Total)
	postRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	tagRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchService_QuickSearch_TagModeUsesFiveTags(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	tagRepo := new(MockTagRepository)
	svc := newSearchServiceForTest(userRepo, postRepo, tagRepo)

	tagRepo.On("SearchPostsByTagName", ctx(), "go", quickSearchLimit).Return([]entity.Post{}, nil)
	tagRepo.On("Search", ctx(), "go", quickTagModeLimit).Return([]entity.Tag{}, nil)

	results, err := svc.QuickSearch(context.Background(), nil, "#go")
	assert.NoError(t, err)
	assert.True(t, results.IsTagSearch)
	tagRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}
