package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

const (
	searchDefaultLimit = 15
	searchMaxLimit     = 50
	quickSearchLimit   = 3
	quickTagModeLimit  = 5
)

// Search type filters. Empty means all categories.
const (
	SearchTypeUsers = "users"
	SearchTypePosts = "posts"
	SearchTypeTags  = "tags"
)

type SearchService interface {
	Search(ctx context.Context, viewerID *uuid.UUID, query, searchType string, limit int) (*dto.SearchResults, error)
	QuickSearch(ctx context.Context, viewerID *uuid.UUID, query string) (*dto.QuickSearchResults, error)
}

type searchService struct {
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
	tagRepo   repository.TagRepository
	decorator postDecorator
}

func NewSearchService(userRepo repository.UserRepository, postRepo repository.PostRepository, tagRepo repository.TagRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository) SearchService {
	return &searchService{
		userRepo:  userRepo,
		postRepo:  postRepo,
		tagRepo:   tagRepo,
		decorator: postDecorator{likeRepo: likeRepo, commentRepo: commentRepo},
	}
}

// normalizeQuery validates length and detects tag mode. A leading #
// scopes the search to tags and tag-linked posts.
func normalizeQuery(query string) (keyword string, tagMode bool, err error) {
	query = strings.TrimSpace(query)
	tagMode = strings.HasPrefix(query, "#")
	keyword = strings.TrimPrefix(query, "#")
	if len(keyword) < 2 {
		return "", false, apperror.New(apperror.ErrValidation, "search query must be at least 2 characters")
	}
	return keyword, tagMode, nil
}

func (s *searchService) Search(ctx context.Context, viewerID *uuid.UUID, query, searchType string, limit int) (*dto.SearchResults, error) {
	keyword, tagMode, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = searchDefaultLimit
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}

	results := &dto.SearchResults{
		Query:       query,
		IsTagSearch: tagMode,
		Users:       []dto.UserPublic{},
		Posts:       []dto.PostView{},
		Tags:        []dto.TagView{},
	}

	wantUsers := !tagMode && (searchType == "" || searchType == SearchTypeUsers)
	wantPosts := searchType == "" || searchType == SearchTypePosts
	wantTags := searchType == "" || searchType == SearchTypeTags

	if wantUsers {
		users, err := s.userRepo.Search(ctx, keyword, limit)
		if err != nil {
			return nil, err
		}
		for i := range users {
			results.Users = append(results.Users, toUserPublic(&users[i]))
		}
	}

	if wantPosts {
		posts, err := s.searchPosts(ctx, keyword, tagMode, limit)
		if err != nil {
			return nil, err
		}
		views, err := s.decorator.decorateAll(ctx, posts, viewerID)
		if err != nil {
			return nil, err
		}
		results.Posts = views
	}

	if wantTags {
		tags, err := s.tagRepo.Search(ctx, keyword, limit)
		if err != nil {
			return nil, err
		}
		for i := range tags {
			results.Tags = append(results.Tags, toTagView(&tags[i]))
		}
	}

	results.Counts = dto.SearchCounts{
		Users: len(results.Users),
		Posts: len(results.Posts),
		Tags:  len(results.Tags),
	}
	results.Counts.Total = results.Counts.Users + results.Counts.Posts + results.Counts.Tags
	return results, nil
}

func (s *searchService) QuickSearch(ctx context.Context, viewerID *uuid.UUID, query string) (*dto.QuickSearchResults, error) {
	keyword, tagMode, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	results := &dto.QuickSearchResults{
		Query:       query,
		IsTagSearch: tagMode,
		Users:       []dto.UserPublic{},
		Posts:       []dto.PostView{},
		Tags:        []dto.TagView{},
	}

	tagLimit := quickSearchLimit
	if tagMode {
		tagLimit = quickTagModeLimit
	} else {
		users, err := s.userRepo.Search(ctx, keyword, quickSearchLimit)
		if err != nil {
			return nil, err
		}
		for i := range users {
			results.Users = append(results.Users, toUserPublic(&users[i]))
		}
	}

	posts, err := s.searchPosts(ctx, keyword, tagMode, quickSearchLimit)
	if err != nil {
		return nil, err
	}
	views, err := s.decorator.decorateAll(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}
	results.Posts = views

	tags, err := s.tagRepo.Search(ctx, keyword, tagLimit)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		results.Tags = append(results.Tags, toTagView(&tags[i]))
	}
	return results, nil
}

// searchPosts picks the post query per mode: text match over
// title/caption normally, posts linked to matching tags in tag mode.
func (s *searchService) searchPosts(ctx context.Context, keyword string, tagMode bool, limit int) ([]entity.Post, error) {
	if tagMode {
		return s.tagRepo.SearchPostsByTagName(ctx, keyword, limit)
	}
	return s.postRepo.Search(ctx, keyword, limit)
}
