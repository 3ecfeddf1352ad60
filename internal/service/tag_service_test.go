package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/pkg/apperror"
)

func TestExtractHashtags(t *testing.T) {
	t.Run("dedupes case-insensitively", func(t *testing.T) {
		names := ExtractHashtags("hello #Foo #foo #BAR")
		assert.Equal(t, []string{"foo", "bar"}, names)
	})

	t.Run("no hashtags", func(t *testing.T) {
		assert.Empty(t, ExtractHashtags("no tags here"))
	})

	t.Run("truncates long names", func(t *testing.T) {
		long := strings.Repeat("a", 80)
		names := ExtractHashtags("#" + long)
		assert.Len(t, names, 1)
		assert.Len(t, names[0], entity.MaxTagNameLen)
	})

	t.Run("underscores and digits are part of the name", func(t *testing.T) {
		names := ExtractHashtags("post about #go_1_21 and #web3")
		assert.Equal(t, []string{"go_1_21", "web3"}, names)
	})
}

func TestTagService_ExtractAndAttach(t *testing.T) {
	tagRepo := new(MockTagRepository)
	postRepo := new(MockPostRepository)
	svc := NewTagService(tagRepo, postRepo, new(MockLikeRepository), new(MockCommentRepository))

	postID := uuid.New()
	fooTag := &entity.Tag{ID: uuid.New(), TagName: "foo"}
	barTag := &entity.Tag{ID: uuid.New(), TagName: "bar"}

	tagRepo.On("GetOrCreate", ctx(), "foo").Return(fooTag, nil)
	tagRepo.On("GetOrCreate", ctx(), "bar").Return(barTag, nil)
	// foo is already linked, bar is not.
	tagRepo.On("LinkExists", ctx(), postID, fooTag.ID).Return(true, nil)
	tagRepo.On("LinkExists", ctx(), postID, barTag.ID).Return(false, nil)
	tagRepo.On("Attach", ctx(), postID, barTag.ID).Return(nil)

	err := svc.ExtractAndAttach(context.Background(), postID, "hello #Foo #foo #BAR")
	assert.NoError(t, err)

	tagRepo.AssertExpectations(t)
	tagRepo.AssertNumberOfCalls(t, "Attach", 1)
}

func TestTagService_Attach_Conflict(t *testing.T) {
	tagRepo := new(MockTagRepository)
	postRepo := new(MockPostRepository)
	svc := NewTagService(tagRepo, postRepo, new(MockLikeRepository), new(MockCommentRepository))

	postID := uuid.New()
	ownerID := uuid.New()
	tag := &entity.Tag{ID: uuid.New(), TagName: "golang"}

	postRepo.On("FindByIDForOwner", ctx(), postID, ownerID).Return(&entity.Post{ID: postID, UserID: ownerID}, nil)
	tagRepo.On("FindByID", ctx(), tag.ID).Return(tag, nil)
	tagRepo.On("LinkExists", ctx(), postID, tag.ID).Return(true, nil)

	err := svc.Attach(context.Background(), postID, ownerID, tag.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestTagService_List_Paginates(t *testing.T) {
	tagRepo := new(MockTagRepository)
	postRepo := new(MockPostRepository)
	svc := NewTagService(tagRepo, postRepo, new(MockLikeRepository), new(MockCommentRepository))

	rows := []repository.TagWithCount{
		{Tag: entity.Tag{ID: uuid.New(), TagName: "golang"}, PostsCount: 7},
		{Tag: entity.Tag{ID: uuid.New(), TagName: "webdev"}, PostsCount: 3},
	}
	tagRepo.On("ListWithCounts", ctx(), 10, 10).Return(rows, int64(12), nil)

	resp, err := svc.List(context.Background(), 2, 10)
	assert.NoError(t, err)
	assert.Len(t, resp.Tags, 2)
	assert.Equal(t, "golang", resp.Tags[0].TagName)
	assert.Equal(t, int64(7), *resp.Tags[0].PostsCount)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
	assert.Equal(t, int64(12), resp.Meta.TotalItems)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestTagService_Sync_ReportsDiff(t *testing.T) {
	tagRepo := new(MockTagRepository)
	postRepo := new(MockPostRepository)
	svc := NewTagService(tagRepo, postRepo, new(MockLikeRepository), new(MockCommentRepository))

	postID := uuid.New()
	ownerID := uuid.New()
	keepTag := &entity.Tag{ID: uuid.New(), TagName: "keep"}
	addTag := &entity.Tag{ID: uuid.New(), TagName: "add"}
	dropTag := &entity.Tag{ID: uuid.New(), TagName: "drop"}

	postRepo.On("FindByIDForOwner", ctx(), postID, ownerID).Return(&entity.Post{ID: postID, UserID: ownerID}, nil)
	tagRepo.On("FindByID", ctx(), keepTag.ID).Return(keepTag, nil)
	tagRepo.On("FindByID", ctx(), addTag.ID).Return(addTag, nil)
	tagRepo.On("FindByID", ctx(), dropTag.ID).Return(dropTag, nil)
	tagRepo.On("LinkedTagIDs", ctx(), postID).Return([]uuid.UUID{keepTag.ID, dropTag.ID}, nil)
	tagRepo.On("Attach", ctx(), postID, addTag.ID).Return(nil)
	tagRepo.On("Detach", ctx(), postID, dropTag.ID).Return(nil)

	resp, err := svc.Sync(context.Background(), postID, ownerID, []uuid.UUID{keepTag.ID, addTag.ID})
	assert.NoError(t, err)
	assert.Len(t, resp.AddedTags, 1)
	assert.Equal(t, "add", resp.AddedTags[0].TagName)
	assert.Len(t, resp.RemovedTags, 1)
	assert.Equal(t, "drop", resp.RemovedTags[0].TagName)
	assert.Equal(t, 2, resp.TotalTags)
	tagRepo.AssertExpectations(t)
}
