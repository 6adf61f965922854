package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedSlug  string
		repoError     error
		expectedError error
	}{
		{
			name:         "slug derived from the name",
			input:        "Web Development",
			expectedSlug: "web-development",
		},
		{
			name:          "duplicate name",
			input:         "Go",
			repoError:     gorm.ErrDuplicatedKey,
			expectedError: errors.ErrNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryRepository)
			categories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(tt.repoError)

			service := NewCategoryService(categories, new(MockBlogRepository))
			category, err := service.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, category.Name)
				assert.Equal(t, tt.expectedSlug, category.Slug)
			}

			categories.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Read(t *testing.T) {
	t.Run("returns the category with its posts", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		blogs := new(MockBlogRepository)
		categories.On("FindBySlug", mock.Anything, "go").Return(&model.Category{ID: 1, Name: "Go", Slug: "go"}, nil)
		blogs.On("ListByCategory", mock.Anything, uint(1)).Return([]model.Blog{{ID: 4}}, nil)

		service := NewCategoryService(categories, blogs)
		result, err := service.Read(context.Background(), "Go")

		assert.NoError(t, err)
		assert.Equal(t, "Go", result.Category.Name)
		assert.Len(t, result.Blogs, 1)
		categories.AssertExpectations(t)
		blogs.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindBySlug", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		service := NewCategoryService(categories, new(MockBlogRepository))
		result, err := service.Read(context.Background(), "missing")

		assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
		assert.Nil(t, result)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("removes the category, not the posts", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		blogs := new(MockBlogRepository)
		categories.On("DeleteBySlug", mock.Anything, "go").Return(nil)

		service := NewCategoryService(categories, blogs)
		assert.NoError(t, service.Delete(context.Background(), "Go"))

		// Nothing was expected of the blog repository.
		categories.AssertExpectations(t)
		blogs.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("DeleteBySlug", mock.Anything, "missing").Return(gorm.ErrRecordNotFound)

		service := NewCategoryService(categories, new(MockBlogRepository))
		assert.ErrorIs(t, service.Delete(context.Background(), "missing"), errors.ErrCategoryNotFound)
	})
}

func TestTagService_Create(t *testing.T) {
	t.Run("slug derived from the name", func(t *testing.T) {
		tags := new(MockTagRepository)
		tags.On("Create", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(nil)

		service := NewTagService(tags, new(MockBlogRepository))
		tag, err := service.Create(context.Background(), "Unit Testing")

		assert.NoError(t, err)
		assert.Equal(t, "unit-testing", tag.Slug)
		tags.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		tags := new(MockTagRepository)
		tags.On("Create", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(gorm.ErrDuplicatedKey)

		service := NewTagService(tags, new(MockBlogRepository))
		tag, err := service.Create(context.Background(), "go")

		assert.ErrorIs(t, err, errors.ErrNameTaken)
		assert.Nil(t, tag)
	})
}

func TestTagService_Read(t *testing.T) {
	t.Run("returns the tag with its posts", func(t *testing.T) {
		tags := new(MockTagRepository)
		blogs := new(MockBlogRepository)
		tags.On("FindBySlug", mock.Anything, "web").Return(&model.Tag{ID: 2, Name: "web", Slug: "web"}, nil)
		blogs.On("ListByTag", mock.Anything, uint(2)).Return([]model.Blog{{ID: 4}, {ID: 5}}, nil)

		service := NewTagService(tags, blogs)
		result, err := service.Read(context.Background(), "web")

		assert.NoError(t, err)
		assert.Equal(t, "web", result.Tag.Name)
		assert.Len(t, result.Blogs, 2)
	})

	t.Run("unknown slug", func(t *testing.T) {
		tags := new(MockTagRepository)
		tags.On("FindBySlug", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		service := NewTagService(tags, new(MockBlogRepository))
		result, err := service.Read(context.Background(), "missing")

		assert.ErrorIs(t, err, errors.ErrTagNotFound)
		assert.Nil(t, result)
	})
}

func TestTagService_Delete(t *testing.T) {
	t.Run("removes the tag", func(t *testing.T) {
		tags := new(MockTagRepository)
		tags.On("DeleteBySlug", mock.Anything, "web").Return(nil)

		service := NewTagService(tags, new(MockBlogRepository))
		assert.NoError(t, service.Delete(context.Background(), "Web"))
		tags.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		tags := new(MockTagRepository)
		tags.On("DeleteBySlug", mock.Anything, "missing").Return(gorm.ErrRecordNotFound)

		service := NewTagService(tags, new(MockBlogRepository))
		assert.ErrorIs(t, service.Delete(context.Background(), "missing"), errors.ErrTagNotFound)
	})
}
