package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
)

// MockBlogRepository is a mock implementation of BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *model.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) ReplaceCategories(ctx context.Context, blog *model.Blog, categories []model.Category) error {
	args := m.Called(ctx, blog, categories)
	return args.Error(0)
}

func (m *MockBlogRepository) ReplaceTags(ctx context.Context, blog *model.Blog, tags []model.Tag) error {
	args := m.Called(ctx, blog, tags)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockBlogRepository) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogRepository) FindBySlugPopulated(ctx context.Context, slug string) (*model.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListPage(ctx context.Context, limit, skip int) ([]model.Blog, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.Blog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListRelated(ctx context.Context, excludeID uint, categoryIDs []uint, limit int) ([]model.Blog, error) {
	args := m.Called(ctx, excludeID, categoryIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Blog, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) ListByTag(ctx context.Context, tagID uint) ([]model.Blog, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogRepository) Search(ctx context.Context, query string) ([]model.Blog, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func newBlogService(blogs *MockBlogRepository, categories *MockCategoryRepository, tags *MockTagRepository, users *MockUserRepository) BlogService {
	return NewBlogService(blogs, categories, tags, users, nil, "SEOBLOG")
}

func validBody() string {
	return strings.Repeat("<p>some long blog content</p> ", 20)
}

func TestBlogService_Create(t *testing.T) {
	author := &model.User{ID: 3, Username: "author"}

	t.Run("derives slug, excerpt and meta fields", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		categories := new(MockCategoryRepository)
		tags := new(MockTagRepository)

		categories.On("FindByIDs", mock.Anything, []uint{1}).Return([]model.Category{{ID: 1, Name: "Go"}}, nil)
		tags.On("FindByIDs", mock.Anything, []uint{2}).Return([]model.Tag{{ID: 2, Name: "web"}}, nil)
		blogs.On("Create", mock.Anything, mock.AnythingOfType("*model.Blog")).Return(nil)

		service := newBlogService(blogs, categories, tags, new(MockUserRepository))
		blog, err := service.Create(context.Background(), author, CreateBlogInput{
			Title:       "How To Build A Blog",
			Body:        validBody(),
			CategoryIDs: []uint{1},
			TagIDs:      []uint{2},
		})

		assert.NoError(t, err)
		assert.Equal(t, "how-to-build-a-blog", blog.Slug)
		assert.Equal(t, "How To Build A Blog | SEOBLOG", blog.MetaTitle)
		assert.LessOrEqual(t, len(blog.Excerpt), excerptLength+len("..."))
		assert.True(t, strings.HasSuffix(blog.Excerpt, "..."))
		assert.NotContains(t, blog.MetaDesc, "<p>")
		assert.Equal(t, author.ID, blog.PostedByID)
		assert.Nil(t, blog.Photo)
		blogs.AssertExpectations(t)
	})

	t.Run("body below the minimum", func(t *testing.T) {
		service := newBlogService(new(MockBlogRepository), new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		blog, err := service.Create(context.Background(), author, CreateBlogInput{
			Title:       "Short",
			Body:        "too short",
			CategoryIDs: []uint{1},
			TagIDs:      []uint{2},
		})

		assert.ErrorIs(t, err, errors.ErrContentTooShort)
		assert.Nil(t, blog)
	})

	t.Run("photo over the limit", func(t *testing.T) {
		service := newBlogService(new(MockBlogRepository), new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		blog, err := service.Create(context.Background(), author, CreateBlogInput{
			Title:       "Big Photo",
			Body:        validBody(),
			CategoryIDs: []uint{1},
			TagIDs:      []uint{2},
			Photo:       make([]byte, MaxBlogPhotoBytes+1),
		})

		assert.ErrorIs(t, err, errors.ErrPhotoTooLarge)
		assert.Nil(t, blog)
	})

	t.Run("unknown category ids", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		categories := new(MockCategoryRepository)
		categories.On("FindByIDs", mock.Anything, []uint{99}).Return([]model.Category{}, nil)

		service := newBlogService(blogs, categories, new(MockTagRepository), new(MockUserRepository))
		blog, err := service.Create(context.Background(), author, CreateBlogInput{
			Title:       "Orphan",
			Body:        validBody(),
			CategoryIDs: []uint{99},
			TagIDs:      []uint{2},
		})

		assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
		assert.Nil(t, blog)
	})

	t.Run("duplicate title collides on slug", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		categories := new(MockCategoryRepository)
		tags := new(MockTagRepository)

		categories.On("FindByIDs", mock.Anything, []uint{1}).Return([]model.Category{{ID: 1}}, nil)
		tags.On("FindByIDs", mock.Anything, []uint{2}).Return([]model.Tag{{ID: 2}}, nil)
		blogs.On("Create", mock.Anything, mock.AnythingOfType("*model.Blog")).Return(gorm.ErrDuplicatedKey)

		service := newBlogService(blogs, categories, tags, new(MockUserRepository))
		blog, err := service.Create(context.Background(), author, CreateBlogInput{
			Title:       "Taken Title",
			Body:        validBody(),
			CategoryIDs: []uint{1},
			TagIDs:      []uint{2},
		})

		assert.ErrorIs(t, err, errors.ErrSlugTaken)
		assert.Nil(t, blog)
	})
}

func TestBlogService_Read(t *testing.T) {
	t.Run("returns the populated post, slug lowercased", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlugPopulated", mock.Anything, "my-post").Return(&model.Blog{
			ID:    5,
			Slug:  "my-post",
			Photo: []byte{1, 2, 3},
		}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		blog, err := service.Read(context.Background(), "My-Post")

		assert.NoError(t, err)
		assert.Equal(t, uint(5), blog.ID)
		assert.Nil(t, blog.Photo)
		blogs.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlugPopulated", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		blog, err := service.Read(context.Background(), "missing")

		assert.ErrorIs(t, err, errors.ErrBlogNotFound)
		assert.Nil(t, blog)
	})
}

func TestBlogService_Update(t *testing.T) {
	stored := func() *model.Blog {
		return &model.Blog{
			ID:        5,
			Title:     "Original Title",
			Slug:      "original-title",
			Body:      validBody(),
			MetaTitle: "Original Title | SEOBLOG",
		}
	}

	t.Run("slug survives a title change", func(t *testing.T) {
		blog := stored()
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)
		blogs.On("Update", mock.Anything, blog).Return(nil)
		blogs.On("FindBySlugPopulated", mock.Anything, "original-title").Return(blog, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		updated, err := service.Update(context.Background(), "original-title", UpdateBlogInput{
			Title: "Completely New Title",
		})

		assert.NoError(t, err)
		assert.Equal(t, "original-title", updated.Slug)
		assert.Equal(t, "Completely New Title", updated.Title)
		assert.Equal(t, "Completely New Title | SEOBLOG", updated.MetaTitle)
		blogs.AssertExpectations(t)
	})

	t.Run("body change recomputes excerpt and meta description", func(t *testing.T) {
		blog := stored()
		newBody := strings.Repeat("<p>rewritten body content here</p> ", 20)
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)
		blogs.On("Update", mock.Anything, blog).Return(nil)
		blogs.On("FindBySlugPopulated", mock.Anything, "original-title").Return(blog, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		updated, err := service.Update(context.Background(), "original-title", UpdateBlogInput{
			Body: newBody,
		})

		assert.NoError(t, err)
		assert.Contains(t, updated.Excerpt, "rewritten")
		assert.NotContains(t, updated.MetaDesc, "<p>")
		blogs.AssertExpectations(t)
	})

	t.Run("short replacement body is rejected", func(t *testing.T) {
		blog := stored()
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		updated, err := service.Update(context.Background(), "original-title", UpdateBlogInput{
			Body: "tiny",
		})

		assert.ErrorIs(t, err, errors.ErrContentTooShort)
		assert.Nil(t, updated)
	})

	t.Run("nil id slices keep the current taxonomy", func(t *testing.T) {
		blog := stored()
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)
		blogs.On("Update", mock.Anything, blog).Return(nil)
		blogs.On("FindBySlugPopulated", mock.Anything, "original-title").Return(blog, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		_, err := service.Update(context.Background(), "original-title", UpdateBlogInput{Title: "Another"})

		assert.NoError(t, err)
		// No ReplaceCategories or ReplaceTags expectations were registered.
		blogs.AssertExpectations(t)
	})

	t.Run("explicit category ids replace the set", func(t *testing.T) {
		blog := stored()
		newCategories := []model.Category{{ID: 9, Name: "Rust"}}
		blogs := new(MockBlogRepository)
		categories := new(MockCategoryRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)
		blogs.On("Update", mock.Anything, blog).Return(nil)
		categories.On("FindByIDs", mock.Anything, []uint{9}).Return(newCategories, nil)
		blogs.On("ReplaceCategories", mock.Anything, blog, newCategories).Return(nil)
		blogs.On("FindBySlugPopulated", mock.Anything, "original-title").Return(blog, nil)

		service := newBlogService(blogs, categories, new(MockTagRepository), new(MockUserRepository))
		_, err := service.Update(context.Background(), "original-title", UpdateBlogInput{CategoryIDs: []uint{9}})

		assert.NoError(t, err)
		blogs.AssertExpectations(t)
		categories.AssertExpectations(t)
	})

	t.Run("unknown category ids leave the post untouched", func(t *testing.T) {
		blog := stored()
		blogs := new(MockBlogRepository)
		categories := new(MockCategoryRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)
		categories.On("FindByIDs", mock.Anything, []uint{99}).Return([]model.Category{}, nil)

		service := newBlogService(blogs, categories, new(MockTagRepository), new(MockUserRepository))
		updated, err := service.Update(context.Background(), "original-title", UpdateBlogInput{
			Title:       "New Title",
			CategoryIDs: []uint{99},
		})

		assert.ErrorIs(t, err, errors.ErrCategoryNotFound)
		assert.Nil(t, updated)
		blogs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Equal(t, "Original Title", blog.Title)
	})

	t.Run("unknown tag ids leave the post untouched", func(t *testing.T) {
		blog := stored()
		blogs := new(MockBlogRepository)
		tags := new(MockTagRepository)
		blogs.On("FindBySlug", mock.Anything, "original-title").Return(blog, nil)
		tags.On("FindByIDs", mock.Anything, []uint{99}).Return([]model.Tag{}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), tags, new(MockUserRepository))
		updated, err := service.Update(context.Background(), "original-title", UpdateBlogInput{
			Body:   strings.Repeat("replacement body text here ", 10),
			TagIDs: []uint{99},
		})

		assert.ErrorIs(t, err, errors.ErrTagNotFound)
		assert.Nil(t, updated)
		blogs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown slug", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		updated, err := service.Update(context.Background(), "missing", UpdateBlogInput{Title: "X"})

		assert.ErrorIs(t, err, errors.ErrBlogNotFound)
		assert.Nil(t, updated)
	})
}

func TestBlogService_Delete(t *testing.T) {
	t.Run("deletes by lowercased slug", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("DeleteBySlug", mock.Anything, "my-post").Return(nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		assert.NoError(t, service.Delete(context.Background(), "My-Post"))
		blogs.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("DeleteBySlug", mock.Anything, "missing").Return(gorm.ErrRecordNotFound)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		assert.ErrorIs(t, service.Delete(context.Background(), "missing"), errors.ErrBlogNotFound)
	})
}

func TestBlogService_Photo(t *testing.T) {
	t.Run("returns bytes and content type", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "my-post").Return(&model.Blog{
			Photo:     []byte{0xFF, 0xD8},
			PhotoType: "image/jpeg",
		}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		data, contentType, err := service.Photo(context.Background(), "my-post")

		assert.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xD8}, data)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("post without a photo", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("FindBySlug", mock.Anything, "my-post").Return(&model.Blog{}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		_, _, err := service.Photo(context.Background(), "my-post")

		assert.ErrorIs(t, err, errors.ErrPhotoNotFound)
	})
}

func TestBlogService_ListWithTaxonomy(t *testing.T) {
	blogs := new(MockBlogRepository)
	categories := new(MockCategoryRepository)
	tags := new(MockTagRepository)

	page := []model.Blog{{ID: 1}, {ID: 2}}
	blogs.On("ListPage", mock.Anything, defaultPageSize, 0).Return(page, nil)
	categories.On("List", mock.Anything).Return([]model.Category{{ID: 1}}, nil)
	tags.On("List", mock.Anything).Return([]model.Tag{{ID: 2}}, nil)

	service := newBlogService(blogs, categories, tags, new(MockUserRepository))
	feed, err := service.ListWithTaxonomy(context.Background(), 0, -5)

	assert.NoError(t, err)
	assert.Equal(t, 2, feed.Size)
	assert.Len(t, feed.Blogs, 2)
	assert.Len(t, feed.Categories, 1)
	assert.Len(t, feed.Tags, 1)
	blogs.AssertExpectations(t)
}

func TestBlogService_Related(t *testing.T) {
	t.Run("defaults the limit", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("ListRelated", mock.Anything, uint(5), []uint{1, 2}, defaultRelatedLimit).Return([]model.Blog{{ID: 9}}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		related, err := service.Related(context.Background(), 5, []uint{1, 2}, 0)

		assert.NoError(t, err)
		assert.Len(t, related, 1)
		blogs.AssertExpectations(t)
	})

	t.Run("no categories means no related posts", func(t *testing.T) {
		service := newBlogService(new(MockBlogRepository), new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		related, err := service.Related(context.Background(), 5, nil, 3)

		assert.NoError(t, err)
		assert.Empty(t, related)
	})
}

func TestBlogService_Search(t *testing.T) {
	t.Run("blank query short-circuits", func(t *testing.T) {
		service := newBlogService(new(MockBlogRepository), new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		results, err := service.Search(context.Background(), "   ")

		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("delegates to the repository", func(t *testing.T) {
		blogs := new(MockBlogRepository)
		blogs.On("Search", mock.Anything, "golang").Return([]model.Blog{{ID: 1}}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), new(MockUserRepository))
		results, err := service.Search(context.Background(), "golang")

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		blogs.AssertExpectations(t)
	})
}

func TestBlogService_ListByAuthor(t *testing.T) {
	t.Run("resolves the username first", func(t *testing.T) {
		users := new(MockUserRepository)
		blogs := new(MockBlogRepository)
		users.On("FindByUsername", mock.Anything, "author").Return(&model.User{ID: 3}, nil)
		blogs.On("ListByUser", mock.Anything, uint(3), 0).Return([]model.Blog{{ID: 1}}, nil)

		service := newBlogService(blogs, new(MockCategoryRepository), new(MockTagRepository), users)
		results, err := service.ListByAuthor(context.Background(), "author")

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		users.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		service := newBlogService(new(MockBlogRepository), new(MockCategoryRepository), new(MockTagRepository), users)
		results, err := service.ListByAuthor(context.Background(), "ghost")

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		assert.Nil(t, results)
	})
}
