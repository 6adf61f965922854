package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/cache"
	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
	"github.com/pckhai-work/blog-system-mern-stack/internal/textutil"
)

const (
	// MinBodyLength is the minimum character count for a post body.
	MinBodyLength = 200
	// MaxBlogPhotoBytes caps uploaded post images, on create and update alike.
	MaxBlogPhotoBytes = 10 << 20

	excerptLength       = 320
	metaDescLength      = 160
	defaultPageSize     = 10
	defaultRelatedLimit = 4
	blogCacheTTL        = 5 * time.Minute
)

// CreateBlogInput carries the user-mutable fields for a new post. Slug,
// excerpt and the meta fields are always derived server-side.
type CreateBlogInput struct {
	Title       string
	Body        string
	CategoryIDs []uint
	TagIDs      []uint
	Photo       []byte
	PhotoType   string
}

// UpdateBlogInput enumerates exactly which fields an edit may touch. Zero
// values leave the stored field alone; nil id slices keep the current sets.
type UpdateBlogInput struct {
	Title       string
	Body        string
	CategoryIDs []uint
	TagIDs      []uint
	Photo       []byte
	PhotoType   string
}

// BlogFeed is the combined payload of the paginated feed endpoint.
type BlogFeed struct {
	Blogs      []model.Blog     `json:"blogs"`
	Categories []model.Category `json:"categories"`
	Tags       []model.Tag      `json:"tags"`
	Size       int              `json:"size"`
}

// BlogService handles post CRUD and the read-side queries around it.
type BlogService interface {
	Create(ctx context.Context, author *model.User, in CreateBlogInput) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	ListWithTaxonomy(ctx context.Context, limit, skip int) (*BlogFeed, error)
	Read(ctx context.Context, slug string) (*model.Blog, error)
	Update(ctx context.Context, slug string, in UpdateBlogInput) (*model.Blog, error)
	Delete(ctx context.Context, slug string) error
	Photo(ctx context.Context, slug string) (data []byte, contentType string, err error)
	Related(ctx context.Context, blogID uint, categoryIDs []uint, limit int) ([]model.Blog, error)
	Search(ctx context.Context, query string) ([]model.Blog, error)
	ListByAuthor(ctx context.Context, username string) ([]model.Blog, error)
}

type blogService struct {
	blogs      repository.BlogRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	users      repository.UserRepository
	cache      *cache.Client
	appName    string
}

// NewBlogService creates a new blog service.
func NewBlogService(
	blogs repository.BlogRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
	cache *cache.Client,
	appName string,
) BlogService {
	return &blogService{
		blogs:      blogs,
		categories: categories,
		tags:       tags,
		users:      users,
		cache:      cache,
		appName:    appName,
	}
}

func blogCacheKey(s string) string {
	return "blog:" + s
}

// Create derives slug, excerpt and meta fields from the submitted title and
// body, resolves the taxonomy references, and persists the post.
func (s *blogService) Create(ctx context.Context, author *model.User, in CreateBlogInput) (*model.Blog, error) {
	if len(in.Body) < MinBodyLength {
		return nil, errors.ErrContentTooShort
	}
	if len(in.Photo) > MaxBlogPhotoBytes {
		return nil, errors.ErrPhotoTooLarge
	}

	categories, err := s.categories.FindByIDs(ctx, in.CategoryIDs)
	if err != nil || len(categories) == 0 {
		return nil, errors.ErrCategoryNotFound
	}
	tags, err := s.tags.FindByIDs(ctx, in.TagIDs)
	if err != nil || len(tags) == 0 {
		return nil, errors.ErrTagNotFound
	}

	blog := &model.Blog{
		Title:      in.Title,
		Slug:       slug.Make(in.Title),
		Body:       in.Body,
		Excerpt:    textutil.SmartTrim(in.Body, excerptLength, " ", "..."),
		MetaTitle:  fmt.Sprintf("%s | %s", in.Title, s.appName),
		MetaDesc:   textutil.StripHTML(textutil.Truncate(in.Body, metaDescLength)),
		Photo:      in.Photo,
		PhotoType:  in.PhotoType,
		PostedByID: author.ID,
		Categories: categories,
		Tags:       tags,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrSlugTaken
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	// The response never carries the blob.
	blog.Photo = nil
	return blog, nil
}

func (s *blogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

// ListWithTaxonomy returns a page of posts newest-first alongside the full
// category and tag lists.
func (s *blogService) ListWithTaxonomy(ctx context.Context, limit, skip int) (*BlogFeed, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if skip < 0 {
		skip = 0
	}

	blogs, err := s.blogs.ListPage(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return &BlogFeed{
		Blogs:      blogs,
		Categories: categories,
		Tags:       tags,
		Size:       len(blogs),
	}, nil
}

// Read returns the populated post for a slug, photo stripped. Reads are
// cached briefly; writes to the same slug invalidate the entry.
func (s *blogService) Read(ctx context.Context, rawSlug string) (*model.Blog, error) {
	key := blogCacheKey(strings.ToLower(rawSlug))

	var cached model.Blog
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	blog, err := s.blogs.FindBySlugPopulated(ctx, strings.ToLower(rawSlug))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("read blog: %w", err)
	}

	blog.Photo = nil
	s.cache.SetJSON(ctx, key, blog, blogCacheTTL)
	return blog, nil
}

// Update merges the explicit input over the stored post. The slug keeps its
// original value no matter what the title becomes; a body change recomputes
// the derived excerpt and meta description.
func (s *blogService) Update(ctx context.Context, rawSlug string, in UpdateBlogInput) (*model.Blog, error) {
	slugKey := strings.ToLower(rawSlug)
	blog, err := s.blogs.FindBySlug(ctx, slugKey)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("load blog: %w", err)
	}

	// Every input, taxonomy references included, is validated before the
	// first write. A rejected edit must leave the stored post untouched.
	var categories []model.Category
	if in.CategoryIDs != nil {
		categories, err = s.categories.FindByIDs(ctx, in.CategoryIDs)
		if err != nil || len(categories) == 0 {
			return nil, errors.ErrCategoryNotFound
		}
	}
	var tags []model.Tag
	if in.TagIDs != nil {
		tags, err = s.tags.FindByIDs(ctx, in.TagIDs)
		if err != nil || len(tags) == 0 {
			return nil, errors.ErrTagNotFound
		}
	}

	if in.Title != "" {
		blog.Title = in.Title
		blog.MetaTitle = fmt.Sprintf("%s | %s", in.Title, s.appName)
	}
	if in.Body != "" {
		if len(in.Body) < MinBodyLength {
			return nil, errors.ErrContentTooShort
		}
		blog.Body = in.Body
		blog.Excerpt = textutil.SmartTrim(in.Body, excerptLength, " ", "...")
		blog.MetaDesc = textutil.StripHTML(textutil.Truncate(in.Body, metaDescLength))
	}
	if in.Photo != nil {
		if len(in.Photo) > MaxBlogPhotoBytes {
			return nil, errors.ErrPhotoTooLarge
		}
		blog.Photo = in.Photo
		blog.PhotoType = in.PhotoType
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	// The row has changed; no exit past this point may leave the cached copy
	// behind, including the association-replace failure paths.
	defer func() {
		_ = s.cache.Delete(ctx, blogCacheKey(slugKey))
	}()

	if in.CategoryIDs != nil {
		if err := s.blogs.ReplaceCategories(ctx, blog, categories); err != nil {
			return nil, fmt.Errorf("replace categories: %w", err)
		}
	}
	if in.TagIDs != nil {
		if err := s.blogs.ReplaceTags(ctx, blog, tags); err != nil {
			return nil, fmt.Errorf("replace tags: %w", err)
		}
	}

	updated, err := s.blogs.FindBySlugPopulated(ctx, slugKey)
	if err != nil {
		return nil, fmt.Errorf("reload blog: %w", err)
	}
	updated.Photo = nil
	return updated, nil
}

func (s *blogService) Delete(ctx context.Context, rawSlug string) error {
	slugKey := strings.ToLower(rawSlug)
	if err := s.blogs.DeleteBySlug(ctx, slugKey); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBlogNotFound
		}
		return fmt.Errorf("delete blog: %w", err)
	}
	_ = s.cache.Delete(ctx, blogCacheKey(slugKey))
	return nil
}

// Photo returns the stored image bytes and content type for a post.
func (s *blogService) Photo(ctx context.Context, rawSlug string) ([]byte, string, error) {
	blog, err := s.blogs.FindBySlug(ctx, strings.ToLower(rawSlug))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrBlogNotFound
		}
		return nil, "", fmt.Errorf("load blog: %w", err)
	}
	if !blog.HasPhoto() {
		return nil, "", errors.ErrPhotoNotFound
	}
	return blog.Photo, blog.PhotoType, nil
}

// Related finds other posts sharing at least one category with the given one.
func (s *blogService) Related(ctx context.Context, blogID uint, categoryIDs []uint, limit int) ([]model.Blog, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	if len(categoryIDs) == 0 {
		return []model.Blog{}, nil
	}
	blogs, err := s.blogs.ListRelated(ctx, blogID, categoryIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list related: %w", err)
	}
	return blogs, nil
}

// Search matches the query case-insensitively against titles and bodies.
func (s *blogService) Search(ctx context.Context, query string) ([]model.Blog, error) {
	if strings.TrimSpace(query) == "" {
		return []model.Blog{}, nil
	}
	blogs, err := s.blogs.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}
	return blogs, nil
}

// ListByAuthor resolves the username and lists that author's posts.
func (s *blogService) ListByAuthor(ctx context.Context, username string) ([]model.Blog, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	blogs, err := s.blogs.ListByUser(ctx, user.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}
