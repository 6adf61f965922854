package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
)

// CategoryWithBlogs is the read-by-slug payload for a category.
type CategoryWithBlogs struct {
	Category *model.Category `json:"category"`
	Blogs    []model.Blog    `json:"blogs"`
}

// TagWithBlogs is the read-by-slug payload for a tag.
type TagWithBlogs struct {
	Tag   *model.Tag   `json:"tag"`
	Blogs []model.Blog `json:"blogs"`
}

// CategoryService handles category CRUD.
type CategoryService interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Read(ctx context.Context, slug string) (*CategoryWithBlogs, error)
	Delete(ctx context.Context, slug string) error
}

// TagService handles tag CRUD.
type TagService interface {
	Create(ctx context.Context, name string) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	Read(ctx context.Context, slug string) (*TagWithBlogs, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	blogs      repository.BlogRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, blogs repository.BlogRepository) CategoryService {
	return &categoryService{categories: categories, blogs: blogs}
}

func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{
		Name: name,
		Slug: slug.Make(name),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrNameTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Read returns the category and the populated posts referencing it.
func (s *categoryService) Read(ctx context.Context, rawSlug string) (*CategoryWithBlogs, error) {
	category, err := s.categories.FindBySlug(ctx, strings.ToLower(rawSlug))
	if err != nil {
		return nil, errors.ErrCategoryNotFound
	}
	blogs, err := s.blogs.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("list blogs by category: %w", err)
	}
	return &CategoryWithBlogs{Category: category, Blogs: blogs}, nil
}

// Delete removes the category. Posts referencing it stay; only the join rows
// go away.
func (s *categoryService) Delete(ctx context.Context, rawSlug string) error {
	if err := s.categories.DeleteBySlug(ctx, strings.ToLower(rawSlug)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

type tagService struct {
	tags  repository.TagRepository
	blogs repository.BlogRepository
}

// NewTagService creates a new tag service.
func NewTagService(tags repository.TagRepository, blogs repository.BlogRepository) TagService {
	return &tagService{tags: tags, blogs: blogs}
}

func (s *tagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{
		Name: name,
		Slug: slug.Make(name),
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrNameTaken
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Read returns the tag and the populated posts referencing it.
func (s *tagService) Read(ctx context.Context, rawSlug string) (*TagWithBlogs, error) {
	tag, err := s.tags.FindBySlug(ctx, strings.ToLower(rawSlug))
	if err != nil {
		return nil, errors.ErrTagNotFound
	}
	blogs, err := s.blogs.ListByTag(ctx, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("list blogs by tag: %w", err)
	}
	return &TagWithBlogs{Tag: tag, Blogs: blogs}, nil
}

// Delete removes the tag without touching the posts that referenced it.
func (s *tagService) Delete(ctx context.Context, rawSlug string) error {
	if err := s.tags.DeleteBySlug(ctx, strings.ToLower(rawSlug)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrTagNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
