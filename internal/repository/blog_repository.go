package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
)

// listColumns are the blog fields served by list endpoints. Body and photo
// stay out of list payloads; both are served only by their read endpoints.
var listColumns = []string{"id", "title", "slug", "excerpt", "mtitle", "mdesc", "posted_by_id", "created_at", "updated_at"}

// BlogRepository defines persistence operations for posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	Update(ctx context.Context, blog *model.Blog) error
	ReplaceCategories(ctx context.Context, blog *model.Blog, categories []model.Category) error
	ReplaceTags(ctx context.Context, blog *model.Blog, tags []model.Tag) error
	DeleteBySlug(ctx context.Context, slug string) error
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)
	FindBySlugPopulated(ctx context.Context, slug string) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	ListPage(ctx context.Context, limit, skip int) ([]model.Blog, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.Blog, error)
	ListRelated(ctx context.Context, excludeID uint, categoryIDs []uint, limit int) ([]model.Blog, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Blog, error)
	ListByTag(ctx context.Context, tagID uint) ([]model.Blog, error)
	Search(ctx context.Context, query string) ([]model.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository builds a GORM-backed repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) Update(ctx context.Context, blog *model.Blog) error {
	// Save without touching the join tables; association changes go through
	// the Replace methods.
	return r.db.WithContext(ctx).Omit("Categories", "Tags", "PostedBy").Save(blog).Error
}

func (r *blogRepository) ReplaceCategories(ctx context.Context, blog *model.Blog, categories []model.Category) error {
	return r.db.WithContext(ctx).Model(blog).Association("Categories").Replace(categories)
}

func (r *blogRepository) ReplaceTags(ctx context.Context, blog *model.Blog, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(blog).Association("Tags").Replace(tags)
}

func (r *blogRepository) DeleteBySlug(ctx context.Context, slug string) error {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&blog).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&blog).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&blog).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&blog).Error
	})
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindBySlugPopulated(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Tags").
		Preload("PostedBy").
		Where("slug = ?", slug).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Preload("Categories").
		Preload("Tags").
		Preload("PostedBy").
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListPage(ctx context.Context, limit, skip int) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Preload("Categories").
		Preload("Tags").
		Preload("PostedBy").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.Blog, error) {
	var blogs []model.Blog
	q := r.db.WithContext(ctx).
		Select(listColumns).
		Preload("Categories").
		Preload("Tags").
		Preload("PostedBy").
		Where("posted_by_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListRelated(ctx context.Context, excludeID uint, categoryIDs []uint, limit int) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.db.WithContext(ctx).
		Distinct("blogs.id", "blogs.title", "blogs.slug", "blogs.excerpt", "blogs.posted_by_id", "blogs.created_at", "blogs.updated_at").
		Joins("JOIN blog_categories ON blog_categories.blog_id = blogs.id").
		Where("blog_categories.category_id IN ?", categoryIDs).
		Where("blogs.id <> ?", excludeID).
		Limit(limit).
		Preload("PostedBy").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.db.WithContext(ctx).
		Select("blogs.id", "blogs.title", "blogs.slug", "blogs.excerpt", "blogs.posted_by_id", "blogs.created_at", "blogs.updated_at").
		Joins("JOIN blog_categories ON blog_categories.blog_id = blogs.id").
		Where("blog_categories.category_id = ?", categoryID).
		Preload("Categories").
		Preload("Tags").
		Preload("PostedBy").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) ListByTag(ctx context.Context, tagID uint) ([]model.Blog, error) {
	var blogs []model.Blog
	err := r.db.WithContext(ctx).
		Select("blogs.id", "blogs.title", "blogs.slug", "blogs.excerpt", "blogs.posted_by_id", "blogs.created_at", "blogs.updated_at").
		Joins("JOIN blog_tags ON blog_tags.blog_id = blogs.id").
		Where("blog_tags.tag_id = ?", tagID).
		Preload("Categories").
		Preload("Tags").
		Preload("PostedBy").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) Search(ctx context.Context, query string) ([]model.Blog, error) {
	var blogs []model.Blog
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(body) LIKE LOWER(?)", like, like).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}
