package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
)

const (
	// MaxUserPhotoBytes caps uploaded profile photos.
	MaxUserPhotoBytes = 2_500_000
	// MinPasswordLength applies to profile-update password changes. Signup
	// passwords are validated at the request layer.
	MinPasswordLength = 6

	publicProfileBlogLimit = 10
)

// UpdateUserInput enumerates the profile fields a user may change about
// themselves. Role, username and timestamps are not reachable from here.
type UpdateUserInput struct {
	Name      string
	Email     string
	About     string
	Password  string
	Photo     []byte
	PhotoType string
}

// PublicProfile is a user's public page: the user plus their recent posts.
type PublicProfile struct {
	User  *model.User  `json:"user"`
	Blogs []model.Blog `json:"blogs"`
}

// UserService handles profile reads and updates.
type UserService interface {
	PublicProfile(ctx context.Context, username string) (*PublicProfile, error)
	Update(ctx context.Context, user *model.User, in UpdateUserInput) (*model.User, error)
	Photo(ctx context.Context, username string) (data []byte, contentType string, err error)
}

type userService struct {
	users repository.UserRepository
	blogs repository.BlogRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, blogs repository.BlogRepository) UserService {
	return &userService{users: users, blogs: blogs}
}

// PublicProfile resolves a username into the user and up to ten recent posts.
// Binary and sensitive fields never leave this layer.
func (s *userService) PublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	blogs, err := s.blogs.ListByUser(ctx, user.ID, publicProfileBlogLimit)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	user.Photo = nil
	return &PublicProfile{User: user, Blogs: blogs}, nil
}

// Update applies the explicit profile input over the stored user.
func (s *userService) Update(ctx context.Context, user *model.User, in UpdateUserInput) (*model.User, error) {
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = strings.ToLower(in.Email)
	}
	if in.About != "" {
		user.About = in.About
	}
	if in.Password != "" {
		if len(in.Password) < MinPasswordLength {
			return nil, errors.ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.Photo != nil {
		if len(in.Photo) > MaxUserPhotoBytes {
			return nil, errors.ErrPhotoTooLarge
		}
		user.Photo = in.Photo
		user.PhotoType = in.PhotoType
	}

	if err := s.users.Update(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	user.Photo = nil
	return user, nil
}

// Photo returns the stored profile photo for a username.
func (s *userService) Photo(ctx context.Context, username string) ([]byte, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", errors.ErrUserNotFound
	}
	if len(user.Photo) == 0 {
		return nil, "", errors.ErrPhotoNotFound
	}
	return user.Photo, user.PhotoType, nil
}
