package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
)

func TestUserService_PublicProfile(t *testing.T) {
	t.Run("returns the user with recent posts, photo stripped", func(t *testing.T) {
		users := new(MockUserRepository)
		blogs := new(MockBlogRepository)
		users.On("FindByUsername", mock.Anything, "writer").Return(&model.User{
			ID:       4,
			Username: "writer",
			Photo:    []byte{1, 2, 3},
		}, nil)
		blogs.On("ListByUser", mock.Anything, uint(4), publicProfileBlogLimit).Return([]model.Blog{{ID: 1}}, nil)

		service := NewUserService(users, blogs)
		profile, err := service.PublicProfile(context.Background(), "writer")

		assert.NoError(t, err)
		assert.Equal(t, "writer", profile.User.Username)
		assert.Nil(t, profile.User.Photo)
		assert.Len(t, profile.Blogs, 1)
		users.AssertExpectations(t)
		blogs.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(users, new(MockBlogRepository))
		profile, err := service.PublicProfile(context.Background(), "ghost")

		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		assert.Nil(t, profile)
	})
}

func TestUserService_Update(t *testing.T) {
	stored := func() *model.User {
		return &model.User{ID: 4, Name: "Old Name", Email: "old@example.com", About: "old about"}
	}

	t.Run("applies only the submitted fields", func(t *testing.T) {
		user := stored()
		users := new(MockUserRepository)
		users.On("Update", mock.Anything, user).Return(nil)

		service := NewUserService(users, new(MockBlogRepository))
		updated, err := service.Update(context.Background(), user, UpdateUserInput{Name: "New Name"})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "old@example.com", updated.Email)
		assert.Equal(t, "old about", updated.About)
		users.AssertExpectations(t)
	})

	t.Run("rehashes a changed password", func(t *testing.T) {
		user := stored()
		users := new(MockUserRepository)
		users.On("Update", mock.Anything, user).Return(nil)

		service := NewUserService(users, new(MockBlogRepository))
		updated, err := service.Update(context.Background(), user, UpdateUserInput{Password: "brand-new"})

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brand-new")))
	})

	t.Run("short password is rejected", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository), new(MockBlogRepository))
		updated, err := service.Update(context.Background(), stored(), UpdateUserInput{Password: "abc"})

		assert.ErrorIs(t, err, errors.ErrPasswordTooShort)
		assert.Nil(t, updated)
	})

	t.Run("oversized photo is rejected", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository), new(MockBlogRepository))
		updated, err := service.Update(context.Background(), stored(), UpdateUserInput{
			Photo: make([]byte, MaxUserPhotoBytes+1),
		})

		assert.ErrorIs(t, err, errors.ErrPhotoTooLarge)
		assert.Nil(t, updated)
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := stored()
		users := new(MockUserRepository)
		users.On("Update", mock.Anything, user).Return(gorm.ErrDuplicatedKey)

		service := NewUserService(users, new(MockBlogRepository))
		updated, err := service.Update(context.Background(), user, UpdateUserInput{Email: "Taken@Example.com"})

		assert.ErrorIs(t, err, errors.ErrEmailTaken)
		assert.Nil(t, updated)
		// The email was lowercased before the attempt.
		assert.Equal(t, "taken@example.com", user.Email)
	})
}

func TestUserService_Photo(t *testing.T) {
	t.Run("returns bytes and content type", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "writer").Return(&model.User{
			Photo:     []byte{0x89, 0x50},
			PhotoType: "image/png",
		}, nil)

		service := NewUserService(users, new(MockBlogRepository))
		data, contentType, err := service.Photo(context.Background(), "writer")

		assert.NoError(t, err)
		assert.Equal(t, []byte{0x89, 0x50}, data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("user without a photo", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "writer").Return(&model.User{}, nil)

		service := NewUserService(users, new(MockBlogRepository))
		_, _, err := service.Photo(context.Background(), "writer")

		assert.ErrorIs(t, err, errors.ErrPhotoNotFound)
	})
}
