package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/mail"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
)

const bcryptCost = 10

// AuthService handles signup, signin and credential-recovery operations.
type AuthService interface {
	// PreSignup validates availability of the email and mails an activation
	// link. Nothing is persisted; the pending signup lives in the token.
	PreSignup(ctx context.Context, name, email, password string) error
	// Signup redeems an activation token and creates the user.
	Signup(ctx context.Context, token string) (*model.User, error)
	Signin(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	// GoogleLogin verifies a Google identity token, provisioning a user on
	// first login.
	GoogleLogin(ctx context.Context, idToken string) (token string, user *model.User, err error)
}

type authService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	mailer    mail.Mailer
	google    auth.GoogleVerifier
	clientURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, mailer mail.Mailer, google auth.GoogleVerifier, clientURL string) AuthService {
	return &authService{
		users:     users,
		tokens:    tokens,
		mailer:    mailer,
		google:    google,
		clientURL: clientURL,
	}
}

// PreSignup rejects taken emails, then signs the submitted fields into a
// short-lived activation token and emails the activation link.
func (s *authService) PreSignup(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}

	token, err := s.tokens.GenerateActivationToken(name, email, password)
	if err != nil {
		return fmt.Errorf("sign activation token: %w", err)
	}

	return s.mailer.SendActivationEmail(ctx, email, token)
}

// Signup verifies the activation token and persists the user it carries.
// The email is re-checked so that replaying a link after the account exists
// fails the same way pre-signup would.
func (s *authService) Signup(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ParseActivationToken(token)
	if err != nil {
		return nil, errors.ErrExpiredSignupLink
	}

	existing, err := s.users.FindByEmail(ctx, claims.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user, err := s.createUser(ctx, claims.Name, claims.Email, claims.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Signin verifies the credentials and issues a session token. A wrong
// password and an unknown email fail identically.
func (s *authService) Signin(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword signs a reset token, stores it on the user row, and mails
// the reset link. The stored copy makes the token single-use: redeeming or
// re-requesting invalidates the previous link.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return errors.ErrEmailNotFound
	}

	token, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	user.ResetPasswordToken = token
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	return s.mailer.SendPasswordResetEmail(ctx, user.Email, token)
}

// ResetPassword verifies the reset token, confirms it is the one currently
// stored for the user, then overwrites the password and clears the token.
func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if _, err := s.tokens.ParseResetToken(resetToken); err != nil {
		return errors.ErrExpiredLink
	}

	user, err := s.users.FindByResetToken(ctx, resetToken)
	if err != nil {
		return errors.ErrExpiredLink
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetPasswordToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// GoogleLogin verifies the identity token and signs the user in, creating
// the account with a random placeholder password on first login.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (string, *model.User, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil || !identity.EmailVerified {
		return "", nil, errors.ErrGoogleLoginFailed
	}

	email := strings.ToLower(identity.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return "", nil, fmt.Errorf("find user: %w", err)
		}
		password := identity.TokenID
		if password == "" {
			password = uuid.NewString()
		}
		user, err = s.createUser(ctx, identity.Name, email, password)
		if err != nil {
			return "", nil, err
		}
	}

	token, err := s.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, user, nil
}

func (s *authService) createUser(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	username := generateUsername()
	user := &model.User{
		Name:         name,
		Email:        email,
		Username:     username,
		Profile:      fmt.Sprintf("%s/profile/%s", s.clientURL, username),
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// generateUsername derives a short random handle for public profile URLs.
func generateUsername() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
