package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when the email already has an account.
	ErrEmailTaken = errors.New("Email is taken")
	// ErrInvalidCredentials is returned on signin with a wrong email or
	// password. The message never reveals which factor failed.
	ErrInvalidCredentials = errors.New("Incorrect credentials")
	// ErrExpiredSignupLink is returned when an activation token fails verification.
	ErrExpiredSignupLink = errors.New("Expired link. Signup again")
	// ErrExpiredLink is returned when a password-reset token fails verification.
	ErrExpiredLink = errors.New("Expired link. Try again")
	// ErrEmailNotFound is returned on forgot-password for an unknown email.
	ErrEmailNotFound = errors.New("User with that email does not exist")
	// ErrUserNotFound is returned when a user lookup yields nothing.
	ErrUserNotFound = errors.New("User not found")
	// ErrBlogNotFound is returned when a post lookup by slug yields nothing.
	ErrBlogNotFound = errors.New("Blog not found")
	// ErrCategoryNotFound is returned when a category lookup yields nothing.
	ErrCategoryNotFound = errors.New("Category not found")
	// ErrTagNotFound is returned when a tag lookup yields nothing.
	ErrTagNotFound = errors.New("Tag not found")
	// ErrPhotoNotFound is returned when an entity has no stored photo.
	ErrPhotoNotFound = errors.New("Photo not found")
	// ErrNotAuthorized is returned when an ownership check fails.
	ErrNotAuthorized = errors.New("You are not authorized")
	// ErrAdminOnly is returned when a role check fails.
	ErrAdminOnly = errors.New("Admin resource. Access denied.")
	// ErrGoogleLoginFailed is returned when the Google identity token is
	// invalid or the Google account's email is unverified.
	ErrGoogleLoginFailed = errors.New("Google login failed. Try again.")
	// ErrSlugTaken is returned when a new post's derived slug collides with
	// an existing one.
	ErrSlugTaken = errors.New("Title is already taken")
	// ErrNameTaken is returned when a category or tag name slugs to an
	// existing entry.
	ErrNameTaken = errors.New("Name is already taken")
	// ErrContentTooShort is returned when a post body is under the minimum length.
	ErrContentTooShort = errors.New("Content is too short")
	// ErrPhotoTooLarge is returned when an uploaded image exceeds the size cap.
	ErrPhotoTooLarge = errors.New("Image is too large")
	// ErrPhotoUpload is returned when a multipart image part cannot be read.
	ErrPhotoUpload = errors.New("Image could not be uploaded")
	// ErrPasswordTooShort is returned when a password change is under the minimum length.
	ErrPasswordTooShort = errors.New("Password should be min 6 characters long")
	// ErrEmailSendFailed is returned when the mail provider rejects a send.
	ErrEmailSendFailed = errors.New("Email could not be sent. Try again later")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Every handler funnels
// service failures through here so that each failure path answers uniformly.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrExpiredSignupLink):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EXPIRED_SIGNUP_LINK")
	case errors.Is(err, ErrExpiredLink):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EXPIRED_LINK")
	case errors.Is(err, ErrEmailNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrBlogNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BLOG_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TAG_NOT_FOUND")
	case errors.Is(err, ErrPhotoNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PHOTO_NOT_FOUND")
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_AUTHORIZED")
	case errors.Is(err, ErrAdminOnly):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ADMIN_ONLY")
	case errors.Is(err, ErrGoogleLoginFailed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "GOOGLE_LOGIN_FAILED")
	case errors.Is(err, ErrSlugTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SLUG_TAKEN")
	case errors.Is(err, ErrNameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NAME_TAKEN")
	case errors.Is(err, ErrContentTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONTENT_TOO_SHORT")
	case errors.Is(err, ErrPhotoTooLarge):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PHOTO_TOO_LARGE")
	case errors.Is(err, ErrPhotoUpload):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PHOTO_UPLOAD_FAILED")
	case errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_TOO_SHORT")
	case errors.Is(err, ErrEmailSendFailed):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "EMAIL_SEND_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
