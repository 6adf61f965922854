package model

import "time"

// User roles. Admins may manage taxonomy and any post.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User represents a registered author. Rows are never hard-deleted.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Profile      string    `json:"profile" gorm:"size:255"`
	About        string    `json:"about,omitempty" gorm:"type:text"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         int       `json:"role" gorm:"default:0;index"`
	Photo        []byte    `json:"-" gorm:"type:mediumblob"`
	PhotoType    string    `json:"-" gorm:"size:64"`
	// ResetPasswordToken holds the currently valid password-reset token, or
	// empty. A reset request must present this exact token.
	ResetPasswordToken string    `json:"-" gorm:"size:512"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProjection is the trimmed user shape returned by signin and embedded
// in populated posts.
type PublicProjection struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     int    `json:"role"`
}

// Public returns the trimmed projection of the user.
func (u *User) Public() PublicProjection {
	return PublicProjection{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
	}
}
