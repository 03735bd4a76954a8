package domain

import (
	"context"
	"time"
)

// User represents a registered (or signing-up) user.
// swagger:model User
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Photo             string    `json:"photo,omitempty"`
	PasswordHash      string    `json:"-"`
	IsEmailVerified   bool      `json:"is_email_verified"`
	IsSignupCompleted bool      `json:"-"`
	ReceiveNewsletter bool      `json:"receive_newsletter"`
	NewNotifications  int       `json:"new_notifications"`

	// Email verification session (registration).
	VerifyEmailToken  string     `json:"-"`
	VerifyEmailCode   string     `json:"-"`
	VerifyEmailExpire *time.Time `json:"-"`

	// Password reset session.
	ResetPasswordToken          string     `json:"-"`
	ResetPasswordCode           string     `json:"-"`
	ResetPasswordExpire         *time.Time `json:"-"`
	IsResetPasswordCodeVerified bool       `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenIssuer issues session tokens (JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated
// user's id and email.
type TokenVerifier interface {
	Verify(token string) (userID, email string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail returns the user with this email, whether or not their
	// signup is complete.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByVerifyToken looks up a pending registration session by hashed
	// token; sessions past their expiry are not returned.
	GetByVerifyToken(ctx context.Context, tokenHash string) (*User, error)
	// GetByResetToken looks up an unexpired password reset session by
	// hashed token.
	GetByResetToken(ctx context.Context, tokenHash string) (*User, error)
	Update(ctx context.Context, user *User) error
	// FindByEmails returns completed-signup users whose email is in the
	// given set. Used to target invitation notifications at registered
	// recipients.
	FindByEmails(ctx context.Context, emails []string) ([]*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)
	// ResetNewNotifications zeroes the unread counter for the user.
	ResetNewNotifications(ctx context.Context, userID string) error
}

// AuthToken bundles the credential returned by session-creating flows.
type AuthToken struct {
	Token string `json:"token"`
}

// UserService defines registration, login and password reset flows.
type UserService interface {
	GetLoggedInUser(ctx context.Context, userID string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)

	// SendVerificationCode starts a registration session for the email
	// and mails a verification code. Returns the session token.
	SendVerificationCode(ctx context.Context, email string) (string, error)
	ResendVerificationCode(ctx context.Context, token string) (string, error)
	VerifyEmail(ctx context.Context, token, code string) error
	// Register completes a verified registration session and returns the
	// created user with a signed session token.
	Register(ctx context.Context, token, name, password string) (*User, string, error)

	Login(ctx context.Context, email, password string) (*User, string, error)

	SendResetPasswordMail(ctx context.Context, email string) (string, error)
	ResendResetPasswordMail(ctx context.Context, token string) (string, error)
	VerifyResetPasswordCode(ctx context.Context, token, code string) error
	ResetPassword(ctx context.Context, token, password string) error
}
