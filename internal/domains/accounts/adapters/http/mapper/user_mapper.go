package mapper

import (
	"time"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
)

// RegisterForm is the form payload of POST /register.
type RegisterForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role" binding:"required"`
}

// ToRegisterInput converts the form into the service input.
func (f RegisterForm) ToRegisterInput() accountsports.RegisterInput {
	return accountsports.RegisterInput{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
	}
}

// LoginForm is the form payload of POST /login.
type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// UserIDForm carries the user_id of POST /delete_user.
type UserIDForm struct {
	UserID int64 `form:"user_id" binding:"required"`
}

// User represents the transport-level user payload. The password hash never leaves the service.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is returned by a successful login.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *accountsdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*accountsdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}

// FromDomainSession converts a login session into its transport representation.
func FromDomainSession(session *accountsdomain.Session) Session {
	if session == nil {
		return Session{}
	}
	return Session{
		Token:     session.Token,
		UserID:    session.Identity.UserID,
		Username:  session.Identity.Username,
		Role:      string(session.Identity.Role),
		ExpiresAt: session.ExpiresAt,
	}
}
