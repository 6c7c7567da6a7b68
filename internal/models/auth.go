package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role determines what a user may do against the workflow.
type Role string

const (
	RoleRequester Role = "requester"
	RoleApprover  Role = "approver"
	RoleAdmin     Role = "admin"
)

// User is an account permitted to draft or review purchase requests.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	FullName     string     `db:"full_name" json:"fullName"`
	Role         Role       `db:"role" json:"role"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Active       bool       `db:"active" json:"active"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}

// JWTClaims is the bearer-token payload attached to authenticated requests.
type JWTClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// CanReview reports whether the actor may mutate the approval queue.
func (c *JWTClaims) CanReview() bool {
	if c == nil {
		return false
	}
	return c.Role == RoleApprover || c.Role == RoleAdmin
}
