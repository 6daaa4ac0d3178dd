package models

import (
	"database/sql"
	"time"
)

// User represents a user row. Auth provider distinguishes local password
// accounts from Google-provisioned ones.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Name         string         `db:"name"`
	Email        sql.NullString `db:"email"`
	AuthProvider string         `db:"auth_provider"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
