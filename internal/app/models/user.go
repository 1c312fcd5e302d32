package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Email         string    `json:"email" db:"email" example:"student@example.edu.cn"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified" example:"false"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// Profile is the campus-identity extension of a user account, 1:1 with User
// (profiles.id = users.id).
type Profile struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  string    `json:"studentId" db:"student_id" example:"123456789"`
	RealName   string    `json:"realName" db:"real_name" example:"张三"`
	IsVerified bool      `json:"isVerified" db:"is_verified"`
	IsAdmin    bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Account bundles a user with its profile for handlers that need both.
type Account struct {
	User    User
	Profile Profile
}
