package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidRole reports whether r is one of the allowed roles.
func ValidRole(r UserRole) bool {
	return r == RoleAdmin || r == RoleMember
}

type User struct {
	ID        string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Role      UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	Username  string    `gorm:"type:varchar(255)" json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
