package user

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"  // Organization admin - sees everyone's attendance
	RoleMember Role = "MEMBER" // Regular team member
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Role         Role
	DepartmentID *string
	SlackUserID  *string
	IsActive     bool
	LoginIP      *string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	DepartmentName *string
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
