package models

import (
	"time"
)

// Role is the closed set of roles a caller can act as
type Role string

const (
	RoleManager  Role = "manager"
	RoleDelivery Role = "delivery-crew"
	RoleCustomer Role = "customer"
)

// AllGroups lists the group rows seeded at startup, one per role
var AllGroups = []string{
	string(RoleManager),
	string(RoleDelivery),
	string(RoleCustomer),
}

type Group struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Users []User `json:"-" gorm:"many2many:user_groups"`
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Groups       []Group   `json:"groups,omitempty" gorm:"many2many:user_groups"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role collapses group membership into a single role. Membership is
// exclusive by convention, not by constraint, so overlaps resolve to
// the most privileged group; a user in no group is a plain customer.
func (u *User) Role() Role {
	member := make(map[string]bool, len(u.Groups))
	for _, g := range u.Groups {
		member[g.Name] = true
	}
	switch {
	case member[string(RoleManager)]:
		return RoleManager
	case member[string(RoleDelivery)]:
		return RoleDelivery
	default:
		return RoleCustomer
	}
}

// InGroup reports direct membership in a named group
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
