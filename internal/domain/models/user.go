// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of actor kinds. Behavior that differs per role is
// looked up in tables keyed by Role; nothing inspects concrete types.
type Role string

const (
	RoleApplicant    Role = "applicant"
	RoleOrganization Role = "organization"
	RoleStaff        Role = "staff"
)

// Roles lists every valid role tag.
var Roles = []Role{RoleApplicant, RoleOrganization, RoleStaff}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// User is an account of any role.
//
// Terminology:
//   - ID: the record id (ObjectID) other records reference.
//   - LoginID: the human-readable id typed at the login prompt
//     (student matriculation number, staff id, or an organization email).
//
// Applicant-only fields: Year, Major.
// Organization-only fields: Company, Position, Authorized.
// Department is shared by organization and staff accounts.
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	LoginID      string             `bson:"login_id" json:"login_id"`
	LoginIDCI    string             `bson:"login_id_ci" json:"login_id_ci"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	Year  int    `bson:"year,omitempty" json:"year,omitempty"`
	Major string `bson:"major,omitempty" json:"major,omitempty"`

	Company    string `bson:"company,omitempty" json:"company,omitempty"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	Position   string `bson:"position,omitempty" json:"position,omitempty"`
	Authorized bool   `bson:"authorized" json:"authorized"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsApplicant reports whether the user holds the applicant role.
func (u User) IsApplicant() bool { return u.Role == RoleApplicant }

// IsOrganization reports whether the user holds the organization role.
func (u User) IsOrganization() bool { return u.Role == RoleOrganization }

// IsStaff reports whether the user holds the staff role.
func (u User) IsStaff() bool { return u.Role == RoleStaff }
