// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Promotion to societyAdmin happens only as a side
// effect of society creation; superAdmin is assigned at startup bootstrap.
const (
	RoleMember       = "member"
	RoleSocietyAdmin = "societyAdmin"
	RoleSuperAdmin   = "superAdmin"
)

// User represents members, society admins, and the superadmin.
//
// Password is the bcrypt hash. It is bson-only and excluded from the default
// projection by the user store; only credential lookups decode it.
type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username   string              `bson:"username" json:"username"`
	UsernameCI string              `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string              `bson:"email" json:"email"`
	EmailCI    string              `bson:"email_ci" json:"-"`
	Password   string              `bson:"password,omitempty" json:"-"`
	Role       string              `bson:"role" json:"role"` // member | societyAdmin | superAdmin
	Phone      string              `bson:"phone,omitempty" json:"phone,omitempty"`
	SocietyID  *primitive.ObjectID `bson:"society_id,omitempty" json:"society_id,omitempty"`
	RoomNo     int                 `bson:"room_no,omitempty" json:"room_no,omitempty"`
	ChawlNo    string              `bson:"chawl_no,omitempty" json:"chawl_no,omitempty"`
	IsOwner    bool                `bson:"is_owner" json:"is_owner"`
	IsActive   bool                `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleSocietyAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
