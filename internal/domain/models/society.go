// internal/domain/models/society.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PincodeLength is the required length of a society pincode.
const PincodeLength = 6

// Society is the tenant boundary. AdminID is unique across societies (one
// admin per society, one society per admin); RegistrationNumber is globally
// unique via its folded CI field.
type Society struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                 string               `bson:"name" json:"name"`
	RegistrationNumber   string               `bson:"registration_number" json:"registration_number"`
	RegistrationNumberCI string               `bson:"registration_number_ci" json:"-"`
	Address              string               `bson:"address" json:"address"`
	City                 string               `bson:"city" json:"city"`
	State                string               `bson:"state" json:"state"`
	Pincode              string               `bson:"pincode" json:"pincode"`
	AdminID              primitive.ObjectID   `bson:"admin_id" json:"admin_id"`
	MemberIDs            []primitive.ObjectID `bson:"member_ids,omitempty" json:"member_ids,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
