// internal/domain/models/complaint.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Complaint statuses. A complaint only moves forward from raised; the owning
// society's admin resolves or forwards it.
const (
	ComplaintRaised    = "raised"
	ComplaintForwarded = "forwarded"
	ComplaintResolved  = "resolved"
)

// Complaint is a grievance raised by a member, with mandatory proof media.
type Complaint struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID    primitive.ObjectID `bson:"member_id" json:"member_id"`
	SocietyID   primitive.ObjectID `bson:"society_id" json:"society_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Media       string             `bson:"media" json:"media"`
	Status      string             `bson:"status" json:"status"` // raised | forwarded | resolved

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidComplaintStatus reports whether status is a known complaint status.
func ValidComplaintStatus(status string) bool {
	switch status {
	case ComplaintRaised, ComplaintForwarded, ComplaintResolved:
		return true
	}
	return false
}
