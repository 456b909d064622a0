// internal/domain/models/bill.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bill statuses. The only legal transitions are
// unpaid -> pending (member submits payment proof) and
// pending -> paid | unpaid (admin approves or rejects).
const (
	BillUnpaid  = "unpaid"
	BillPending = "pending"
	BillPaid    = "paid"
)

// Bill categories.
const (
	BillMaintenance = "maintenance"
	BillWater       = "water"
	BillElectricity = "electricity"
	BillOthers      = "others"
)

// PaymentProof is the uploaded artifact evidencing a bill payment.
type PaymentProof struct {
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// Bill is a payable obligation owned by one member within one society.
// Once reconciled, PaidAmount + PendingAmount == TotalAmount.
type Bill struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID      primitive.ObjectID `bson:"member_id" json:"member_id"`
	SocietyID     primitive.ObjectID `bson:"society_id" json:"society_id"`
	Category      string             `bson:"category" json:"category"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	PaidAmount    float64            `bson:"paid_amount" json:"paid_amount"`
	PendingAmount float64            `bson:"pending_amount" json:"pending_amount"`
	DueDate       time.Time          `bson:"due_date" json:"due_date"`
	PaidDate      *time.Time         `bson:"paid_date,omitempty" json:"paid_date,omitempty"`
	Status        string             `bson:"status" json:"status"` // unpaid | pending | paid
	PaymentProof  *PaymentProof      `bson:"payment_proof,omitempty" json:"payment_proof,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidBillCategory reports whether category is a known bill category.
func ValidBillCategory(category string) bool {
	switch category {
	case BillMaintenance, BillWater, BillElectricity, BillOthers:
		return true
	}
	return false
}

// ValidBillStatus reports whether status is a known bill status.
func ValidBillStatus(status string) bool {
	switch status {
	case BillUnpaid, BillPending, BillPaid:
		return true
	}
	return false
}
