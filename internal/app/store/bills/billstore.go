// internal/app/store/bills/billstore.go
package billstore

import (
	"context"
	"errors"
	"time"

	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrWrongStatus is returned by a conditional transition whose status filter
// did not match; the caller re-reads the bill to report the current state.
var ErrWrongStatus = errors.New("bill is not in the required status")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bills")}
}

// Create inserts a new bill. New bills start unpaid with the full amount
// outstanding regardless of what the caller set.
func (s *Store) Create(ctx context.Context, b models.Bill) (models.Bill, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.Status = models.BillUnpaid
	b.PaidAmount = 0
	b.PendingAmount = b.TotalAmount
	b.PaidDate = nil
	b.PaymentProof = nil
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Bill{}, err
	}
	return b, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Bill, error) {
	var b models.Bill
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Bill{}, err
	}
	return b, nil
}

// ListBySociety returns all bills of a society, newest first.
func (s *Store) ListBySociety(ctx context.Context, societyID primitive.ObjectID) ([]models.Bill, error) {
	return s.list(ctx, bson.M{"society_id": societyID})
}

// ListByMember returns a member's bills, optionally filtered by status.
func (s *Store) ListByMember(ctx context.Context, memberID primitive.ObjectID, status string) ([]models.Bill, error) {
	filter := bson.M{"member_id": memberID}
	if status != "" {
		filter["status"] = status
	}
	return s.list(ctx, filter)
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Bill, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var bills []models.Bill
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Update holds the optional fields an admin edit may change. Status,
// PaidAmount, PaidDate, and MemberID are direct overwrites outside the
// payment state machine; the edit endpoint is deliberately less guarded
// than submit/settle.
type Update struct {
	Category    *string
	TotalAmount *float64
	DueDate     *time.Time
	Status      *string
	PaidAmount  *float64
	PaidDate    *time.Time
	MemberID    *primitive.ObjectID
}

// UpdateFields applies a partial admin edit. Changing the total or the paid
// amount re-derives the pending amount. Returns matched count.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (int64, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.PaidDate != nil {
		set["paid_date"] = *upd.PaidDate
	}
	if upd.MemberID != nil {
		set["member_id"] = *upd.MemberID
	}
	if upd.TotalAmount != nil || upd.PaidAmount != nil {
		// Re-deriving pending needs the amounts not being changed, so this
		// is a read-modify-write.
		var cur models.Bill
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cur); err != nil {
			if err == mongo.ErrNoDocuments {
				return 0, nil
			}
			return 0, err
		}
		total := cur.TotalAmount
		paid := cur.PaidAmount
		if upd.TotalAmount != nil {
			total = *upd.TotalAmount
			set["total_amount"] = total
		}
		if upd.PaidAmount != nil {
			paid = *upd.PaidAmount
			set["paid_amount"] = paid
		}
		set["pending_amount"] = total - paid
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// SubmitPayment moves an unpaid bill to pending with the uploaded proof and
// stamps the payment date. The status filter makes the transition atomic:
// two concurrent submissions cannot both succeed. Returns ErrWrongStatus
// when the bill exists but is not unpaid, mongo.ErrNoDocuments when it does
// not exist.
func (s *Store) SubmitPayment(ctx context.Context, id, memberID primitive.ObjectID, proofURL string) (models.Bill, error) {
	now := time.Now().UTC()
	var b models.Bill
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "member_id": memberID, "status": models.BillUnpaid},
		bson.M{"$set": bson.M{
			"status": models.BillPending,
			"payment_proof": models.PaymentProof{
				URL:        proofURL,
				UploadedAt: now,
			},
			"paid_date":  now,
			"updated_at": now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		// Distinguish "gone" from "wrong state".
		if _, getErr := s.GetByID(ctx, id); getErr == nil {
			return models.Bill{}, ErrWrongStatus
		}
		return models.Bill{}, mongo.ErrNoDocuments
	}
	if err != nil {
		return models.Bill{}, err
	}
	return b, nil
}

// Settle decides a pending bill. toStatus is paid (approve) or unpaid
// (reject); either way the amount the admin accepted is recorded and pending
// becomes the remainder, so a rejection keeps the partial payment on record.
// The pending filter makes the decision atomic: two concurrent settlements
// cannot both apply. Returns ErrWrongStatus when the bill exists but is not
// pending, mongo.ErrNoDocuments when it does not exist.
func (s *Store) Settle(ctx context.Context, id primitive.ObjectID, toStatus string, amount float64) (models.Bill, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Bill{}, err
	}

	now := time.Now().UTC()
	var b models.Bill
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.BillPending},
		bson.M{"$set": bson.M{
			"status":         toStatus,
			"paid_amount":    amount,
			"pending_amount": cur.TotalAmount - amount,
			"updated_at":     now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return models.Bill{}, ErrWrongStatus
	}
	if err != nil {
		return models.Bill{}, err
	}
	return b, nil
}

// DeleteBySociety removes every bill of a society. Part of the
// society-deletion cascade.
func (s *Store) DeleteBySociety(ctx context.Context, societyID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"society_id": societyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
