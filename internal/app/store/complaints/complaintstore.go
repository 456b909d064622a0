// internal/app/store/complaints/complaintstore.go
package complaintstore

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

// ErrWrongStatus is returned when a transition is attempted on a complaint
// that already left the raised state.
var ErrWrongStatus = errors.New("complaint is not in the raised status")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("complaints")}
}

// Create inserts a new complaint. Complaints always start raised.
func (s *Store) Create(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.Status = models.ComplaintRaised
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Complaint, error) {
	var c models.Complaint
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}

// ListBySociety returns a society's complaints, optionally filtered by
// status, newest first.
func (s *Store) ListBySociety(ctx context.Context, societyID primitive.ObjectID, status string) ([]models.Complaint, error) {
	filter := bson.M{"society_id": societyID}
	if status != "" {
		filter["status"] = status
	}
	return s.list(ctx, filter)
}

// ListByMember returns a member's complaints, optionally filtered by status.
func (s *Store) ListByMember(ctx context.Context, memberID primitive.ObjectID, status string) ([]models.Complaint, error) {
	filter := bson.M{"member_id": memberID}
	if status != "" {
		filter["status"] = status
	}
	return s.list(ctx, filter)
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Complaint, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var complaints []models.Complaint
	if err := cur.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

// Transition moves a raised complaint to resolved or forwarded. The status
// filter makes the move atomic; a complaint never leaves raised twice.
// Returns ErrWrongStatus when the complaint exists in another state,
// mongo.ErrNoDocuments when it does not exist.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, to string) (models.Complaint, error) {
	var c models.Complaint
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.ComplaintRaised},
		bson.M{"$set": bson.M{
			"status":     to,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		if _, getErr := s.GetByID(ctx, id); getErr == nil {
			return models.Complaint{}, ErrWrongStatus
		}
		return models.Complaint{}, mongo.ErrNoDocuments
	}
	if err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}

// DeleteBySociety removes every complaint of a society. Part of the
// society-deletion cascade.
func (s *Store) DeleteBySociety(ctx context.Context, societyID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"society_id": societyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
