// internal/app/store/societies/societystore.go
package societystore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/draj-max/society-backend/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateRegistration is returned when a society with the same registration number already exists.
	ErrDuplicateRegistration = errors.New("a society with this registration number already exists")
	// ErrDuplicateAdmin is returned when the admin already runs another society.
	ErrDuplicateAdmin = errors.New("this admin already runs a society")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("societies")}
}

// Two unique indexes can fire here; the index name picks the sentinel.
func dupErr(err error) error {
	if !wafflemongo.IsDup(err) {
		return err
	}
	if strings.Contains(err.Error(), "admin") {
		return ErrDuplicateAdmin
	}
	return ErrDuplicateRegistration
}

func (s *Store) Create(ctx context.Context, soc models.Society) (models.Society, error) {
	now := time.Now().UTC()
	soc.ID = primitive.NewObjectID()
	soc.Name = strings.TrimSpace(soc.Name)
	soc.RegistrationNumber = strings.TrimSpace(soc.RegistrationNumber)
	soc.RegistrationNumberCI = text.Fold(soc.RegistrationNumber)
	soc.Address = strings.TrimSpace(soc.Address)
	soc.City = strings.TrimSpace(soc.City)
	soc.State = strings.TrimSpace(soc.State)
	soc.Pincode = strings.TrimSpace(soc.Pincode)
	soc.CreatedAt = now
	soc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, soc); err != nil {
		return models.Society{}, dupErr(err)
	}
	return soc, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Society, error) {
	var soc models.Society
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&soc); err != nil {
		return models.Society{}, err
	}
	return soc, nil
}

// GetByAdmin loads the society run by the given admin.
func (s *Store) GetByAdmin(ctx context.Context, adminID primitive.ObjectID) (models.Society, error) {
	var soc models.Society
	if err := s.c.FindOne(ctx, bson.M{"admin_id": adminID}).Decode(&soc); err != nil {
		return models.Society{}, err
	}
	return soc, nil
}

// List returns all societies sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Society, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var socs []models.Society
	if err := cur.All(ctx, &socs); err != nil {
		return nil, err
	}
	return socs, nil
}

// Update modifies a society's mutable fields and refreshes UpdatedAt.
// Empty fields are left unchanged. Returns the number of matched documents.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, soc models.Society) (int64, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if v := strings.TrimSpace(soc.Name); v != "" {
		set["name"] = v
	}
	if v := strings.TrimSpace(soc.RegistrationNumber); v != "" {
		set["registration_number"] = v
		set["registration_number_ci"] = text.Fold(v)
	}
	if v := strings.TrimSpace(soc.Address); v != "" {
		set["address"] = v
	}
	if v := strings.TrimSpace(soc.City); v != "" {
		set["city"] = v
	}
	if v := strings.TrimSpace(soc.State); v != "" {
		set["state"] = v
	}
	if v := strings.TrimSpace(soc.Pincode); v != "" {
		set["pincode"] = v
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, dupErr(err)
	}
	return res.MatchedCount, nil
}

// Delete removes a society by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddMemberID records a member in the society's member list. $addToSet keeps
// the list duplicate-free even when the call is retried.
func (s *Store) AddMemberID(ctx context.Context, societyID, memberID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, societyID, bson.M{
		"$addToSet": bson.M{"member_ids": memberID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PullMemberID removes a member from the society's member list.
func (s *Store) PullMemberID(ctx context.Context, societyID, memberID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, societyID, bson.M{
		"$pull": bson.M{"member_ids": memberID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
