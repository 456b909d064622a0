// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/draj-max/society-backend/internal/app/system/normalize"
	"github.com/draj-max/society-backend/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c    *mongo.Collection
	cost int
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateUsername is returned when attempting to create a user with a username that already exists.
	ErrDuplicateUsername = errors.New("a user with this username already exists")

	errBadRole = errors.New(`role must be "member"|"societyAdmin"|"superAdmin"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users"), cost: bcrypt.DefaultCost}
}

// SetBcryptCost overrides the hashing cost. Tests use the minimum cost.
func (s *Store) SetBcryptCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.cost = cost
	}
}

// Unique indexes on email_ci and username_ci both surface as duplicate-key
// errors; the index name in the message tells them apart.
func (s *Store) dupErr(err error) error {
	if !wafflemongo.IsDup(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// noPassword is the default projection; only credential lookups see the hash.
var noPassword = options.FindOne().SetProjection(bson.M{"password": 0})

// Create inserts a new user after normalizing fields and hashing the
// password. Role defaults to member and accounts start active.
func (s *Store) Create(ctx context.Context, u models.User, plainPassword string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.Phone = normalize.Phone(u.Phone)

	if u.Role == "" {
		u.Role = models.RoleMember
	}
	if !models.ValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), s.cost)
	if err != nil {
		return models.User{}, err
	}
	u.Password = string(hash)
	u.IsActive = true

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, s.dupErr(err)
	}

	u.Password = ""
	return u, nil
}

// CheckPassword compares a stored bcrypt hash against a candidate password.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// GetByID loads a user by ObjectID. The password hash is never included.
// Returns (nil, nil) when no user exists, so callers can distinguish a
// missing record from a failed read.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, noPassword).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByIdentifierWithPassword looks up a user by case-insensitive email or
// username, including the password hash for credential checks. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByIdentifierWithPassword(ctx context.Context, identifier string) (*models.User, error) {
	ci := text.Fold(strings.TrimSpace(identifier))
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email_ci": ci},
		bson.M{"username_ci": ci},
	}}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetMemberOfSociety loads a member-role user scoped to one society.
func (s *Store) GetMemberOfSociety(ctx context.Context, id, societyID primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{
		"_id":        id,
		"role":       models.RoleMember,
		"society_id": societyID,
	}, noPassword).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListBySociety returns all users belonging to a society, admins included.
func (s *Store) ListBySociety(ctx context.Context, societyID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"society_id": societyID},
		options.Find().SetProjection(bson.M{"password": 0}).SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update holds the optional fields an update may change. Nil means "leave as is".
type Update struct {
	Username *string
	Email    *string
	Phone    *string
	RoomNo   *int
	ChawlNo  *string
	IsOwner  *bool
	Role     *string
}

// UpdateFields applies a partial update and refreshes UpdatedAt. Returns the
// number of matched documents (0 when the user does not exist).
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (int64, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if upd.Username != nil {
		username := normalize.Username(*upd.Username)
		set["username"] = username
		set["username_ci"] = text.Fold(username)
	}
	if upd.Email != nil {
		email := normalize.Email(*upd.Email)
		set["email"] = email
		set["email_ci"] = text.Fold(email)
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.RoomNo != nil {
		set["room_no"] = *upd.RoomNo
	}
	if upd.ChawlNo != nil {
		set["chawl_no"] = *upd.ChawlNo
	}
	if upd.IsOwner != nil {
		set["is_owner"] = *upd.IsOwner
	}
	if upd.Role != nil {
		if !models.ValidRole(*upd.Role) {
			return 0, errBadRole
		}
		set["role"] = *upd.Role
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return 0, s.dupErr(err)
	}
	return res.MatchedCount, nil
}

// SetActive flips the active flag. Returns the number of matched documents.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (int64, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// SetPassword hashes and stores a new password. Returns matched count.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, plainPassword string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), s.cost)
	if err != nil {
		return 0, err
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":   string(hash),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// PromoteToSocietyAdmin switches a member to societyAdmin and links the
// society. The filter requires role=member so the promotion cannot be applied
// twice or to the superadmin. Returns mongo.ErrNoDocuments when no member
// matched.
func (s *Store) PromoteToSocietyAdmin(ctx context.Context, id, societyID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleMember},
		bson.M{"$set": bson.M{
			"role":       models.RoleSocietyAdmin,
			"society_id": societyID,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DemoteToMember reverses PromoteToSocietyAdmin. Used as saga compensation
// when society creation fails after the promotion step.
func (s *Store) DemoteToMember(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleSocietyAdmin},
		bson.M{
			"$set":   bson.M{"role": models.RoleMember, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"society_id": ""},
		})
	return err
}

// AssignSociety links a member to a society with their residence details.
// The filter requires an unassigned member, so a member of one society can
// never be pulled into another. Returns mongo.ErrNoDocuments when no
// unassigned member matched.
func (s *Store) AssignSociety(ctx context.Context, id, societyID primitive.ObjectID, roomNo int, chawlNo string, isOwner bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleMember, "society_id": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{
			"society_id": societyID,
			"room_no":    roomNo,
			"chawl_no":   chawlNo,
			"is_owner":   isOwner,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UnassignSociety detaches a member from a society, clearing residence
// details. Also the compensation for AssignSociety.
func (s *Store) UnassignSociety(ctx context.Context, id, societyID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "society_id": societyID},
		bson.M{
			"$set":   bson.M{"updated_at": time.Now().UTC()},
			"$unset": bson.M{"society_id": "", "room_no": "", "chawl_no": ""},
		})
	return err
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteBySociety removes every user linked to a society (members and the
// society admin). Part of the society-deletion cascade.
func (s *Store) DeleteBySociety(ctx context.Context, societyID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"society_id": societyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
