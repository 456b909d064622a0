package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plaintext password every fixture user gets.
const FixturePassword = "password123"

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T

	passwordHash string
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash fixture password: %v", err)
	}
	return &Fixtures{db: db, t: t, passwordHash: string(hash)}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insertUser(ctx context.Context, u models.User) models.User {
	f.t.Helper()
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func (f *Fixtures) baseUser(username, email, role string) models.User {
	now := time.Now().UTC()
	return models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		Email:      email,
		EmailCI:    text.Fold(email),
		Password:   f.passwordHash,
		Role:       role,
		Phone:      "9876543210",
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateMember creates an active member. societyID may be nil for an
// unassigned member.
func (f *Fixtures) CreateMember(ctx context.Context, username, email string, societyID *primitive.ObjectID) models.User {
	f.t.Helper()
	u := f.baseUser(username, email, models.RoleMember)
	if societyID != nil {
		u.SocietyID = societyID
		u.RoomNo = 101
		u.ChawlNo = "A"
		u.IsOwner = true
	}
	return f.insertUser(ctx, u)
}

// CreateSocietyAdmin creates a societyAdmin linked to societyID.
func (f *Fixtures) CreateSocietyAdmin(ctx context.Context, username, email string, societyID primitive.ObjectID) models.User {
	f.t.Helper()
	u := f.baseUser(username, email, models.RoleSocietyAdmin)
	u.SocietyID = &societyID
	return f.insertUser(ctx, u)
}

// CreateSuperAdmin creates the platform superadmin.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, username, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, f.baseUser(username, email, models.RoleSuperAdmin))
}

// CreateSociety creates a society run by adminID.
func (f *Fixtures) CreateSociety(ctx context.Context, name, regNo string, adminID primitive.ObjectID) models.Society {
	f.t.Helper()

	now := time.Now().UTC()
	soc := models.Society{
		ID:                   primitive.NewObjectID(),
		Name:                 name,
		RegistrationNumber:   regNo,
		RegistrationNumberCI: text.Fold(regNo),
		Address:              "12 Test Lane",
		City:                 "Mumbai",
		State:                "Maharashtra",
		Pincode:              "400001",
		AdminID:              adminID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := f.db.Collection("societies").InsertOne(ctx, soc); err != nil {
		f.t.Fatalf("failed to create test society: %v", err)
	}
	return soc
}

// AddMemberToSociety appends a member ID to the society's member list.
func (f *Fixtures) AddMemberToSociety(ctx context.Context, societyID, memberID primitive.ObjectID) {
	f.t.Helper()
	_, err := f.db.Collection("societies").UpdateByID(ctx, societyID,
		bson.M{"$addToSet": bson.M{"member_ids": memberID}})
	if err != nil {
		f.t.Fatalf("failed to add member to society: %v", err)
	}
}

// CreateBill creates an unpaid bill for a member.
func (f *Fixtures) CreateBill(ctx context.Context, societyID, memberID primitive.ObjectID, category string, total float64) models.Bill {
	f.t.Helper()

	now := time.Now().UTC()
	bill := models.Bill{
		ID:            primitive.NewObjectID(),
		MemberID:      memberID,
		SocietyID:     societyID,
		Category:      category,
		TotalAmount:   total,
		PendingAmount: total,
		DueDate:       now.AddDate(0, 1, 0),
		Status:        models.BillUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("bills").InsertOne(ctx, bill); err != nil {
		f.t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateComplaint creates a raised complaint for a member.
func (f *Fixtures) CreateComplaint(ctx context.Context, societyID, memberID primitive.ObjectID, title string) models.Complaint {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Complaint{
		ID:          primitive.NewObjectID(),
		MemberID:    memberID,
		SocietyID:   societyID,
		Title:       title,
		Description: "test complaint description",
		Media:       "/uploads/test.png",
		Status:      models.ComplaintRaised,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("complaints").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test complaint: %v", err)
	}
	return c
}
