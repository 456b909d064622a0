package complaintstore_test

import (
	"testing"

	complaintstore "github.com/draj-max/society-backend/internal/app/store/complaints"
	"github.com/draj-max/society-backend/internal/domain/models"
	"github.com/draj-max/society-backend/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_StartsRaised(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := complaintstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Complaint{
		MemberID:    primitive.NewObjectID(),
		SocietyID:   primitive.NewObjectID(),
		Title:       "Water leakage",
		Description: "Leak in the B-wing stairwell",
		Media:       "/uploads/leak.png",
		// Caller cannot pre-resolve a complaint.
		Status: models.ComplaintResolved,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Status != models.ComplaintRaised {
		t.Errorf("status: got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Transition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := complaintstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateComplaint(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Broken lift")

	resolved, err := store.Transition(ctx, c.ID, models.ComplaintResolved)
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if resolved.Status != models.ComplaintResolved {
		t.Errorf("status: got %q", resolved.Status)
	}

	// Already left raised: no further transition.
	if _, err := store.Transition(ctx, c.ID, models.ComplaintForwarded); err != complaintstore.ErrWrongStatus {
		t.Errorf("expected ErrWrongStatus, got %v", err)
	}
}

func TestStore_Transition_Forwarded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := complaintstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateComplaint(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Parking dispute")

	forwarded, err := store.Transition(ctx, c.ID, models.ComplaintForwarded)
	if err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	if forwarded.Status != models.ComplaintForwarded {
		t.Errorf("status: got %q", forwarded.Status)
	}
}

func TestStore_Transition_MissingComplaint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := complaintstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Transition(ctx, primitive.NewObjectID(), models.ComplaintResolved); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := complaintstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	memberA := primitive.NewObjectID()
	memberB := primitive.NewObjectID()

	c1 := fixtures.CreateComplaint(ctx, societyID, memberA, "One")
	fixtures.CreateComplaint(ctx, societyID, memberA, "Two")
	fixtures.CreateComplaint(ctx, societyID, memberB, "Three")
	fixtures.CreateComplaint(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Elsewhere")

	bySociety, err := store.ListBySociety(ctx, societyID, "")
	if err != nil {
		t.Fatalf("ListBySociety failed: %v", err)
	}
	if len(bySociety) != 3 {
		t.Errorf("society complaints: expected 3, got %d", len(bySociety))
	}

	byMember, err := store.ListByMember(ctx, memberA, "")
	if err != nil {
		t.Fatalf("ListByMember failed: %v", err)
	}
	if len(byMember) != 2 {
		t.Errorf("member complaints: expected 2, got %d", len(byMember))
	}

	// Status filter only sees the resolved one.
	if _, err := store.Transition(ctx, c1.ID, models.ComplaintResolved); err != nil {
		t.Fatalf("Transition failed: %v", err)
	}
	resolved, err := store.ListBySociety(ctx, societyID, models.ComplaintResolved)
	if err != nil {
		t.Fatalf("ListBySociety(resolved) failed: %v", err)
	}
	if len(resolved) != 1 {
		t.Errorf("resolved complaints: expected 1, got %d", len(resolved))
	}
}

func TestStore_DeleteBySociety(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := complaintstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	fixtures.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "Gone1")
	fixtures.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "Gone2")
	keep := fixtures.CreateComplaint(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Keeper")

	deleted, err := store.DeleteBySociety(ctx, societyID)
	if err != nil {
		t.Fatalf("DeleteBySociety failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
	if _, err := store.GetByID(ctx, keep.ID); err != nil {
		t.Errorf("unrelated complaint was deleted: %v", err)
	}
}
