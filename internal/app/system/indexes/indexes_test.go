package indexes_test

import (
	"testing"

	"github.com/draj-max/society-backend/internal/app/system/indexes"
	"github.com/draj-max/society-backend/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func listIndexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_CreatesUserIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := listIndexNames(t, db, "users")
	for _, want := range []string{
		"uniq_users_emailci",
		"uniq_users_usernameci",
		"idx_users_society_role_id",
	} {
		if !names[want] {
			t.Errorf("expected index %q to exist on users collection", want)
		}
	}
}

func TestEnsureAll_CreatesSocietyIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := listIndexNames(t, db, "societies")
	for _, want := range []string{
		"uniq_societies_regnoci",
		"uniq_societies_admin",
	} {
		if !names[want] {
			t.Errorf("expected index %q to exist on societies collection", want)
		}
	}
}

func TestEnsureAll_CreatesBillAndComplaintIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	billNames := listIndexNames(t, db, "bills")
	for _, want := range []string{
		"idx_bills_society_createdat",
		"idx_bills_member_status_duedate",
	} {
		if !billNames[want] {
			t.Errorf("expected index %q to exist on bills collection", want)
		}
	}

	complaintNames := listIndexNames(t, db, "complaints")
	for _, want := range []string{
		"idx_complaints_society_status_createdat",
		"idx_complaints_member_createdat",
	} {
		if !complaintNames[want] {
			t.Errorf("expected index %q to exist on complaints collection", want)
		}
	}
}
