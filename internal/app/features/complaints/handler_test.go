// internal/app/features/complaints/handler_test.go
package complaints

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/complaints"
	"github.com/draj-max/society-backend/internal/app/system/media"
	"github.com/draj-max/society-backend/internal/domain/models"
	"github.com/draj-max/society-backend/internal/testutil"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)

	mediaStore, err := media.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("media.New: %v", err)
	}

	return NewHandler(complaintstore.New(db), mediaStore, nil, zap.NewNop()), f
}

// complaintRequest builds the multipart POST /complain/create-complaint body.
func complaintRequest(t *testing.T, title, description string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", title); err != nil {
		t.Fatalf("WriteField title: %v", err)
	}
	if err := mw.WriteField("description", description); err != nil {
		t.Fatalf("WriteField description: %v", err)
	}
	if image != nil {
		fw, err := mw.CreateFormFile(proofField, "proof.png")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/complain/create-complaint", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleCreateComplaint(t *testing.T) {
	h, _ := newTestHandler(t)
	societyID := primitive.NewObjectID()
	member := testutil.MemberUser(&societyID)

	rec := httptest.NewRecorder()
	req := complaintRequest(t, "Water leakage", "The ceiling of room 101 has been leaking for a week.", pngMagic)
	h.HandleCreateComplaint(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Complaint created successfully." {
		t.Fatalf("message = %q", env.Message)
	}

	var complaint models.Complaint
	testutil.DecodeData(t, env, &complaint)
	if complaint.Status != models.ComplaintRaised {
		t.Fatalf("status = %q, want raised", complaint.Status)
	}
	if !strings.HasPrefix(complaint.Media, "/uploads/") {
		t.Fatalf("media = %q", complaint.Media)
	}
	if complaint.MemberID != member.ID || complaint.SocietyID != societyID {
		t.Fatalf("scoping = %+v", complaint)
	}
}

func TestHandleCreateComplaint_StripsHTML(t *testing.T) {
	h, _ := newTestHandler(t)
	societyID := primitive.NewObjectID()
	member := testutil.MemberUser(&societyID)

	rec := httptest.NewRecorder()
	req := complaintRequest(t,
		"<b>Broken</b> gate",
		"<script>alert(1)</script>The main gate lock has been broken since Monday.",
		pngMagic)
	h.HandleCreateComplaint(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var complaint models.Complaint
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &complaint)
	if complaint.Title != "Broken gate" {
		t.Fatalf("title = %q", complaint.Title)
	}
	if strings.Contains(complaint.Description, "<script>") || strings.Contains(complaint.Description, "alert") {
		t.Fatalf("description = %q", complaint.Description)
	}
}

func TestHandleCreateComplaint_MissingProof(t *testing.T) {
	h, _ := newTestHandler(t)
	societyID := primitive.NewObjectID()
	member := testutil.MemberUser(&societyID)

	rec := httptest.NewRecorder()
	req := complaintRequest(t, "No proof here", "Something happened but there is no photo attached.", nil)
	h.HandleCreateComplaint(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Complain proof image is required." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleCreateComplaint_NoSociety(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}
	member := testutil.MemberUser(nil)

	rec := httptest.NewRecorder()
	req := complaintRequest(t, "Orphan report", "A complaint from a user without any society.", pngMagic)
	h.HandleCreateComplaint(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Society or Member not found." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleCreateComplaint_ShortTitle(t *testing.T) {
	h, _ := newTestHandler(t)
	societyID := primitive.NewObjectID()
	member := testutil.MemberUser(&societyID)

	rec := httptest.NewRecorder()
	req := complaintRequest(t, "ab", "A description that is certainly long enough.", pngMagic)
	h.HandleCreateComplaint(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Validation error" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleListSocietyComplaints(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	f.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "First issue")
	f.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "Second issue")
	f.CreateComplaint(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Elsewhere")
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/complain/all-complaints", nil)
	h.HandleListSocietyComplaints(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var complaints []models.Complaint
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &complaints)
	if len(complaints) != 2 {
		t.Fatalf("complaints = %d, want 2", len(complaints))
	}
}

func TestHandleListSocietyComplaints_Empty(t *testing.T) {
	h, _ := newTestHandler(t)
	admin := testutil.SocietyAdminUser(primitive.NewObjectID())

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/complain/all-complaints", nil)
	h.HandleListSocietyComplaints(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "No complaints found." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleListMemberComplaints(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := testutil.MemberUser(&societyID)
	f.CreateComplaint(ctx, societyID, member.ID, "Mine")
	f.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "Someone else's")

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/complain/member-complaints", nil)
	h.HandleListMemberComplaints(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var complaints []models.Complaint
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &complaints)
	if len(complaints) != 1 || complaints[0].Title != "Mine" {
		t.Fatalf("complaints = %+v", complaints)
	}
}

func TestHandleReviewComplaint_Resolve(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	complaint := f.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "Pending issue")
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/complain/resolve-forward-complaint", map[string]any{
		"complaintId": complaint.ID.Hex(),
		"status":      "resolved",
	})
	h.HandleReviewComplaint(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Complaint resolved successfully." {
		t.Fatalf("message = %q", env.Message)
	}

	updated, err := h.Complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != models.ComplaintResolved {
		t.Fatalf("status = %q, want resolved", updated.Status)
	}
}

func TestHandleReviewComplaint_AlreadyReviewed(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	complaint := f.CreateComplaint(ctx, societyID, primitive.NewObjectID(), "Twice touched")
	if _, err := h.Complaints.Transition(ctx, complaint.ID, models.ComplaintForwarded); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/complain/resolve-forward-complaint", map[string]any{
		"complaintId": complaint.ID.Hex(),
		"status":      "resolved",
	})
	h.HandleReviewComplaint(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Complaint is not in raised status. Current status: forwarded" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleReviewComplaint_OtherSociety(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	complaint := f.CreateComplaint(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Not yours")
	admin := testutil.SocietyAdminUser(primitive.NewObjectID())

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/complain/resolve-forward-complaint", map[string]any{
		"complaintId": complaint.ID.Hex(),
		"status":      "forwarded",
	})
	h.HandleReviewComplaint(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Unauthorized to access this resource" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleReviewComplaint_MemberForbidden(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/complain/resolve-forward-complaint", map[string]any{
		"complaintId": primitive.NewObjectID().Hex(),
		"status":      "resolved",
	})
	h.HandleReviewComplaint(rec, testutil.WithUser(req, testutil.MemberUser(nil)))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
