// internal/app/features/bills/handler_test.go
package bills

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/bills"
	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/media"
	"github.com/draj-max/society-backend/internal/domain/models"
	"github.com/draj-max/society-backend/internal/testutil"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)

	users := userstore.New(db)
	users.SetBcryptCost(4)

	mediaStore, err := media.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("media.New: %v", err)
	}

	return NewHandler(users, billstore.New(db), mediaStore, nil, zap.NewNop()), f
}

// payRequest builds the multipart PUT /bill/pay body: a bill id field plus
// an optional proof image part.
func payRequest(t *testing.T, billID string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("id", billID); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if image != nil {
		fw, err := mw.CreateFormFile(proofField, "receipt.png")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/bill/pay", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleCreateBill(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := f.CreateMember(ctx, "billed", "billed@example.com", &societyID)
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/bill/create", map[string]any{
		"memberId":    member.ID.Hex(),
		"category":    "maintenance",
		"totalAmount": 1500,
		"dueDate":     "2026-10-01",
	})
	h.HandleCreateBill(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Bill created successfully." {
		t.Fatalf("message = %q", env.Message)
	}

	var bill models.Bill
	testutil.DecodeData(t, env, &bill)
	if bill.Status != models.BillUnpaid || bill.PendingAmount != 1500 {
		t.Fatalf("bill = %+v", bill)
	}
}

func TestHandleCreateBill_MemberOfOtherSociety(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	otherSociety := primitive.NewObjectID()
	member := f.CreateMember(ctx, "stranger", "stranger@example.com", &otherSociety)
	admin := testutil.SocietyAdminUser(primitive.NewObjectID())

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/bill/create", map[string]any{
		"memberId":    member.ID.Hex(),
		"category":    "water",
		"totalAmount": 300,
		"dueDate":     "2026-10-01",
	})
	h.HandleCreateBill(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "No member found for this id under your society." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleCreateBill_MemberForbidden(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/bill/create", map[string]any{})
	h.HandleCreateBill(rec, testutil.WithUser(req, testutil.MemberUser(nil)))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Unauthorized to access this resource" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleUpdateBill(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, memberID, models.BillWater, 800)
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/update/"+bill.ID.Hex(), map[string]any{
		"category":    "electricity",
		"totalAmount": 1200,
	})
	req = testutil.WithChiURLParam(testutil.WithUser(req, admin), "id", bill.ID.Hex())
	h.HandleUpdateBill(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	updated, err := h.Bills.GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Category != models.BillElectricity || updated.TotalAmount != 1200 {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.PendingAmount != 1200 {
		t.Fatalf("pending = %v, want re-derived 1200", updated.PendingAmount)
	}
}

func TestHandleUpdateBill_DirectOverwrite(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, primitive.NewObjectID(), models.BillMaintenance, 1000)
	admin := testutil.SocietyAdminUser(societyID)
	newMember := primitive.NewObjectID()

	// The edit endpoint overwrites payment fields without the state machine.
	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/update/"+bill.ID.Hex(), map[string]any{
		"status":     "paid",
		"paidAmount": 1000,
		"paidDate":   "2026-01-15",
		"memberId":   newMember.Hex(),
	})
	req = testutil.WithChiURLParam(testutil.WithUser(req, admin), "id", bill.ID.Hex())
	h.HandleUpdateBill(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	updated, err := h.Bills.GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != models.BillPaid || updated.PaidAmount != 1000 {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.PendingAmount != 0 {
		t.Fatalf("pending = %v, want re-derived 0", updated.PendingAmount)
	}
	if updated.MemberID != newMember {
		t.Fatalf("member = %s, want reassigned %s", updated.MemberID.Hex(), newMember.Hex())
	}
	if updated.PaidDate == nil {
		t.Fatal("paid_date not set")
	}
}

func TestHandleUpdateBill_InvalidStatus(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, primitive.NewObjectID(), models.BillWater, 500)
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/update/"+bill.ID.Hex(), map[string]any{
		"status": "settled",
	})
	req = testutil.WithChiURLParam(testutil.WithUser(req, admin), "id", bill.ID.Hex())
	h.HandleUpdateBill(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Validation error" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleUpdateBill_OtherSociety(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bill := f.CreateBill(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.BillOthers, 100)
	admin := testutil.SocietyAdminUser(primitive.NewObjectID())

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/update/"+bill.ID.Hex(), map[string]any{
		"totalAmount": 200,
	})
	req = testutil.WithChiURLParam(testutil.WithUser(req, admin), "id", bill.ID.Hex())
	h.HandleUpdateBill(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "This bill is not found under your society members." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandlePayBill(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := f.CreateMember(ctx, "payer", "payer@example.com", &societyID)
	bill := f.CreateBill(ctx, societyID, member.ID, models.BillMaintenance, 1000)

	rec := httptest.NewRecorder()
	req := payRequest(t, bill.ID.Hex(), pngMagic)
	h.HandlePayBill(rec, testutil.WithUser(req, &member))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Payment proof uploaded. Awaiting admin approval." {
		t.Fatalf("message = %q", env.Message)
	}

	updated, err := h.Bills.GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != models.BillPending {
		t.Fatalf("status = %q, want pending", updated.Status)
	}
	if updated.PaymentProof == nil || updated.PaidDate == nil {
		t.Fatal("proof and paid date must be recorded")
	}
}

func TestHandlePayBill_MissingID(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := payRequest(t, "", pngMagic)
	h.HandlePayBill(rec, testutil.WithUser(req, testutil.MemberUser(nil)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Bill ID is required" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandlePayBill_AdminForbidden(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := payRequest(t, primitive.NewObjectID().Hex(), pngMagic)
	h.HandlePayBill(rec, testutil.WithUser(req, testutil.SocietyAdminUser(primitive.NewObjectID())))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Only members are allowed to pay bills" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandlePayBill_NotOwnBill(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, primitive.NewObjectID(), models.BillWater, 400)
	intruder := testutil.MemberUser(&societyID)

	rec := httptest.NewRecorder()
	req := payRequest(t, bill.ID.Hex(), pngMagic)
	h.HandlePayBill(rec, testutil.WithUser(req, intruder))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "You are not authorized to pay this bill" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandlePayBill_AlreadyPending(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := f.CreateMember(ctx, "eager", "eager@example.com", &societyID)
	bill := f.CreateBill(ctx, societyID, member.ID, models.BillWater, 400)

	if _, err := h.Bills.SubmitPayment(ctx, bill.ID, member.ID, "/uploads/first.png"); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	rec := httptest.NewRecorder()
	req := payRequest(t, bill.ID.Hex(), pngMagic)
	h.HandlePayBill(rec, testutil.WithUser(req, &member))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "This bill is already pending for approval" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandlePayBill_MissingProof(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := f.CreateMember(ctx, "proofless", "proofless@example.com", &societyID)
	bill := f.CreateBill(ctx, societyID, member.ID, models.BillWater, 400)

	rec := httptest.NewRecorder()
	req := payRequest(t, bill.ID.Hex(), nil)
	h.HandlePayBill(rec, testutil.WithUser(req, &member))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Payment proof image is required." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleApproveReject_Approve(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, memberID, models.BillMaintenance, 1000)
	if _, err := h.Bills.SubmitPayment(ctx, bill.ID, memberID, "/uploads/p.png"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/approve-reject", map[string]any{
		"id": bill.ID.Hex(),
		"status": "paid",
		"amount": 600,
	})
	h.HandleApproveReject(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Bill payment paid successfully." {
		t.Fatalf("message = %q", env.Message)
	}

	var settled models.Bill
	testutil.DecodeData(t, env, &settled)
	if settled.Status != models.BillPaid || settled.PaidAmount != 600 || settled.PendingAmount != 400 {
		t.Fatalf("settled = %+v", settled)
	}
}

func TestHandleApproveReject_RejectKeepsAmounts(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, memberID, models.BillMaintenance, 1000)
	if _, err := h.Bills.SubmitPayment(ctx, bill.ID, memberID, "/uploads/p.png"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/approve-reject", map[string]any{
		"id": bill.ID.Hex(),
		"status": "unpaid",
		"amount": 300,
	})
	h.HandleApproveReject(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	reopened, err := h.Bills.GetByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reopened.Status != models.BillUnpaid || reopened.PaidAmount != 300 || reopened.PendingAmount != 700 {
		t.Fatalf("reopened = %+v", reopened)
	}
}

func TestHandleApproveReject_InvalidStatus(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/approve-reject", map[string]any{
		"id": primitive.NewObjectID().Hex(),
		"status": "pending",
		"amount": 100,
	})
	h.HandleApproveReject(rec, testutil.WithUser(req, testutil.SocietyAdminUser(primitive.NewObjectID())))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Invalid status" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleApproveReject_AmountAboveTotal(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, memberID, models.BillWater, 500)
	if _, err := h.Bills.SubmitPayment(ctx, bill.ID, memberID, "/uploads/p.png"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/approve-reject", map[string]any{
		"id": bill.ID.Hex(),
		"status": "paid",
		"amount": 501,
	})
	h.HandleApproveReject(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Amount is greater than total amount" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleApproveReject_NotPending(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	bill := f.CreateBill(ctx, societyID, primitive.NewObjectID(), models.BillWater, 500)
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/bill/approve-reject", map[string]any{
		"id": bill.ID.Hex(),
		"status": "paid",
		"amount": 500,
	})
	h.HandleApproveReject(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "This bill is already unpaid" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleListSocietyBills(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	f.CreateBill(ctx, societyID, primitive.NewObjectID(), models.BillWater, 100)
	f.CreateBill(ctx, societyID, primitive.NewObjectID(), models.BillOthers, 200)
	f.CreateBill(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.BillWater, 300)
	admin := testutil.SocietyAdminUser(societyID)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/bill/all-bills", nil)
	h.HandleListSocietyBills(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)

	var bills []models.Bill
	testutil.DecodeData(t, env, &bills)
	if len(bills) != 2 {
		t.Fatalf("bills = %d, want 2", len(bills))
	}
}

func TestHandleListMemberBills_Self(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := f.CreateMember(ctx, "selfview", "selfview@example.com", &societyID)
	f.CreateBill(ctx, societyID, member.ID, models.BillWater, 100)
	f.CreateBill(ctx, societyID, member.ID, models.BillOthers, 200)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/bill/member-bills", nil)
	h.HandleListMemberBills(rec, testutil.WithUser(req, &member))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var bills []models.Bill
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &bills)
	if len(bills) != 2 {
		t.Fatalf("bills = %d, want 2", len(bills))
	}
}

func TestHandleListMemberBills_MemberCannotViewOthers(t *testing.T) {
	h, _ := newTestHandler(t)

	member := testutil.MemberUser(nil)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/bill/member-bills?id="+primitive.NewObjectID().Hex(), nil)
	h.HandleListMemberBills(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "Members can only view their own bills." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleListMemberBills_AdminCrossSociety(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	otherSociety := primitive.NewObjectID()
	member := f.CreateMember(ctx, "crossline", "crossline@example.com", &otherSociety)
	admin := testutil.SocietyAdminUser(primitive.NewObjectID())

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/bill/member-bills?id="+member.ID.Hex(), nil)
	h.HandleListMemberBills(rec, testutil.WithUser(req, admin))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "You cannot access bills of another society." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleListMemberBills_Empty(t *testing.T) {
	h, _ := newTestHandler(t)

	member := testutil.MemberUser(nil)

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/bill/member-bills", nil)
	h.HandleListMemberBills(rec, testutil.WithUser(req, member))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Message != "No bills found for this member." {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHandleListMemberBills_StatusFilter(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	societyID := primitive.NewObjectID()
	member := f.CreateMember(ctx, "filtered", "filtered@example.com", &societyID)
	paidTarget := f.CreateBill(ctx, societyID, member.ID, models.BillWater, 100)
	f.CreateBill(ctx, societyID, member.ID, models.BillOthers, 200)
	if _, err := h.Bills.SubmitPayment(ctx, paidTarget.ID, member.ID, "/uploads/p.png"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rec := httptest.NewRecorder()
	req := testutil.NewJSONRequest(t, http.MethodGet, "/bill/member-bills?status=pending", nil)
	h.HandleListMemberBills(rec, testutil.WithUser(req, &member))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var bills []models.Bill
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &bills)
	if len(bills) != 1 || bills[0].Status != models.BillPending {
		t.Fatalf("bills = %+v", bills)
	}
}
