// internal/app/features/complaints/create.go
package complaints

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/htmlsanitize"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/media"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// proofField is the multipart field carrying the complaint proof image.
const proofField = "complainProof"

type createComplaintRequest struct {
	Title       string `validate:"required,min=3,max=100"`
	Description string `validate:"required,min=10,max=1000"`
}

// HandleCreateComplaint handles POST /complain/create-complaint. Any member
// of a society can raise a complaint; proof media is mandatory. Title and
// description arrive as multipart fields alongside the image and are
// stripped of any HTML before storage.
func (h *Handler) HandleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	if res.SocietyID.IsZero() {
		respond.NotFound(w, "Society or Member not found.")
		return
	}

	if err := r.ParseMultipartForm(media.DefaultMaxBytes + 1<<20); err != nil {
		respond.BadRequest(w, "Malformed multipart body")
		return
	}

	req := createComplaintRequest{
		Title:       htmlsanitize.Strip(r.FormValue("title")),
		Description: htmlsanitize.Strip(r.FormValue("description")),
	}
	if !inputval.Check(w, &req) {
		return
	}

	file, fh, err := r.FormFile(proofField)
	if err != nil {
		respond.BadRequest(w, "Complain proof image is required.")
		return
	}
	file.Close()

	mediaURL, err := h.Media.SaveImage(fh)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotImage):
			respond.BadRequest(w, "Only JPEG, PNG, JPG, WEBP, and GIF files are allowed")
		case errors.Is(err, media.ErrTooLarge):
			respond.BadRequest(w, "Complaint proof image must be 5 MB or smaller.")
		default:
			h.Log.Error("complaint proof save failed", zap.Error(err))
			respond.Internal(w, "Could not store complaint proof.")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	complaint, err := h.Complaints.Create(ctx, models.Complaint{
		MemberID:    res.UserID,
		SocietyID:   res.SocietyID,
		Title:       req.Title,
		Description: req.Description,
		Media:       mediaURL,
	})
	if err != nil {
		h.Log.Error("complaint create failed", zap.Error(err))
		respond.Internal(w, "Could not create complaint.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventComplaintFiled, res.UserID, nil, &res.SocietyID, map[string]string{
		"title": complaint.Title,
	})

	respond.Created(w, "Complaint created successfully.", complaint)
}
