package controllers

import (
	"log/slog"
	"net/http"

	"github.com/aibrid/zipo-server/internal/delivery/http/helpers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

type UploadController struct {
	Logger  *slog.Logger
	Service domain.UploadService
}

func NewUploadController(logger *slog.Logger, svc domain.UploadService) *UploadController {
	return &UploadController{
		Logger:  logger,
		Service: svc,
	}
}

// UploadURLRequest is the request body for POST /uploads/url.
type UploadURLRequest struct {
	Purpose     domain.UploadPurpose `json:"purpose"`
	ContentType string               `json:"content_type"`
}

func (u UploadURLRequest) Validate() []string {
	var errs []string
	if u.Purpose != domain.UploadProfilePhoto && u.Purpose != domain.UploadEventBackdrop {
		errs = append(errs, "purpose must be Profile_Photo or Event_Backdrop")
	}
	if u.ContentType != "image/jpeg" && u.ContentType != "image/png" {
		errs = append(errs, "content_type must be image/jpeg or image/png")
	}
	return errs
}

// GetUploadURL godoc
// @Summary Get a pre-signed upload URL
// @Description Issues a short-lived pre-signed URL the client PUTs the file to. Only jpeg and png uploads are allowed.
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UploadURLRequest true "Upload purpose and content type"
// @Success 200 {object} helpers.APIResponse "data contains key and upload_url"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /uploads/url [post]
func (c *UploadController) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	var req UploadURLRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upload, err := c.Service.GetFileUploadURL(r.Context(), userID, req.Purpose, req.ContentType)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, upload)
}
