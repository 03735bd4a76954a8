package controllers

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/aibrid/zipo-server/internal/delivery/http/helpers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

type LinkController struct {
	Logger  *slog.Logger
	Service domain.LinkService
}

func NewLinkController(logger *slog.Logger, svc domain.LinkService) *LinkController {
	return &LinkController{
		Logger:  logger,
		Service: svc,
	}
}

// ResolveLink godoc
// @Summary Resolve a short link path
// @Description Public lookup of a short path. Records a per-IP visit and increments the click counter.
// @Tags links
// @Produce json
// @Param path path string true "Short link path"
// @Success 200 {object} helpers.APIResponse "data contains the link"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /links/{path} [get]
func (c *LinkController) ResolveLink(w http.ResponseWriter, r *http.Request) {
	link, err := c.Service.ResolveLink(r.Context(), r.PathValue("path"), clientIP(r))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, link)
}

// ListLinks godoc
// @Summary List the caller's links
// @Tags links
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the link list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /links [get]
func (c *LinkController) ListLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	links, err := c.Service.ListLinks(r.Context(), userID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, links)
}

// IsCustomizable godoc
// @Summary Check whether a custom path is free
// @Tags links
// @Produce json
// @Param path path string true "Candidate path"
// @Success 200 {object} helpers.APIResponse "data contains {customizable}"
// @Router /links/{path}/customizable [get]
func (c *LinkController) IsCustomizable(w http.ResponseWriter, r *http.Request) {
	free, err := c.Service.IsCustomizable(r.Context(), r.PathValue("path"))
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"customizable": free})
}

// ShortenLinkRequest is the request body for POST /links/shorten.
type ShortenLinkRequest struct {
	Link string `json:"link"`
}

func (s ShortenLinkRequest) Validate() []string {
	if s.Link == "" {
		return []string{"link is required"}
	}
	if u, err := url.Parse(s.Link); err != nil || u.Scheme == "" || u.Host == "" {
		return []string{"link must be an absolute URL"}
	}
	return nil
}

// ShortenLink godoc
// @Summary Shorten a URL
// @Description Anonymous shortening. The same target URL always yields the same short path.
// @Tags links
// @Accept json
// @Produce json
// @Param body body ShortenLinkRequest true "Target URL"
// @Success 201 {object} helpers.APIResponse "data contains the link"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /links/shorten [post]
func (c *LinkController) ShortenLink(w http.ResponseWriter, r *http.Request) {
	var req ShortenLinkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	link, err := c.Service.ShortenLink(r.Context(), req.Link)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, link)
}

// ShortenCustomRequest is the request body for POST /links/shorten/custom.
type ShortenCustomRequest struct {
	domain.ShortenCustomInput
}

func (s ShortenCustomRequest) Validate() []string {
	var errs []string
	if s.Path == "" {
		errs = append(errs, "path is required")
	}
	if s.Link == "" {
		errs = append(errs, "link is required")
	}
	return errs
}

// ShortenCustomLink godoc
// @Summary Shorten a URL with a custom path
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ShortenCustomRequest true "Custom path and target URL"
// @Success 201 {object} helpers.APIResponse "data contains the link"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (path taken)"
// @Router /links/shorten/custom [post]
func (c *LinkController) ShortenCustomLink(w http.ResponseWriter, r *http.Request) {
	var req ShortenCustomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	link, err := c.Service.ShortenCustomLink(r.Context(), userID, req.ShortenCustomInput)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, link)
}

// CombineCustomRequest is the request body for POST /links/combine.
type CombineCustomRequest struct {
	domain.CombineCustomInput
}

func (cc CombineCustomRequest) Validate() []string {
	var errs []string
	if cc.Path == "" {
		errs = append(errs, "path is required")
	}
	if len(cc.CombinedLink.Links) == 0 {
		errs = append(errs, "combined_link.links is required")
	}
	return errs
}

// CombineCustomLink godoc
// @Summary Create a combined link page
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CombineCustomRequest true "Custom path and combined links"
// @Success 201 {object} helpers.APIResponse "data contains the link"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (path taken)"
// @Router /links/combine [post]
func (c *LinkController) CombineCustomLink(w http.ResponseWriter, r *http.Request) {
	var req CombineCustomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	link, err := c.Service.CombineCustomLink(r.Context(), userID, req.CombineCustomInput)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, link)
}

func (c *LinkController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// clientIP prefers the X-Forwarded-For chain head, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
