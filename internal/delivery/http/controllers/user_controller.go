package controllers

import (
	"log/slog"
	"net/http"

	"github.com/aibrid/zipo-server/internal/delivery/http/helpers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// GetLoggedInUser godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /users/me [get]
func (c *UserController) GetLoggedInUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetLoggedInUser(r.Context(), userID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// SendVerificationCodeRequest is the request body for POST /auth/verification-code.
type SendVerificationCodeRequest struct {
	Email string `json:"email"`
}

func (s SendVerificationCodeRequest) Validate() []string {
	if !emailRegex.MatchString(s.Email) {
		return []string{"a valid email is required"}
	}
	return nil
}

// SendVerificationCode godoc
// @Summary Start a registration session
// @Description Emails a 5 digit verification code and returns a session token for the follow-up calls. Fails with 409 when the email already belongs to a registered account.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SendVerificationCodeRequest true "Email to register"
// @Success 200 {object} helpers.APIResponse "data contains the session token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /auth/verification-code [post]
func (c *UserController) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req SendVerificationCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.SendVerificationCode(r.Context(), req.Email)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.AuthToken{Token: token})
}

// TokenRequest carries the session token of a pending registration or
// password reset.
type TokenRequest struct {
	Token string `json:"token"`
}

func (t TokenRequest) Validate() []string {
	if t.Token == "" {
		return []string{"token is required"}
	}
	return nil
}

// ResendVerificationCode godoc
// @Summary Resend the registration verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Registration session token"
// @Success 200 {object} helpers.APIResponse "data contains a fresh session token"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/verification-code/resend [post]
func (c *UserController) ResendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.ResendVerificationCode(r.Context(), req.Token)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.AuthToken{Token: token})
}

// VerifyCodeRequest carries a session token plus the emailed code.
type VerifyCodeRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

func (v VerifyCodeRequest) Validate() []string {
	var errs []string
	if v.Token == "" {
		errs = append(errs, "token is required")
	}
	if len(v.Code) != 5 {
		errs = append(errs, "code must be 5 digits")
	}
	return errs
}

// VerifyEmail godoc
// @Summary Verify the registration email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyCodeRequest true "Session token and emailed code"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/verify-email [post]
func (c *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.VerifyEmail(r.Context(), req.Token, req.Code); err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"verified": true})
}

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (rr RegisterRequest) Validate() []string {
	var errs []string
	if rr.Token == "" {
		errs = append(errs, "token is required")
	}
	if rr.Name == "" {
		errs = append(errs, "name is required")
	}
	if len(rr.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// RegisterResponse is the success payload for register and login.
type RegisterResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register godoc
// @Summary Complete registration
// @Description Finishes a verified registration session with name and password and returns the user with a signed session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Name and password for the verified session"
// @Success 201 {object} helpers.APIResponse "data contains user and token"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Register(r.Context(), req.Token, req.Name, req.Password)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{User: user, Token: token})
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Email == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains user and token"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegisterResponse{User: user, Token: token})
}

// SendResetPasswordMail godoc
// @Summary Start a password reset
// @Description Emails a reset code to a registered account and returns the reset session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SendVerificationCodeRequest true "Account email"
// @Success 200 {object} helpers.APIResponse "data contains the session token"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/reset-password [post]
func (c *UserController) SendResetPasswordMail(w http.ResponseWriter, r *http.Request) {
	var req SendVerificationCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.SendResetPasswordMail(r.Context(), req.Email)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.AuthToken{Token: token})
}

// ResendResetPasswordMail godoc
// @Summary Resend the password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Reset session token"
// @Success 200 {object} helpers.APIResponse "data contains a fresh session token"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/reset-password/resend [post]
func (c *UserController) ResendResetPasswordMail(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.ResendResetPasswordMail(r.Context(), req.Token)
	if err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.AuthToken{Token: token})
}

// VerifyResetPasswordCode godoc
// @Summary Verify the password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyCodeRequest true "Session token and emailed code"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/reset-password/verify [post]
func (c *UserController) VerifyResetPasswordCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.VerifyResetPasswordCode(r.Context(), req.Token, req.Code); err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"verified": true})
}

// ResetPasswordRequest is the request body for POST /auth/reset-password/confirm.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (rp ResetPasswordRequest) Validate() []string {
	var errs []string
	if rp.Token == "" {
		errs = append(errs, "token is required")
	}
	if len(rp.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// ResetPassword godoc
// @Summary Set a new password
// @Description Requires the reset code to have been verified first.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Session token and new password"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /auth/reset-password/confirm [post]
func (c *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		c.logError(r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"reset": true})
}

func (c *UserController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
