package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aibrid/zipo-server/internal/delivery/http/controllers"
	"github.com/aibrid/zipo-server/internal/delivery/http/middleware"
	"github.com/aibrid/zipo-server/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	userController *controllers.UserController,
	notificationController *controllers.NotificationController,
	linkController *controllers.LinkController,
	uploadController *controllers.UploadController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("GET /events/invite-link-id", auth(eventController.GenerateInviteLinkID))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEventByID))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("PATCH /events/{eventID}/invite-link", auth(eventController.ToggleInviteLink))
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(eventController.InviteUsers))
	mux.HandleFunc("POST /events/{eventID}/invitations/accept", auth(eventController.AcceptInvitation))
	mux.HandleFunc("POST /events/{eventID}/invitations/reject", auth(eventController.RejectInvitation))
	mux.HandleFunc("DELETE /events/{eventID}/invitees/{inviteeID}", auth(eventController.RemoveInvitee))
	mux.HandleFunc("PATCH /events/{eventID}/invitees/{inviteeID}/role", auth(eventController.AssignRole))

	// Todos
	mux.HandleFunc("POST /events/{eventID}/todos", auth(eventController.AddTodo))
	mux.HandleFunc("PATCH /events/{eventID}/todos/{todoID}", auth(eventController.EditTodo))
	mux.HandleFunc("DELETE /events/{eventID}/todos/{todoID}", auth(eventController.DeleteTodo))
	mux.HandleFunc("POST /events/{eventID}/todos/{todoID}/duplicate", auth(eventController.DuplicateTodo))
	mux.HandleFunc("PATCH /events/{eventID}/todos/{todoID}/mark", auth(eventController.MarkTodo))

	// Auth
	mux.HandleFunc("POST /auth/verification-code", userController.SendVerificationCode)
	mux.HandleFunc("POST /auth/verification-code/resend", userController.ResendVerificationCode)
	mux.HandleFunc("POST /auth/verify-email", userController.VerifyEmail)
	mux.HandleFunc("POST /auth/register", userController.Register)
	mux.HandleFunc("POST /auth/login", userController.Login)
	mux.HandleFunc("POST /auth/reset-password", userController.SendResetPasswordMail)
	mux.HandleFunc("POST /auth/reset-password/resend", userController.ResendResetPasswordMail)
	mux.HandleFunc("POST /auth/reset-password/verify", userController.VerifyResetPasswordCode)
	mux.HandleFunc("POST /auth/reset-password/confirm", userController.ResetPassword)

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.GetLoggedInUser))

	// Notifications
	mux.HandleFunc("GET /notifications", auth(notificationController.GetNotifications))

	// Links
	mux.HandleFunc("GET /links", auth(linkController.ListLinks))
	mux.HandleFunc("POST /links/shorten", linkController.ShortenLink)
	mux.HandleFunc("POST /links/shorten/custom", auth(linkController.ShortenCustomLink))
	mux.HandleFunc("POST /links/combine", auth(linkController.CombineCustomLink))
	mux.HandleFunc("GET /links/{path}", linkController.ResolveLink)
	mux.HandleFunc("GET /links/{path}/customizable", linkController.IsCustomizable)

	// Uploads
	mux.HandleFunc("POST /uploads/url", auth(uploadController.GetUploadURL))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
