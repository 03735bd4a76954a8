package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aibrid/zipo-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "jwt-for-" + userID, nil
}

// recordingEmailService keeps the codes it mailed so tests can replay them.
type recordingEmailService struct {
	fakeEmailService
	lastCode string
}

func (r *recordingEmailService) SendVerificationCode(ctx context.Context, data *domain.VerificationCodeEmailData) error {
	if r.err != nil {
		return r.err
	}
	r.lastCode = data.Code
	return nil
}

func (r *recordingEmailService) SendResetPasswordCode(ctx context.Context, data *domain.VerificationCodeEmailData) error {
	if r.err != nil {
		return r.err
	}
	r.lastCode = data.Code
	return nil
}

type userFixture struct {
	svc    domain.UserService
	repo   *fakeUserRepo
	emails *recordingEmailService
}

func newUserFixture(users ...*domain.User) *userFixture {
	repo := newFakeUserRepo(users...)
	emails := &recordingEmailService{}
	svc := NewUserService(repo, &fakeTokenIssuer{}, emails, testLogger, 2*time.Second)
	return &userFixture{svc: svc, repo: repo, emails: emails}
}

func TestRegistrationFlow(t *testing.T) {
	fx := newUserFixture()
	ctx := context.Background()

	token, err := fx.svc.SendVerificationCode(ctx, "nia@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Len(t, fx.emails.lastCode, 5)

	// Wrong code is rejected.
	err = fx.svc.VerifyEmail(ctx, token, "00000")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Registration before verification is refused.
	_, _, err = fx.svc.Register(ctx, token, "Nia", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, fx.svc.VerifyEmail(ctx, token, fx.emails.lastCode))

	user, jwt, err := fx.svc.Register(ctx, token, "Nia", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "Nia", user.Name)
	assert.True(t, user.IsSignupCompleted)
	assert.Equal(t, "jwt-for-"+user.ID, jwt)

	// The session token is single-use.
	_, _, err = fx.svc.Register(ctx, token, "Nia", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendVerificationCode_RegisteredEmailConflicts(t *testing.T) {
	fx := newUserFixture(&domain.User{
		ID: "u1", Email: "taken@example.com", IsSignupCompleted: true,
	})

	_, err := fx.svc.SendVerificationCode(context.Background(), "taken@example.com")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSendVerificationCode_MailFailureSurfaces(t *testing.T) {
	fx := newUserFixture()
	fx.emails.err = errors.New("ses down")

	_, err := fx.svc.SendVerificationCode(context.Background(), "nia@example.com")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)
	fx := newUserFixture(&domain.User{
		ID:                "u1",
		Email:             "nia@example.com",
		PasswordHash:      string(hash),
		IsSignupCompleted: true,
	})
	ctx := context.Background()

	user, jwt, err := fx.svc.Login(ctx, "nia@example.com", "right-password")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "jwt-for-u1", jwt)

	_, _, err = fx.svc.Login(ctx, "nia@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = fx.svc.Login(ctx, "nobody@example.com", "right-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_PendingSignupRejected(t *testing.T) {
	fx := newUserFixture(&domain.User{
		ID: "u1", Email: "pending@example.com", IsSignupCompleted: false,
	})

	_, _, err := fx.svc.Login(context.Background(), "pending@example.com", "whatever")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPasswordFlow(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)
	fx := newUserFixture(&domain.User{
		ID:                "u1",
		Email:             "nia@example.com",
		PasswordHash:      string(hash),
		IsSignupCompleted: true,
	})
	ctx := context.Background()

	token, err := fx.svc.SendResetPasswordMail(ctx, "nia@example.com")
	require.NoError(t, err)
	require.Len(t, fx.emails.lastCode, 5)

	// Resetting before the code is verified is refused.
	err = fx.svc.ResetPassword(ctx, token, "new-password")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, fx.svc.VerifyResetPasswordCode(ctx, token, fx.emails.lastCode))
	require.NoError(t, fx.svc.ResetPassword(ctx, token, "new-password"))

	_, _, err = fx.svc.Login(ctx, "nia@example.com", "new-password")
	assert.NoError(t, err)
	_, _, err = fx.svc.Login(ctx, "nia@example.com", "old-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The reset session is gone.
	err = fx.svc.ResetPassword(ctx, token, "another-password")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendResetPasswordMail_UnknownEmail(t *testing.T) {
	fx := newUserFixture()
	_, err := fx.svc.SendResetPasswordMail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
