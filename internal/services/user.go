package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/nats-io/nuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aibrid/zipo-server/internal/domain"
)

// verificationWindow is how long an emailed code stays valid.
const verificationWindow = 10 * time.Minute

type userService struct {
	userRepo       domain.UserRepository
	tokenIssuer    domain.TokenIssuer
	emailService   domain.EmailService
	logger         *slog.Logger
	newID          func() string
	contextTimeout time.Duration
}

func NewUserService(userRepo domain.UserRepository,
	tokenIssuer domain.TokenIssuer,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		tokenIssuer:    tokenIssuer,
		emailService:   emailService,
		logger:         logger,
		newID:          nuid.Next,
		contextTimeout: timeout,
	}
}

func (s *userService) GetLoggedInUser(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) SendVerificationCode(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get user by email: %w", err)
	}
	if user != nil && user.IsSignupCompleted {
		return "", domain.ErrConflict
	}

	token, tokenHash, err := newSessionToken()
	if err != nil {
		return "", err
	}
	code, err := newVerificationCode()
	if err != nil {
		return "", err
	}
	expire := time.Now().Add(verificationWindow)

	created := false
	if user == nil {
		user = &domain.User{ID: s.newID(), Email: email, CreatedAt: time.Now()}
		created = true
	}
	user.VerifyEmailToken = tokenHash
	user.VerifyEmailCode = hashCode(code)
	user.VerifyEmailExpire = &expire
	user.IsEmailVerified = false

	if created {
		err = s.userRepo.Create(ctx, user)
	} else {
		err = s.userRepo.Update(ctx, user)
	}
	if err != nil {
		return "", fmt.Errorf("save registration session: %w", err)
	}

	err = s.emailService.SendVerificationCode(ctx, &domain.VerificationCodeEmailData{
		Email: email,
		Name:  user.Name,
		Code:  code,
	})
	if err != nil {
		return "", fmt.Errorf("send verification code: %w", err)
	}
	return token, nil
}

func (s *userService) ResendVerificationCode(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByVerifyToken(ctx, hashToken(token))
	if err != nil {
		return "", err
	}
	return s.SendVerificationCode(ctx, user.Email)
}

func (s *userService) VerifyEmail(ctx context.Context, token, code string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByVerifyToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if user.VerifyEmailCode != hashCode(code) {
		return domain.ErrInvalidInput
	}

	user.IsEmailVerified = true
	user.VerifyEmailCode = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	return nil
}

func (s *userService) Register(ctx context.Context, token, name, password string) (*domain.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByVerifyToken(ctx, hashToken(token))
	if err != nil {
		return nil, "", err
	}
	if !user.IsEmailVerified {
		return nil, "", domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user.Name = name
	user.PasswordHash = string(hash)
	user.IsSignupCompleted = true
	user.VerifyEmailToken = ""
	user.VerifyEmailExpire = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("complete signup: %w", err)
	}

	jwt, err := s.tokenIssuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	err = s.emailService.SendWelcomeMessage(ctx, &domain.WelcomeEmailData{Email: user.Email, Name: user.Name})
	if err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "user", user.ID, "err", err)
	}
	return user, jwt, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}
	if !user.IsSignupCompleted {
		return nil, "", domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthorized
	}

	jwt, err := s.tokenIssuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, jwt, nil
}

func (s *userService) SendResetPasswordMail(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !user.IsSignupCompleted {
		return "", domain.ErrNotFound
	}

	token, tokenHash, err := newSessionToken()
	if err != nil {
		return "", err
	}
	code, err := newVerificationCode()
	if err != nil {
		return "", err
	}
	expire := time.Now().Add(verificationWindow)

	user.ResetPasswordToken = tokenHash
	user.ResetPasswordCode = hashCode(code)
	user.ResetPasswordExpire = &expire
	user.IsResetPasswordCodeVerified = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("save reset session: %w", err)
	}

	err = s.emailService.SendResetPasswordCode(ctx, &domain.VerificationCodeEmailData{
		Email: user.Email,
		Name:  user.Name,
		Code:  code,
	})
	if err != nil {
		return "", fmt.Errorf("send reset code: %w", err)
	}
	return token, nil
}

func (s *userService) ResendResetPasswordMail(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByResetToken(ctx, hashToken(token))
	if err != nil {
		return "", err
	}
	return s.SendResetPasswordMail(ctx, user.Email)
}

func (s *userService) VerifyResetPasswordCode(ctx context.Context, token, code string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if user.ResetPasswordCode != hashCode(code) {
		return domain.ErrInvalidInput
	}

	user.IsResetPasswordCodeVerified = true
	user.ResetPasswordCode = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("mark reset code verified: %w", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, token, password string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByResetToken(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if !user.IsResetPasswordCodeVerified {
		return domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil
	user.IsResetPasswordCodeVerified = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// newSessionToken returns the raw token handed to the client and the
// sha256 hex digest that goes to storage.
func newSessionToken() (token, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func hashCode(code string) string {
	return hashToken(code)
}

// newVerificationCode returns a 5 digit numeric code.
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprint(n.Int64() + 10000), nil
}
