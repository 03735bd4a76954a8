package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/aibrid/zipo-server/internal/domain"
)

const userColumns = `id, email, name, photo, password_hash, is_email_verified,
	is_signup_completed, receive_newsletter, new_notifications,
	verify_email_token, verify_email_code, verify_email_expire,
	reset_password_token, reset_password_code, reset_password_expire,
	is_reset_password_code_verified, created_at, updated_at`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, photo, password_hash, is_email_verified,
			is_signup_completed, receive_newsletter, new_notifications,
			verify_email_token, verify_email_code, verify_email_expire,
			reset_password_token, reset_password_code, reset_password_expire,
			is_reset_password_code_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.Photo, u.PasswordHash, u.IsEmailVerified,
		u.IsSignupCompleted, u.ReceiveNewsletter, u.NewNotifications,
		u.VerifyEmailToken, u.VerifyEmailCode, u.VerifyEmailExpire,
		u.ResetPasswordToken, u.ResetPasswordCode, u.ResetPasswordExpire,
		u.IsResetPasswordCodeVerified,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) GetByVerifyToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE verify_email_token = $1 AND verify_email_expire > NOW()`
	return r.getOne(ctx, query, tokenHash)
}

func (r *userRepository) GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > NOW()`
	return r.getOne(ctx, query, tokenHash)
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, photo = $4, password_hash = $5, is_email_verified = $6,
			is_signup_completed = $7, receive_newsletter = $8, new_notifications = $9,
			verify_email_token = $10, verify_email_code = $11, verify_email_expire = $12,
			reset_password_token = $13, reset_password_code = $14, reset_password_expire = $15,
			is_reset_password_code_verified = $16, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.Photo, u.PasswordHash, u.IsEmailVerified,
		u.IsSignupCompleted, u.ReceiveNewsletter, u.NewNotifications,
		u.VerifyEmailToken, u.VerifyEmailCode, u.VerifyEmailExpire,
		u.ResetPasswordToken, u.ResetPasswordCode, u.ResetPasswordExpire,
		u.IsResetPasswordCodeVerified,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) FindByEmails(ctx context.Context, emails []string) ([]*domain.User, error) {
	if len(emails) == 0 {
		return []*domain.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users
		WHERE email = ANY($1) AND is_signup_completed = true`
	return r.list(ctx, query, pq.Array(emails))
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *userRepository) ResetNewNotifications(ctx context.Context, userID string) error {
	query := `UPDATE users SET new_notifications = 0 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) list(ctx context.Context, query string, arg interface{}) ([]*domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var photo, verifyToken, verifyCode, resetToken, resetCode sql.NullString
	var verifyExpire, resetExpire sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &photo, &u.PasswordHash, &u.IsEmailVerified,
		&u.IsSignupCompleted, &u.ReceiveNewsletter, &u.NewNotifications,
		&verifyToken, &verifyCode, &verifyExpire,
		&resetToken, &resetCode, &resetExpire,
		&u.IsResetPasswordCodeVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Photo = photo.String
	u.VerifyEmailToken = verifyToken.String
	u.VerifyEmailCode = verifyCode.String
	u.ResetPasswordToken = resetToken.String
	u.ResetPasswordCode = resetCode.String
	if verifyExpire.Valid {
		u.VerifyEmailExpire = &verifyExpire.Time
	}
	if resetExpire.Valid {
		u.ResetPasswordExpire = &resetExpire.Time
	}
	return u, nil
}
