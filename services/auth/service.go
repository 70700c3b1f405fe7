// Package auth registers and authenticates users and resolves bearer tokens
// into identities.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"learnhub/apperrors"
	"learnhub/logger"
	"learnhub/models"
	"learnhub/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

const forgotPasswordMessage = "If an account exists, a reset link has been sent to your email"

type Options struct {
	JWTSecret     string
	TokenTTL      time.Duration
	SaltRound     int
	AdminEmail    string
	AdminPassword string
	ClientURL     string
	DevMode       bool
}

type Service struct {
	db     *gorm.DB
	opts   Options
	mailer utils.Mailer
	log    *logger.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, opts Options, mailer utils.Mailer, log *logger.Logger) *Service {
	if opts.SaltRound < bcrypt.MinCost {
		opts.SaltRound = bcrypt.DefaultCost
	}
	opts.AdminEmail = normalizeEmail(opts.AdminEmail)
	return &Service{db: db, opts: opts, mailer: mailer, log: log.With("service", "auth"), now: time.Now}
}

type Session struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type ForgotPasswordResult struct {
	Message string `json:"message"`
	DevLink string `json:"devLink,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Register creates a student account. The role is never taken from input.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.Invalid("Missing required fields")
	}
	if email == s.opts.AdminEmail {
		return nil, apperrors.Conflict("Email already in use")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	if count > 0 {
		return nil, apperrors.Conflict("Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.SaltRound)
	if err != nil {
		return nil, apperrors.Internal("Failed to process your request", err)
	}

	user := models.User{Name: name, Email: email, Password: string(hash), Role: models.RoleStudent}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Email already in use")
		}
		return nil, apperrors.FromDB(err, "")
	}
	s.log.Info("User registered", "user_id", user.ID)
	return s.session(StoredUser(user))
}

// Login accepts the configured admin credentials or a stored user's.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Invalid("Missing credentials")
	}

	if s.isConfiguredAdmin(email, password) {
		return s.session(ConfiguredAdmin(s.opts.AdminEmail))
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Invalid("Invalid credentials")
		}
		return nil, apperrors.FromDB(err, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Invalid("Invalid credentials")
	}
	return s.session(StoredUser(user))
}

// ForgotPassword stores a one hour reset token and mails the reset link.
// Unknown addresses get the same answer as known ones.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.Invalid("Email is required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ForgotPasswordResult{Message: forgotPasswordMessage}, nil
		}
		return nil, apperrors.FromDB(err, "")
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return nil, apperrors.Internal("Failed to process request", err)
	}
	expiry := s.now().Add(resetTokenTTL)
	if err := s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}

	link := s.resetLink(token, user.Email)
	mail := utils.PasswordResetEmail(link)
	if err := s.mailer.Send(ctx, user.Email, mail.Subject, mail.HTML); err != nil {
		s.log.Error("Failed to send reset email", "user_id", user.ID, "error", err)
		if !s.opts.DevMode {
			return nil, apperrors.Internal("Failed to send reset email", err)
		}
	}

	result := &ForgotPasswordResult{Message: forgotPasswordMessage}
	if s.opts.DevMode {
		result.DevLink = link
		result.Token = token
	}
	return result, nil
}

// ResetPassword replaces the password when the token matches and has not
// expired, then clears the token.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || token == "" || newPassword == "" {
		return apperrors.Invalid("All fields are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND reset_token = ? AND reset_token_expiry > ?", email, token, s.now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Invalid("Invalid or expired reset token")
		}
		return apperrors.FromDB(err, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.opts.SaltRound)
	if err != nil {
		return apperrors.Internal("Failed to reset password", err)
	}
	return apperrors.FromDB(s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"password":           string(hash),
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error, "")
}

// Authenticate resolves a bearer token. Configured admin tokens never touch
// the users table.
func (s *Service) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := ParseJWT(s.opts.JWTSecret, token)
	if err != nil {
		return Identity{}, apperrors.Unauthorized("Invalid or expired token")
	}
	if claims.Subject == AdminSubject {
		if claims.Role != models.RoleAdmin {
			return Identity{}, apperrors.Unauthorized("Invalid token")
		}
		return ConfiguredAdmin(s.opts.AdminEmail), nil
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, apperrors.Unauthorized("Invalid token")
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, apperrors.Unauthorized("Invalid token")
		}
		return Identity{}, apperrors.FromDB(err, "")
	}
	return StoredUser(user), nil
}

// PurgeExpiredResetTokens clears reset tokens past their expiry.
func (s *Service) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", s.now()).
		Updates(map[string]any{"reset_token": nil, "reset_token_expiry": nil})
	return res.RowsAffected, res.Error
}

func (s *Service) session(id Identity) (*Session, error) {
	token, err := GenerateJWT(s.opts.JWTSecret, s.opts.TokenTTL, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &Session{User: id.View(), Token: token}, nil
}

func (s *Service) isConfiguredAdmin(email, password string) bool {
	if s.opts.AdminEmail == "" || s.opts.AdminPassword == "" {
		return false
	}
	return email == s.opts.AdminEmail &&
		subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.AdminPassword)) == 1
}

func (s *Service) resetLink(token, email string) string {
	return strings.TrimRight(s.opts.ClientURL, "/") + "/reset-password?token=" + token + "&email=" + url.QueryEscape(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
