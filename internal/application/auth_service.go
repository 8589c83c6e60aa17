package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/charcreator/backend/config"
	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
	"github.com/charcreator/backend/pkg/helpers"
	"github.com/charcreator/backend/pkg/mailer"
	"github.com/charcreator/backend/pkg/mailer/templates"
)

// AuthService owns signup, login, email verification and password reset.
type AuthService struct {
	Pool      *pgxpool.Pool
	Hasher    *helpers.PasswordHasher
	Tokens    *helpers.SessionTokenMinter
	Publisher *helpers.RabbitPublisher
	Redis     *redis.Client
	Logger    *logrus.Logger
	Cfg       *config.Config
}

func NewAuthService(pool *pgxpool.Pool, hasher *helpers.PasswordHasher, tokens *helpers.SessionTokenMinter, pub *helpers.RabbitPublisher, rdb *redis.Client, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		Pool:      pool,
		Hasher:    hasher,
		Tokens:    tokens,
		Publisher: pub,
		Redis:     rdb,
		Logger:    logger,
		Cfg:       cfg,
	}
}

// LoginResult is the outcome of a successful login: the user, the freshly
// inserted session and its raw token for the cookie.
type LoginResult struct {
	User    *entity.User
	Session *entity.Session
	Token   string
}

func verifiedFlagKey(userID int64) string {
	return "user:verified:" + strconv.FormatInt(userID, 10)
}

// Signup creates an unverified user, issues an email-verification code and
// enqueues the verification mail. Returns postgres.ErrAlreadyExists when the
// email is taken.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*entity.User, error) {
	var (
		user *entity.User
		code *entity.Code
	)
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		user, err = sc.Functions.Users.Create(ctx, email, s.Hasher.Hash(password))
		if err != nil {
			return err
		}
		expires := time.Now().Add(s.Cfg.VerifyCodeTTL)
		code, err = sc.Functions.Codes.Create(ctx, user.ID, entity.CodePurposeEmailVerification, &expires, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	s.sendVerifyEmail(ctx, user.Email, code)
	return user, nil
}

// VerifyEmail redeems a verification code and marks the user verified.
// Redemption is a single atomic update, so a code can only ever verify once.
func (s *AuthService) VerifyEmail(ctx context.Context, codeStr string) (*entity.User, error) {
	var user *entity.User
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		code, err := sc.Functions.Codes.GetAndMarkUsed(ctx, codeStr)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				return ErrCodeInvalid
			}
			return err
		}
		if code.Purpose != entity.CodePurposeEmailVerification || code.Expired(time.Now()) {
			sc.MarkRollback()
			return ErrCodeInvalid
		}
		user, err = sc.Functions.Users.MarkEmailVerified(ctx, code.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.cacheVerifiedFlag(ctx, user.ID)
	return user, nil
}

// Login checks credentials by hash equality inside the query, refuses blocked
// accounts, stamps last_login and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result *LoginResult
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		user, err := sc.Functions.Users.VerifyPassword(ctx, email, s.Hasher.Hash(password))
		if err != nil {
			return err
		}
		if user.Blocked {
			sc.MarkRollback()
			return ErrUserBlocked
		}
		user, err = sc.Functions.Users.UpdateLastLogin(ctx, user.ID)
		if err != nil {
			return err
		}
		expiresAt := time.Now().Add(s.Cfg.SessionTTL)
		token, err := s.Tokens.Mint(user.ID, expiresAt)
		if err != nil {
			return err
		}
		sess, err := sc.Functions.Sessions.Create(ctx, user.ID, token, expiresAt)
		if err != nil {
			return err
		}
		result = &LoginResult{User: user, Session: sess, Token: token}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout removes the current session.
func (s *AuthService) Logout(ctx context.Context, sess *entity.Session) error {
	return postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		err := sc.Functions.Sessions.DeleteByID(ctx, sess.ID)
		if errors.Is(err, postgres.ErrNotFound) {
			// Already gone, logout is still a success.
			return nil
		}
		return err
	})
}

// LogoutOthers removes every other session of the same user.
func (s *AuthService) LogoutOthers(ctx context.Context, sess *entity.Session) error {
	return postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		return sc.Functions.Sessions.DeleteAllExcept(ctx, sess)
	})
}

// ResetInit starts a password reset. The outcome is identical whether or not
// the email exists, so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ResetInit(ctx context.Context, email string) error {
	var (
		user *entity.User
		code *entity.Code
	)
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		user, err = sc.Functions.Users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				user = nil
				return nil
			}
			return err
		}
		expires := time.Now().Add(s.Cfg.ResetCodeTTL)
		code, err = sc.Functions.Codes.Create(ctx, user.ID, entity.CodePurposePasswordReset, &expires, "")
		return err
	})
	if err != nil {
		return err
	}
	if user != nil {
		s.sendResetEmail(ctx, user.Email, code)
	}
	return nil
}

// ResetConfirm redeems a reset code and replaces the user's password.
func (s *AuthService) ResetConfirm(ctx context.Context, codeStr, newPassword string) error {
	return postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		code, err := sc.Functions.Codes.GetAndMarkUsed(ctx, codeStr)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				return ErrCodeInvalid
			}
			return err
		}
		if code.Purpose != entity.CodePurposePasswordReset || code.Expired(time.Now()) {
			sc.MarkRollback()
			return ErrCodeInvalid
		}
		_, err = sc.Functions.Users.SetPassword(ctx, code.UserID, s.Hasher.Hash(newPassword))
		return err
	})
}

// ListUsers is the admin listing, paginated.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var users []*entity.User
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		users, err = sc.Functions.Users.List(ctx, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserBlocked is the admin block/unblock switch. Blocking also drops every
// session of the user so the block takes effect immediately.
func (s *AuthService) SetUserBlocked(ctx context.Context, userID int64, blocked bool) (*entity.User, error) {
	var user *entity.User
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		user, err = sc.Functions.Users.SetBlocked(ctx, userID, blocked)
		if err != nil {
			return err
		}
		if blocked {
			return sc.Functions.Sessions.DeleteAllOfUser(ctx, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AdminResetPassword issues a reset code for a user on an admin's behalf and
// emails it out.
func (s *AuthService) AdminResetPassword(ctx context.Context, userID int64) error {
	var (
		user *entity.User
		code *entity.Code
	)
	err := postgres.WithScope(ctx, s.Pool, func(sc *postgres.Scope) error {
		var err error
		user, err = sc.Functions.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		expires := time.Now().Add(s.Cfg.ResetCodeTTL)
		code, err = sc.Functions.Codes.Create(ctx, user.ID, entity.CodePurposePasswordReset, &expires, "")
		return err
	})
	if err != nil {
		return err
	}
	s.sendResetEmail(ctx, user.Email, code)
	return nil
}

func (s *AuthService) cacheVerifiedFlag(ctx context.Context, userID int64) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, verifiedFlagKey(userID), true, 24*time.Hour); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("cache verified flag failed")
	}
}

func (s *AuthService) sendVerifyEmail(ctx context.Context, email string, code *entity.Code) {
	verifyURL := s.Cfg.VerifyEmailURL + "?code=" + code.Code
	opts := []templates.Option{}
	if code.ExpiresAt != nil {
		opts = append(opts, templates.WithExpiresAt(*code.ExpiresAt))
	}
	s.enqueue(ctx, mailer.EmailJob{
		To:       email,
		Template: templates.VerifyEmail,
		Data:     templates.NewVerifyEmailData(s.Cfg, email, verifyURL, opts...),
	})
}

func (s *AuthService) sendResetEmail(ctx context.Context, email string, code *entity.Code) {
	resetURL := s.Cfg.ResetPwdURL + "?code=" + code.Code
	opts := []templates.Option{}
	if code.ExpiresAt != nil {
		opts = append(opts, templates.WithExpiresAt(*code.ExpiresAt))
	}
	s.enqueue(ctx, mailer.EmailJob{
		To:       email,
		Template: templates.ResetPassword,
		Data:     templates.NewResetPasswordData(s.Cfg, email, resetURL, opts...),
	})
}

// enqueue is best effort: a dead broker must not fail signup or reset.
func (s *AuthService) enqueue(ctx context.Context, job mailer.EmailJob) {
	if !s.Cfg.MailSendEnabled || s.Publisher == nil {
		s.Logger.WithField("to", job.To).WithField("template", job.Template).Debug("mail sending disabled, dropping job")
		return
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("enqueue email failed")
	}
}
