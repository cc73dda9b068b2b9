package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hawkcentral/campus-events/config"
	"github.com/hawkcentral/campus-events/internal/domain/entity"
	repo "github.com/hawkcentral/campus-events/internal/domain/repository"
	"github.com/hawkcentral/campus-events/pkg/helpers"
	"github.com/hawkcentral/campus-events/pkg/mailer"
	mailtpl "github.com/hawkcentral/campus-events/pkg/mailer/templates"
	"github.com/hawkcentral/campus-events/pkg/metrics"
	"github.com/hawkcentral/campus-events/pkg/sanitize"
)

// JobPublisher puts background jobs on the queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService owns the credential store flows: signup, login, sessions and password reset.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Mail   JobPublisher
	Config *config.Config
	Logger *logrus.Logger

	now func() time.Time
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, mail JobPublisher, cfg *config.Config, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:   repo,
		JWT:    jwt,
		Redis:  rdb,
		Mail:   mail,
		Config: cfg,
		Logger: logger,
		now:    time.Now,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// RequestMeta describes where a request came from, for notification emails.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type SignupInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	StudentID      *string
	Major          *string
	GraduationYear *int
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitize.Text(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *UserService) hashPassword(plain string) (string, error) {
	hash, err := helpers.HashPassword(plain, s.Config.BcryptCost)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return "", ErrInvalidInput
	}
	return hash, err
}

// Signup creates a normal_user account.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:          email,
		PasswordHash:   hash,
		FirstName:      sanitize.Text(in.FirstName),
		LastName:       sanitize.Text(in.LastName),
		Role:           entity.RoleNormalUser,
		StudentID:      optionalText(in.StudentID),
		Major:          optionalText(in.Major),
		GraduationYear: in.GraduationYear,
	}
	if u.FirstName == "" || u.LastName == "" {
		return nil, ErrInvalidInput
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user signed up")
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithError(err).Error("login lookup failed")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) sessionTTL() time.Duration {
	if s.JWT != nil && s.JWT.RefreshTTL > 0 {
		return s.JWT.RefreshTTL
	}
	return 24 * time.Hour
}

func (s *UserService) generatePair(u *entity.User, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID.String(), string(u.Role), sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID.String(), string(u.Role), sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.generatePair(u, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID.String())
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID.String(),
			"email":      u.Email,
			"role":       string(u.Role),
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.sessionTTL())
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens. The role is re-read from
// the store so a changed role takes effect on the next refresh.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	id, err := entity.ParseID(claims.UserID)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	key := helpers.SessionKey(u.ID.String())
	if s.Redis != nil {
		sid, rErr := s.Redis.HGet(ctx, key, "sid").Result()
		if rErr != nil || sid != claims.SessionID {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	pair, err := s.generatePair(u, sid)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if s.Redis != nil {
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"role":       string(u.Role),
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.sessionTTL())
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return u, pair, nil
}

// Logout drops the redis session so outstanding tokens stop verifying.
func (s *UserService) Logout(ctx context.Context, userID entity.ID) error {
	if s.Redis == nil {
		return nil
	}
	return helpers.RedisDel(ctx, s.Redis, helpers.SessionKey(userID.String()))
}

func (s *UserService) GetProfile(ctx context.Context, userID entity.ID) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ForgotPassword stores a fresh reset token on the account and queues the
// reset email. Unknown addresses are not reported to the caller.
func (s *UserService) ForgotPassword(ctx context.Context, email string, meta RequestMeta) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		s.Logger.Debug("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := helpers.RandomHex(32)
	if err != nil {
		return err
	}
	expiry := s.now().Add(s.Config.ResetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return err
	}

	data := mailtpl.NewForgotPasswordData(s.Config, u.FirstName, u.Email, s.Config.ResetPasswordLink(token), expiry,
		mailtpl.WithIP(meta.IP), mailtpl.WithUserAgent(meta.UserAgent), mailtpl.WithTime(s.now()))
	s.enqueue(ctx, mailer.EmailJob{To: u.Email, Template: mailtpl.ForgotPassword, Data: data})
	return nil
}

// ResetPassword swaps the password for a holder of a valid token, clears the
// token and ends any live session.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string, meta RequestMeta) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}
	u, err := s.Repo.GetByResetToken(ctx, token, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if !u.ResetTokenValid(token, s.now()) {
		return ErrInvalidResetToken
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := s.Logout(ctx, u.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("drop session after reset failed")
	}

	data := mailtpl.NewPasswordChangedData(s.Config, u.FirstName, u.Email,
		mailtpl.WithIP(meta.IP), mailtpl.WithUserAgent(meta.UserAgent), mailtpl.WithTime(s.now()))
	s.enqueue(ctx, mailer.EmailJob{To: u.Email, Template: mailtpl.PasswordChanged, Data: data})
	s.Logger.WithField("user_id", u.ID).Info("password reset")
	return nil
}

func (s *UserService) enqueue(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil || !s.Config.MailSendEnabled {
		s.Logger.WithField("template", job.Template).Warn("mail queue disabled, email not sent")
		metrics.EmailJobs.WithLabelValues(job.Template, "skipped").Inc()
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("template", job.Template).Error("enqueue email failed")
		metrics.EmailJobs.WithLabelValues(job.Template, "failed").Inc()
		return
	}
	metrics.EmailJobs.WithLabelValues(job.Template, "queued").Inc()
}
