package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrCredentialsRequired = errors.New("email_and_password_required")
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrAdminOnly           = errors.New("admin_only")
	ErrPasswordTooShort    = errors.New("password_too_short")
	ErrEmailExists         = errors.New("email_already_exists")
	ErrTokenRevoked        = errors.New("token_revoked")
)

type NewAdmin struct {
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
}

type Store interface {
	audit.Recorder
	// UpsertTelegramUser creates the user for a telegram id or refreshes the
	// profile fields that are present. created reports a fresh insert.
	UpsertTelegramUser(ctx context.Context, tg TelegramUser) (user *coaching.User, created bool, err error)
	UserByEmail(ctx context.Context, email string) (*coaching.User, error)
	CreateAdmin(ctx context.Context, admin NewAdmin) (*coaching.User, error)
}

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AdminUser is the admin view returned by login and registration.
type AdminUser struct {
	ID        int64         `json:"id"`
	Email     *string       `json:"email"`
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Role      coaching.Role `json:"role"`
}

func adminUserFrom(u *coaching.User) *AdminUser {
	return &AdminUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

type TelegramLoginResponse struct {
	Token string         `json:"token"`
	User  *coaching.User `json:"user"`
}

type AdminLoginResponse struct {
	Token string     `json:"token"`
	User  *AdminUser `json:"user"`
}

type RegisterAdminResponse struct {
	Success bool       `json:"success"`
	Admin   *AdminUser `json:"admin"`
}

type Service struct {
	store          Store
	issuer         *TokenIssuer
	revoker        Revoker
	metricsManager *metrics.Manager
	botToken       string
	initDataMaxAge time.Duration
	userTokenTTL   time.Duration
	adminTokenTTL  time.Duration
	now            func() time.Time
}

// NewService wires the login flows. revoker may be nil, then logout is a
// client side concern only.
func NewService(
	store Store,
	issuer *TokenIssuer,
	revoker Revoker,
	botToken string,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:          store,
		issuer:         issuer,
		revoker:        revoker,
		metricsManager: metricsManager,
		botToken:       botToken,
		initDataMaxAge: InitDataMaxAge,
		userTokenTTL:   UserTokenTTL,
		adminTokenTTL:  AdminTokenTTL,
		now:            time.Now,
	}
}

// SetLifetimes overrides token and initData lifetimes. Zero values keep
// the defaults.
func (s *Service) SetLifetimes(userTokenTTL, adminTokenTTL, initDataMaxAge time.Duration) {
	if userTokenTTL > 0 {
		s.userTokenTTL = userTokenTTL
	}
	if adminTokenTTL > 0 {
		s.adminTokenTTL = adminTokenTTL
	}
	if initDataMaxAge > 0 {
		s.initDataMaxAge = initDataMaxAge
	}
}

func (s *Service) countLogin(kind string, err error) {
	if s.metricsManager == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	s.metricsManager.CounterLogins.WithLabelValues(kind, result).Inc()
}

func (s *Service) TelegramLogin(ctx context.Context, rawInitData string) (_ *TelegramLoginResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.telegramLogin")
	defer func() {
		s.countLogin("telegram", err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	initData, err := ValidateInitData(rawInitData, s.botToken, s.initDataMaxAge, s.now())
	if err != nil {
		return nil, err
	}
	if initData.User == nil || initData.User.ID == 0 {
		return nil, ErrInvalidUserPayload
	}
	span.SetAttributes(attribute.Int64("telegram.id", initData.User.ID))

	user, created, err := s.store.UpsertTelegramUser(ctx, *initData.User)
	if err != nil {
		return nil, fmt.Errorf("upsert telegram user: %w", err)
	}
	if created {
		log.Printf("new mini-app user %d for telegram id %d", user.ID, initData.User.ID)
	}

	role := user.Role
	if role == "" {
		role = coaching.RoleUser
	}
	token, _, err := s.issuer.Issue(user.ID, string(role), s.userTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TelegramLoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *Service) AdminLogin(ctx context.Context, email, password, ip string) (_ *AdminLoginResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.adminLogin")
	defer func() {
		s.countLogin("admin", err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, coaching.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if user.Role != coaching.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(user.ID, string(user.Role), s.adminTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddAuditLog(ctx, audit.Entry{
		AdminID: user.ID,
		Action:  audit.ActionAdminLogin,
		IP:      ip,
	}); err != nil {
		log.Errorf("audit admin login %d: %s", user.ID, err)
	}

	return &AdminLoginResponse{
		Token: token,
		User:  adminUserFrom(user),
	}, nil
}

type RegisterAdminRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (s *Service) RegisterAdmin(ctx context.Context, callerID int64, ip string, req RegisterAdminRequest) (_ *RegisterAdminResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.registerAdmin")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}
	if len(req.Password) < pkg.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.store.UserByEmail(ctx, email)
	if err != nil && !errors.Is(err, coaching.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateAdmin(ctx, NewAdmin{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return nil, err
	}

	entry := audit.Entry{
		AdminID: callerID,
		Action:  audit.ActionAdminCreate,
		Details: map[string]any{"email": email},
		IP:      ip,
	}.OnUser(created.ID)
	if err := s.store.AddAuditLog(ctx, entry); err != nil {
		log.Errorf("audit admin create %d: %s", created.ID, err)
	} else if s.metricsManager != nil {
		s.metricsManager.CounterAdminActions.WithLabelValues(string(entry.Action)).Inc()
	}

	return &RegisterAdminResponse{
		Success: true,
		Admin:   adminUserFrom(created),
	}, nil
}

// Authenticate resolves a bearer token into the caller identity.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.Identity, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return identity.Identity{}, err
	}

	id := identity.Identity{
		UserID:  claims.UID,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}

	if s.revoker != nil && id.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, id.TokenID)
		if err != nil {
			// redis hiccups should not log everyone out
			log.Errorf("check token revocation %s: %s", id.TokenID, err)
		} else if revoked {
			return identity.Identity{}, ErrTokenRevoked
		}
	}

	return id, nil
}

func (s *Service) Logout(ctx context.Context, id identity.Identity) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if s.revoker == nil || id.TokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, id.TokenID, id.ExpiresAt.Sub(s.now()))
}
