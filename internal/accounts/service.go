package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/stridekart/backend/pkg/auth"
	"github.com/stridekart/backend/pkg/auth/session"
	"github.com/stridekart/backend/pkg/config"
	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

func newID() uuid.UUID {
	return uuid.New()
}

// Service defines account behavior beyond registration.
type Service interface {
	LoginLocal(ctx context.Context, req LoginRequest, expectedRole enums.Role) (*LoginResponse, error)
	LoginWithProvider(ctx context.Context, req ProviderLoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accountID uuid.UUID, accessID string) error
	BlockCustomer(ctx context.Context, profileID uuid.UUID, blocked bool) error
	BlockVendor(ctx context.Context, profileID uuid.UUID, blocked bool) error
	SoftDeleteAccount(ctx context.Context, accountID uuid.UUID) error
	GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountDTO, error)
	AddShippingAddress(ctx context.Context, customerProfileID uuid.UUID, req ShippingAddressRequest) (*ShippingAddressDTO, error)
	ListShippingAddresses(ctx context.Context, customerProfileID uuid.UUID) ([]ShippingAddressDTO, error)
	RemoveShippingAddress(ctx context.Context, customerProfileID, addressID uuid.UUID) error
}

type sessionManager interface {
	Generate(ctx context.Context, accountID, accessID string) error
	Revoke(ctx context.Context, accountID, accessID string) error
	RevokeAccount(ctx context.Context, accountID string) error
}

// ServiceParams bundles the dependencies required to build the accounts service.
type ServiceParams struct {
	DB             *db.Client
	Identity       identityVerifier
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

type service struct {
	db       *db.Client
	repo     *Repository
	identity identityVerifier
	session  sessionManager
	jwtCfg   config.JWTConfig
}

// NewService constructs the accounts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "identity verifier required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	return &service{
		db:       params.DB,
		repo:     NewRepository(params.DB.DB()),
		identity: params.Identity,
		session:  params.SessionManager,
		jwtCfg:   params.JWTConfig,
	}, nil
}

// LoginLocal authenticates admin and vendor accounts with local credentials.
// The role gate runs before password verification errors can leak which side
// failed; every rejection reads the same.
func (s *service) LoginLocal(ctx context.Context, req LoginRequest, expectedRole enums.Role) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	account, err := s.repo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	allowed := account.Role == expectedRole || (expectedRole == enums.RoleAdmin && account.IsSuperuser)
	if !allowed || account.PasswordHash == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	valid, err := security.VerifyPassword(req.Password, *account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if account.Role == enums.RoleVendor {
		profile, err := s.repo.FindVendorProfileByAccount(ctx, account.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor profile")
		}
		if profile.IsBlocked || profile.IsDeleted {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "this account has been disabled").
				WithRedirect("/vendor/login")
		}
	}

	return s.establishSession(ctx, account)
}

// LoginWithProvider authenticates customers by verifying the provider ID token.
func (s *service) LoginWithProvider(ctx context.Context, req ProviderLoginRequest) (*LoginResponse, error) {
	claims, err := verifyIdentityToken(ctx, s.identity, req.IDToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindCustomerProfileByExternalUID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no account for this identity, register first")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup customer profile")
	}
	if profile.IsBlocked || profile.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "this account has been disabled").
			WithRedirect("/login")
	}

	account, err := s.repo.FindAccountByID(ctx, profile.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	return s.establishSession(ctx, account)
}

func (s *service) establishSession(ctx context.Context, account *models.Account) (*LoginResponse, error) {
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, account.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	account.LastLoginAt = &now

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		AccountID:   account.ID,
		Role:        account.Role,
		IsSuperuser: account.IsSuperuser,
		JTI:         accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Generate(ctx, account.ID.String(), accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register session")
	}

	return &LoginResponse{
		AccessToken: token,
		Account:     FromAccountModel(account),
	}, nil
}

// Logout tears down the caller's session.
func (s *service) Logout(ctx context.Context, accountID uuid.UUID, accessID string) error {
	if err := s.session.Revoke(ctx, accountID.String(), accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

// BlockCustomer flips the blocked flag and tears down the customer's sessions
// so the block takes effect immediately.
func (s *service) BlockCustomer(ctx context.Context, profileID uuid.UUID, blocked bool) error {
	profile, err := s.repo.FindCustomerProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer profile")
	}
	if err := s.repo.SetCustomerBlocked(ctx, profileID, blocked); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer block flag")
	}
	if blocked {
		return s.revokeAccountSessions(ctx, profile.AccountID)
	}
	return nil
}

// BlockVendor flips the blocked flag on a vendor profile. Blocking also hides
// the vendor's catalog through the visibility scopes and ends their sessions.
func (s *service) BlockVendor(ctx context.Context, profileID uuid.UUID, blocked bool) error {
	profile, err := s.repo.FindVendorProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vendor profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor profile")
	}
	if err := s.repo.SetVendorBlocked(ctx, profileID, blocked); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update vendor block flag")
	}
	if blocked {
		return s.revokeAccountSessions(ctx, profile.AccountID)
	}
	return nil
}

// SoftDeleteAccount marks the account and its profiles deleted in one
// transaction, then revokes every live session.
func (s *service) SoftDeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.repo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if err := repo.SoftDeleteAccount(ctx, accountID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "soft delete account")
		}
		if err := repo.SoftDeleteProfilesForAccount(ctx, accountID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "soft delete profiles")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.revokeAccountSessions(ctx, accountID)
}

func (s *service) revokeAccountSessions(ctx context.Context, accountID uuid.UUID) error {
	if err := s.session.RevokeAccount(ctx, accountID.String()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke account sessions")
	}
	return nil
}

// GetAccount returns the public projection of one account.
func (s *service) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountDTO, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	dto := FromAccountModel(account)
	return &dto, nil
}

// AddShippingAddress stores a new address for the customer.
func (s *service) AddShippingAddress(ctx context.Context, customerProfileID uuid.UUID, req ShippingAddressRequest) (*ShippingAddressDTO, error) {
	address := &models.ShippingAddress{
		ID:                newID(),
		CustomerProfileID: customerProfileID,
		Line1:             strings.TrimSpace(req.Line1),
		Line2:             strings.TrimSpace(req.Line2),
		City:              strings.TrimSpace(req.City),
		State:             strings.TrimSpace(req.State),
		PostalCode:        strings.TrimSpace(req.PostalCode),
	}
	if err := s.repo.CreateShippingAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shipping address")
	}
	dto := FromShippingAddressModel(address)
	return &dto, nil
}

// ListShippingAddresses returns the customer's active addresses.
func (s *service) ListShippingAddresses(ctx context.Context, customerProfileID uuid.UUID) ([]ShippingAddressDTO, error) {
	addresses, err := s.repo.ListShippingAddresses(ctx, customerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shipping addresses")
	}
	out := make([]ShippingAddressDTO, 0, len(addresses))
	for i := range addresses {
		out = append(out, FromShippingAddressModel(&addresses[i]))
	}
	return out, nil
}

// RemoveShippingAddress soft-deletes an address owned by the customer.
func (s *service) RemoveShippingAddress(ctx context.Context, customerProfileID, addressID uuid.UUID) error {
	if err := s.repo.SoftDeleteShippingAddress(ctx, customerProfileID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shipping address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete shipping address")
	}
	return nil
}

