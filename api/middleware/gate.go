package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/api/responses"
	"github.com/stridekart/backend/pkg/auth/session"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/logger"
)

// ProfileLoader is the read surface the gate needs from the accounts layer.
type ProfileLoader interface {
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindCustomerProfileByAccount(ctx context.Context, accountID uuid.UUID) (*models.CustomerProfile, error)
	FindVendorProfileByAccount(ctx context.Context, accountID uuid.UUID) (*models.VendorProfile, error)
}

// ActiveProfileGate runs after Auth on every authenticated route. A blocked
// or deleted profile (or a deleted account) terminates every session of the
// account and answers 401 with the role's login path, so revocation takes
// effect on the very next request. Accounts without a role profile pass.
// The loaded profile id is seeded into the context for handlers.
func ActiveProfileGate(loader ProfileLoader, revoker session.Revoker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			accountID := AccountIDFromContext(ctx)
			if accountID == uuid.Nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			role := RoleFromContext(ctx)
			loginPath := loginPathForRole(role)

			if _, err := loader.FindAccountByID(ctx, accountID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					evict(ctx, revoker, logg, w, accountID, "this account is no longer active", loginPath)
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account"))
				return
			}

			switch role {
			case string(enums.RoleUser):
				profile, err := loader.FindCustomerProfileByAccount(ctx, accountID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						next.ServeHTTP(w, r)
						return
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile"))
					return
				}
				if profile.IsBlocked || profile.IsDeleted {
					evict(ctx, revoker, logg, w, accountID, "this account has been disabled", loginPath)
					return
				}
				ctx = WithProfileID(ctx, profile.ID)

			case string(enums.RoleVendor):
				profile, err := loader.FindVendorProfileByAccount(ctx, accountID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						next.ServeHTTP(w, r)
						return
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile"))
					return
				}
				if profile.IsBlocked || profile.IsDeleted {
					evict(ctx, revoker, logg, w, accountID, "this account has been disabled", loginPath)
					return
				}
				ctx = WithProfileID(ctx, profile.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func evict(ctx context.Context, revoker session.Revoker, logg *logger.Logger, w http.ResponseWriter, accountID uuid.UUID, message, loginPath string) {
	if revoker != nil {
		if err := revoker.RevokeAccount(ctx, accountID.String()); err != nil && logg != nil {
			logg.Error(ctx, "session.revoke_failed", err)
		}
	}
	responses.WriteError(ctx, logg, w,
		pkgerrors.New(pkgerrors.CodeUnauthorized, message).WithRedirect(loginPath))
}

func loginPathForRole(role string) string {
	switch role {
	case string(enums.RoleVendor):
		return VendorLoginPath
	case string(enums.RoleAdmin):
		return AdminLoginPath
	default:
		return CustomerLoginPath
	}
}
