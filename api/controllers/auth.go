package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/stridekart/backend/api/middleware"
	"github.com/stridekart/backend/api/responses"
	"github.com/stridekart/backend/api/validators"
	"github.com/stridekart/backend/internal/accounts"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/logger"
)

// RegisterCustomer onboards a shopper from a verified provider token.
func RegisterCustomer(svc accounts.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}

		var payload accounts.RegisterCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.RegisterCustomer(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

// RegisterVendor onboards a vendor shop with local credentials.
func RegisterVendor(svc accounts.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}

		var payload accounts.RegisterVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.RegisterVendor(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

// CustomerLogin signs a customer in with a provider ID token.
func CustomerLogin(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload accounts.ProviderLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		login, err := svc.LoginWithProvider(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, login)
	}
}

// VendorLogin signs a vendor in with local credentials.
func VendorLogin(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return localLogin(svc, logg, enums.RoleVendor)
}

// AdminLogin signs an admin in with local credentials.
func AdminLogin(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return localLogin(svc, logg, enums.RoleAdmin)
}

func localLogin(svc accounts.Service, logg *logger.Logger, expectedRole enums.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var payload accounts.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		login, err := svc.LoginLocal(r.Context(), payload, expectedRole)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, login)
	}
}

// Logout revokes the current access token's session.
func Logout(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		accountID := middleware.AccountIDFromContext(r.Context())
		accessID := middleware.AccessIDFromContext(r.Context())
		if accountID == uuid.Nil || accessID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		if err := svc.Logout(r.Context(), accountID, accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// Me returns the signed-in account.
func Me(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		accountID := middleware.AccountIDFromContext(r.Context())
		if accountID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account context missing"))
			return
		}

		account, err := svc.GetAccount(r.Context(), accountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, account)
	}
}
