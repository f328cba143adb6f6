package middleware

import (
	"net/http"

	"github.com/stridekart/backend/api/responses"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/logger"
)

const (
	CustomerLoginPath = "/login"
	VendorLoginPath   = "/vendor/login"
	AdminLoginPath    = "/admin/login"
)

// RequireAdmin admits admins and superusers; everyone else gets a 403 with
// the admin login path as the safe landing hint.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role != string(enums.RoleAdmin) && !IsSuperuserFromContext(r.Context()) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "admin access required").
						WithRedirect(AdminLoginPath))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireVendor admits vendor accounts only.
func RequireVendor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(enums.RoleVendor) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "vendor access required").
						WithRedirect(VendorLoginPath))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectSpecialUsers keeps vendors and admins off the customer surface by
// pointing them at their own dashboard. Customers pass through.
func RedirectSpecialUsers(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch RoleFromContext(r.Context()) {
			case string(enums.RoleVendor):
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "use the vendor dashboard").
						WithRedirect("/vendor/dashboard"))
				return
			case string(enums.RoleAdmin):
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "use the admin dashboard").
						WithRedirect("/admin/dashboard"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
