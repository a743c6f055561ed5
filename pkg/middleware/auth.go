package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/suby/app/models"
	"github.com/shashiranjanraj/suby/pkg/apperr"
	"github.com/shashiranjanraj/suby/pkg/auth"
	"github.com/shashiranjanraj/suby/pkg/logger"
	"github.com/shashiranjanraj/suby/pkg/response"
)

// VendorFinder resolves a vendor id to its record. Satisfied by the
// vendor repository.
type VendorFinder interface {
	FindByID(ctx context.Context, id string) (models.Vendor, error)
}

// Auth verifies the bearer credential and attaches the resolved vendor id
// to the request context.
//
// The credential is read from the custom "token" header first, then from
// a standard "Authorization: Bearer <token>" header. Signature and expiry
// failures are reported as one undifferentiated 401. A valid token whose
// vendor no longer exists (deleted after issuance) yields 404.
func Auth(tokens *auth.JWT, vendors VendorFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				response.Unauthorized(w, "Authentication token required")
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("token verification failed", "error", err.Error())
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			vendor, err := vendors.FindByID(r.Context(), claims.VendorID)
			if err != nil {
				if apperr.IsNotFound(err) {
					response.NotFound(w, "Vendor not found")
					return
				}
				response.FromError(w, r, err)
				return
			}

			ctx := auth.WithVendorID(r.Context(), vendor.ID.Hex())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the credential from the "token" header, falling back
// to the Authorization header. The custom header wins when both are set.
func extractToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("token")); t != "" {
		return t
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
