package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/satya-aforv/finance-tracker-sub001/database"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"
)

// AdminAuthMiddleware verifies that the request carries a valid admin access
// token and that the admin still exists and is active. The admin's id and
// role are placed on the request context for handlers.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// Centralized validation checks aud/iss/exp/nbf and revocation
		_, claims, err := utils.ValidateAccessToken(tokenString)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteError(w, http.StatusUnauthorized, "Session expired, please log in again")
				return
			}
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role == "" {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}

		// JSON numbers decode as float64
		var adminID int64
		if rawID, ok := claims["id"]; ok {
			switch v := rawID.(type) {
			case float64:
				adminID = int64(v)
			case int:
				adminID = int64(v)
			case int64:
				adminID = v
			case string:
				var n int64
				_, _ = fmt.Sscanf(v, "%d", &n)
				adminID = n
			}
		}

		var admin models.Admin
		if err := database.DB.First(&admin, adminID).Error; err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Admin not found")
			return
		}
		if !admin.IsActive {
			utils.WriteError(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), utils.AdminIDKey, admin.ID)
		ctx = context.WithValue(ctx, utils.AdminRoleKey, admin.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
