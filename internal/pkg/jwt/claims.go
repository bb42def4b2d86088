package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
)

// IdentityFromContext extracts the authenticated user's id and role from the
// verified JWT claims carried in the request context.
func IdentityFromContext(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || !user.IsValidRole(roleStr) {
		return "", "", fmt.Errorf("role claim is missing or invalid")
	}

	return userID, user.Role(roleStr), nil
}
