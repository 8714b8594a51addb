package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/judging-system/models"
	"github.com/golang-jwt/jwt/v4"
)

// JWT claim names shared with the token issuer.
const (
	ClaimUserID  = "user_id"
	ClaimRole    = "role"
	ClaimName    = "name"
	ClaimJudgeID = "judge_id"
)

var errNoClaims = errors.New("user claims not found in context or invalid type")

// WithClaims returns a context carrying claims, as Authenticate would set them.
func WithClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errNoClaims
	}
	return claims, nil
}

// positiveIntClaim handles numeric claims, which decode from JSON as float64.
func positiveIntClaim(claims jwt.MapClaims, name string) (int, error) {
	raw, ok := claims[name]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", name)
	}
	f, ok := raw.(float64)
	if !ok {
		if i, isInt := raw.(int); isInt {
			f = float64(i)
		} else {
			return 0, fmt.Errorf("invalid type for '%s' claim: %T", name, raw)
		}
	}
	if f != float64(int(f)) || f <= 0 {
		return 0, fmt.Errorf("invalid value for '%s' claim: %v", name, f)
	}
	return int(f), nil
}

func roleFromClaims(claims jwt.MapClaims) (models.UserRole, error) {
	raw, ok := claims[ClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", ClaimRole)
	}
	roleStr, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: %T", ClaimRole, raw)
	}
	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RoleJudge:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return positiveIntClaim(claims, ClaimUserID)
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	return roleFromClaims(claims)
}

// GetJudgeIDFromContext returns the judge profile bound to the caller's
// account. Admin tokens carry no judge id.
func GetJudgeIDFromContext(ctx context.Context) (int, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return positiveIntClaim(claims, ClaimJudgeID)
}
