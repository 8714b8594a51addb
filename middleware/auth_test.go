package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/judging-system/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func judgeClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		ClaimUserID:  7,
		ClaimRole:    string(models.RoleJudge),
		ClaimJudgeID: 3,
		"exp":        exp.Unix(),
		"iat":        time.Now().Unix(),
	}
}

func protected(roles ...models.UserRole) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		judgeID, _ := GetJudgeIDFromContext(r.Context())
		userID, _ := GetUserIDFromContext(r.Context())
		if userID == 7 && judgeID == 3 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(testSecret)(RequireRole(roles...)(final))
}

func TestAuthenticate(t *testing.T) {
	valid := signToken(t, testSecret, judgeClaims(time.Now().Add(time.Hour)))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		roles  []models.UserRole
		status int
	}{
		{
			name:   "no token",
			setup:  func(r *http.Request) {},
			roles:  []models.UserRole{models.RoleJudge},
			status: http.StatusUnauthorized,
		},
		{
			name:   "bearer header",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) },
			roles:  []models.UserRole{models.RoleJudge},
			status: http.StatusNoContent,
		},
		{
			name: "query parameter",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("token", valid)
				r.URL.RawQuery = q.Encode()
			},
			roles:  []models.UserRole{models.RoleJudge},
			status: http.StatusNoContent,
		},
		{
			name:   "malformed header",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Token "+valid) },
			roles:  []models.UserRole{models.RoleJudge},
			status: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, "other", judgeClaims(time.Now().Add(time.Hour))))
			},
			roles:  []models.UserRole{models.RoleJudge},
			status: http.StatusUnauthorized,
		},
		{
			name: "expired",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, judgeClaims(time.Now().Add(-time.Minute))))
			},
			roles:  []models.UserRole{models.RoleJudge},
			status: http.StatusUnauthorized,
		},
		{
			name:   "wrong role",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) },
			roles:  []models.UserRole{models.RoleAdmin},
			status: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/judge/context", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			protected(tt.roles...).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestContextGetters(t *testing.T) {
	ctx := WithClaims(t.Context(), jwt.MapClaims{
		ClaimUserID: float64(1),
		ClaimRole:   string(models.RoleAdmin),
	})

	id, err := GetUserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	role, err := GetUserRoleFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	_, err = GetJudgeIDFromContext(ctx)
	assert.Error(t, err, "admin tokens carry no judge id")

	_, err = GetUserIDFromContext(t.Context())
	assert.ErrorIs(t, err, errNoClaims)
}
