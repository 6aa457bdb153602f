package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/repository/models"
)

// manualMockAuthService implements service.AuthService for middleware tests.
type manualMockAuthService struct {
	validateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *manualMockAuthService) GetGoogleLoginURL(state string) string {
	panic("not implemented in mock")
}

func (m *manualMockAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, string, *models.User, error) {
	panic("not implemented in mock")
}

func (m *manualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.validateJWTFunc != nil {
		return m.validateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("validateJWTFunc not set on mock")
}

func (m *manualMockAuthService) CreateJWT(ctx context.Context, user *models.User, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

func (m *manualMockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	panic("not implemented in mock")
}

func (m *manualMockAuthService) EncryptToken(token string) (string, error) {
	panic("not implemented in mock")
}

func (m *manualMockAuthService) DecryptToken(encryptedToken string) (string, error) {
	panic("not implemented in mock")
}

func validClaims(userID, tokenType string) *dto.AuthClaims {
	return &dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newAuthApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/me", handler, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": middleware.UserIDFromCtx(c)})
	})
	return app
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		validate   func(ctx context.Context, token string) (*dto.AuthClaims, error)
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return nil, errors.New("invalid jwt token")
			},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "refresh token rejected",
			authHeader: "Bearer refresh-token",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return validClaims("user-1", "refresh"), nil
			},
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "valid access token",
			authHeader: "Bearer good",
			validate: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
				return validClaims("user-1", "access"), nil
			},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &manualMockAuthService{validateJWTFunc: tt.validate}
			app := newAuthApp(middleware.Protected(mockSvc))

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	mockSvc := &manualMockAuthService{}
	app := newAuthApp(middleware.OptionalAuth(mockSvc))

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuth_InvalidTokenProceedsAnonymously(t *testing.T) {
	mockSvc := &manualMockAuthService{
		validateJWTFunc: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
			return nil, errors.New("expired")
		},
	}
	app := newAuthApp(middleware.OptionalAuth(mockSvc))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer expired")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuth_ValidTokenSetsUserID(t *testing.T) {
	mockSvc := &manualMockAuthService{
		validateJWTFunc: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
			return validClaims("user-42", "access"), nil
		},
	}

	app := fiber.New()
	app.Get("/me", middleware.OptionalAuth(mockSvc), func(c *fiber.Ctx) error {
		return c.SendString(middleware.UserIDFromCtx(c))
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "user-42", string(body[:n]))
}
