package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/learnsphere/internal/infrastructure/auth"
	"github.com/you/learnsphere/internal/infrastructure/repositories"
	"github.com/you/learnsphere/internal/infrastructure/storage"
	"github.com/you/learnsphere/internal/mocks"
	"github.com/you/learnsphere/internal/services"
)

type handlerTestEnv struct {
	router   *gin.Engine
	notifier *mocks.MockNotificationService
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	notifier := mocks.NewMockNotificationService()
	logger := zerolog.Nop()

	requests := services.NewRateLimiter(repositories.NewOTPAttemptRepository(store), services.OTPLimiterConfig())
	logins := services.NewRateLimiter(repositories.NewLoginAttemptRepository(store), services.LoginLimiterConfig())
	users := repositories.NewUserRepository(store)

	otps := services.NewOTPService(repositories.NewOTPRepository(store), requests, logins, notifier, logger, services.DefaultOTPConfig())
	accounts := services.NewAccountService(users, repositories.NewSessionRepository(store), auth.NewLegacyHasher(), logins, logger, services.DefaultSessionConfig())
	leads := services.NewLeadsService(notifier, logger, "info@learnsphere.example")

	ah := NewAuthHandlers(accounts, otps, users)
	lh := NewLeadsHandlers(leads)

	r := gin.New()
	authGroup := r.Group("/auth")
	authGroup.POST("/signup", ah.Signup)
	authGroup.POST("/signup/verify", ah.SignupVerify)
	authGroup.POST("/login", ah.Login)
	authGroup.POST("/login/verify", ah.LoginVerify)
	authGroup.POST("/otp/resend", ah.ResendOTP)
	authGroup.GET("/me", ah.Me)
	authGroup.POST("/logout", ah.Logout)
	api := r.Group("/api")
	api.POST("/apply", lh.Apply)
	api.POST("/contact", lh.Contact)

	return &handlerTestEnv{router: r, notifier: notifier}
}

func (e *handlerTestEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAuthFlow_SignupLoginLogout(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/auth/signup", gin.H{
		"username": "alice", "email": "Alice@Example.com", "password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["requiresOtp"])
	code := env.notifier.LastCode()
	require.Len(t, code, 6)

	w, resp = env.do(t, http.MethodPost, "/auth/signup/verify", gin.H{
		"username": "alice", "email": "Alice@Example.com", "password": "Password123!", "code": code,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])

	// Creation does not authenticate.
	w, _ = env.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = env.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "alice@example.com", "password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["requiresOtp"])
	code = env.notifier.LastCode()

	w, resp = env.do(t, http.MethodPost, "/auth/login/verify", gin.H{
		"email": "alice@example.com", "code": code, "rememberMe": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful!", resp["message"])
	assert.Len(t, resp["token"], 64)

	w, resp = env.do(t, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user = resp["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])

	w, _ = env.do(t, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignup_RejectsWeakPassword(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/auth/signup", gin.H{
		"username": "alice", "email": "a@b.com", "password": "weakpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["message"], "uppercase letter")
	assert.Empty(t, env.notifier.Codes)
}

func TestSignup_MissingFields(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/auth/signup", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestSignupVerify_WrongCode(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/auth/signup", gin.H{
		"username": "alice", "email": "a@b.com", "password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	wrong := "000000"
	if env.notifier.LastCode() == wrong {
		wrong = "000001"
	}
	w, resp := env.do(t, http.MethodPost, "/auth/signup/verify", gin.H{
		"username": "alice", "email": "a@b.com", "password": "Password123!", "code": wrong,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Incorrect OTP. You have 2 attempts left.", resp["message"])

	// The flow recovers with the right code.
	w, _ = env.do(t, http.MethodPost, "/auth/signup/verify", gin.H{
		"username": "alice", "email": "a@b.com", "password": "Password123!", "code": env.notifier.LastCode(),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSignupVerify_RevalidatesAfterResend(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/auth/signup", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, http.MethodPost, "/auth/signup/verify", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "Password123!", "code": env.notifier.LastCode(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A resend mints a signup code for the taken email without any form
	// check; verify must not turn that into a second account.
	w, _ = env.do(t, http.MethodPost, "/auth/otp/resend", gin.H{"email": "alice@example.com", "purpose": "signup"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.do(t, http.MethodPost, "/auth/signup/verify", gin.H{
		"username": "al", "email": "alice@example.com", "password": "weak", "code": env.notifier.LastCode(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username must be at least 3 characters long", resp["message"])

	w, _ = env.do(t, http.MethodPost, "/auth/otp/resend", gin.H{"email": "alice@example.com", "purpose": "signup"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(t, http.MethodPost, "/auth/signup/verify", gin.H{
		"username": "bob", "email": "alice@example.com", "password": "Password123!", "code": env.notifier.LastCode(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "An account with this email already exists", resp["message"])

	// The original account still logs in normally.
	w, _ = env.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "alice@example.com", "password": "Password123!",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "nobody@example.com", "password": "Password123!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password", resp["message"])
}

func TestResendOTP_RateLimited(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/auth/signup", gin.H{
		"username": "alice", "email": "a@b.com", "password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	for i := 0; i < 2; i++ {
		w, _ = env.do(t, http.MethodPost, "/auth/otp/resend", gin.H{"email": "a@b.com", "purpose": "signup"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp := env.do(t, http.MethodPost, "/auth/otp/resend", gin.H{"email": "a@b.com", "purpose": "signup"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many OTP requests. Please wait 10 minutes before trying again.", resp["message"])
}

func TestResendOTP_RejectsUnknownPurpose(t *testing.T) {
	env := newHandlerTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/auth/otp/resend", gin.H{"email": "a@b.com", "purpose": "reset"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
