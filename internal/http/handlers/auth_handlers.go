package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/learnsphere/domain"
	"github.com/you/learnsphere/internal/services"
)

// AuthHandlers exposes the two-phase signup/login flows over HTTP. Each
// flow is FORM -> OTP_PENDING -> COMPLETE: the first endpoint validates and
// issues a code, the verify endpoint completes the transition.
type AuthHandlers struct {
	accounts *services.AccountService
	otps     *services.OTPService
	users    domain.UserRepository
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(accounts *services.AccountService, otps *services.OTPService, users domain.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		accounts: accounts,
		otps:     otps,
		users:    users,
	}
}

// SignupRequest represents a signup form submission.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupVerifyRequest completes signup with the emailed code.
type SignupVerifyRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginVerifyRequest completes login with the emailed code.
type LoginVerifyRequest struct {
	Email      string `json:"email" binding:"required"`
	Code       string `json:"code" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// ResendRequest asks for a fresh code for an in-flight flow.
type ResendRequest struct {
	Email   string `json:"email" binding:"required"`
	Purpose string `json:"purpose" binding:"required,oneof=signup login"`
}

// Signup validates the form and issues the signup OTP.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	check, err := h.accounts.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while preparing your account"})
		return
	}
	if !check.OK {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": check.Message})
		return
	}

	if _, err := h.otps.Issue(c.Request.Context(), req.Email, domain.OTPPurposeSignup); err != nil {
		h.otpIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     check.Message,
		"requiresOtp": true,
	})
}

// SignupVerify checks the signup OTP and persists the user. No session is
// issued; the new account still has to log in.
func (h *AuthHandlers) SignupVerify(c *gin.Context) {
	var req SignupVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.otps.Verify(c.Request.Context(), req.Email, domain.OTPPurposeSignup, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify OTP"})
		return
	}
	if !result.OK {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": result.Message})
		return
	}

	user, err := h.accounts.CompleteUserCreation(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "An account with this email already exists"})
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "This username is already taken"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred while creating your account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully!",
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

// Login checks credentials and issues the login OTP.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred during login"})
		return
	}
	if !result.OK {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": result.Message})
		return
	}

	if _, err := h.otps.Issue(c.Request.Context(), req.Email, domain.OTPPurposeLogin); err != nil {
		h.otpIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     result.Message,
		"requiresOtp": true,
	})
}

// LoginVerify checks the login OTP and issues the session.
func (h *AuthHandlers) LoginVerify(c *gin.Context) {
	var req LoginVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.otps.Verify(c.Request.Context(), req.Email, domain.OTPPurposeLogin, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify OTP"})
		return
	}
	if !result.OK {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": result.Message})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect email or password"})
		return
	}

	session, err := h.accounts.CompleteLogin(c.Request.Context(), user, req.RememberMe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "An error occurred during login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Login successful!",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// ResendOTP issues a fresh code for an in-flight flow, limiter permitting.
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := h.otps.Issue(c.Request.Context(), req.Email, domain.OTPPurpose(req.Purpose)); err != nil {
		h.otpIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "A new OTP has been sent"})
}

// Me returns the user behind the current session, if any.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, err := h.accounts.CurrentUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read session"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

// Logout deletes the current session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *AuthHandlers) otpIssueError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRateLimited) {
		msg := strings.TrimPrefix(err.Error(), domain.ErrRateLimited.Error()+": ")
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate OTP"})
}
