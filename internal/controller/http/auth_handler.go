package http

import (
	"net/http"

	"homefind/internal/entity"
	"homefind/internal/usecase"
	"homefind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	LGA         string `json:"lga"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func formatUserResponse(user *entity.User) gin.H {
	return gin.H{
		"id":                 user.ID,
		"email":              user.Email,
		"phone_number":       user.PhoneNumber,
		"full_name":          user.FullName,
		"capabilities":       user.Capabilities,
		"verification_level": user.VerificationLevel,
		"is_active":          user.IsActive,
		"address":            user.Address,
		"city":               user.City,
		"state":              user.State,
		"lga":                user.LGA,
		"created_at":         user.CreatedAt,
	}
}

// Register godoc
// @Summary      Register a new account
// @Description  Create an account with the default capability set. Listing creation requires phone verification afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FullName:    req.FullName,
		Password:    req.Password,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		LGA:         req.LGA,
	})
	if err != nil {
		h.logger.Error("Failed to register user: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": formatUserResponse(user), "token": token})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": formatUserResponse(user), "token": token})
}

// AdminLogin godoc
// @Summary      Log in as an admin
// @Description  Same as login, but the account must hold admin_access
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUseCase.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": formatUserResponse(user), "token": token})
}

// Me godoc
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUseCase.GetUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formatUserResponse(user))
}

// RequestPhoneVerification godoc
// @Summary      Request a phone verification code
// @Description  Issues a 6-digit code valid for ten minutes. A new code can be requested at most once per minute.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/phone/request [post]
func (h *AuthHandler) RequestPhoneVerification(c *gin.Context) {
	if err := h.authUseCase.RequestPhoneVerification(c.Request.Context(), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyPhone godoc
// @Summary      Verify phone number
// @Description  Confirms the 6-digit code and grants the landlord capability set
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body object true "Code" SchemaExample({"code":"123456"})
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /auth/phone/verify [post]
func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required,len=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUseCase.VerifyPhone(c.Request.Context(), c.GetString("user_id"), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, formatUserResponse(user))
}
