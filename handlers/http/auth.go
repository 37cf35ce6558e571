package httpHandler

import (
	"net/http"

	"social-server/handlers/middleware"
	"social-server/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	useCase *usecases.AuthUseCase
	log     *zap.Logger
}

func NewAuthHandler(useCase *usecases.AuthUseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: orNop(log)}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	token, user, err := h.useCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Validate handles GET /auth/validate
func (h *AuthHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userId":   middleware.UserID(c),
		"username": middleware.Username(c),
	})
}

// EditProfile handles PUT /auth/edit-profile
func (h *AuthHandler) EditProfile(c *gin.Context) {
	var in usecases.EditProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}

	user, err := h.useCase.EditProfile(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteAccount handles DELETE /auth/delete-account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.useCase.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// GetUsername handles GET /auth/get-username/:id
func (h *AuthHandler) GetUsername(c *gin.Context) {
	name, err := h.useCase.GetUsername(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": name})
}

// SearchUsers handles GET /users/search?query=
func (h *AuthHandler) SearchUsers(c *gin.Context) {
	users, err := h.useCase.SearchUsers(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
