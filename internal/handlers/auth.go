package handlers

import (
	"net/http"

	"postboard/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Ada"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=6,maxbytes=72" example:"secret1"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// @Summary      Register user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Registration payload"
// @Success      200   {object}  TokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /api/users [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}

	token, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, err, "auth_register_failed", "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// @Summary      Log in
// @Description  Unknown email and wrong password produce the same response.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  TokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_login_failed", "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth [get]
// @Security     TokenAuth
func (h *Handler) whoami(c *gin.Context) {
	userID := currentUserID(c)
	u, err := h.services.Whoami(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "auth_whoami_failed", "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, u)
}
