package rest

import (
	"net/http"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/middleware"
	"campuseats-be/internal/user"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(c, apperr.Validation("name, email and password are required"))
		return
	}

	token, u, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		writeError(c, apperr.Unauthenticated("authorization token required"))
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
