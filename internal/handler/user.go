package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muratozbk/support-desk/internal/auth"
	"github.com/Muratozbk/support-desk/internal/model"
	"github.com/Muratozbk/support-desk/internal/service"
)

type UserHandler struct {
	svc service.UserServicer
}

func NewUserHandler(svc service.UserServicer) *UserHandler {
	return &UserHandler{svc: svc}
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

// authResponse is returned by register and login: the account plus the
// bearer token the client sends on every subsequent request.
type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}
	u, token, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{User: u, Token: token})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{User: u, Token: token})
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
