package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muratozbk/support-desk/internal/auth"
	"github.com/Muratozbk/support-desk/internal/service"
)

type NoteHandler struct {
	svc service.NoteServicer
}

func NewNoteHandler(svc service.NoteServicer) *NoteHandler {
	return &NoteHandler{svc: svc}
}

type createNoteRequest struct {
	Text string `json:"text"`
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.svc.List(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}
	n, err := h.svc.Create(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Text)
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}
