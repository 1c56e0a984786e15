package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muratozbk/support-desk/internal/auth"
	"github.com/Muratozbk/support-desk/internal/kafka"
	"github.com/Muratozbk/support-desk/internal/model"
	"github.com/Muratozbk/support-desk/internal/searchindex"
	"github.com/Muratozbk/support-desk/internal/service"
)

type TicketHandler struct {
	svc      service.TicketServicer
	producer kafka.TicketEventProducer
	search   *searchindex.Client
}

func NewTicketHandler(svc service.TicketServicer, producer kafka.TicketEventProducer, search *searchindex.Client) *TicketHandler {
	return &TicketHandler{svc: svc, producer: producer, search: search}
}

type createTicketRequest struct {
	Product     string `json:"product"`
	Description string `json:"description"`
}

// updateTicketRequest carries the patchable fields. Owner and id are not
// accepted; unknown JSON fields are ignored by binding.
type updateTicketRequest struct {
	Product     *string `json:"product,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *TicketHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TicketHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req.Product, req.Description)
	if err != nil {
		failFromErr(c, err)
		return
	}
	h.afterWrite(kafka.EventTicketCreated, t)
	c.JSON(http.StatusCreated, t)
}

func (h *TicketHandler) Update(c *gin.Context) {
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}
	patch := service.TicketPatch{
		Product:     req.Product,
		Description: req.Description,
	}
	if req.Status != nil {
		s := model.TicketStatus(*req.Status)
		patch.Status = &s
	}
	t, err := h.svc.Update(c.Request.Context(), auth.UserID(c), c.Param("id"), patch)
	if err != nil {
		failFromErr(c, err)
		return
	}
	h.afterWrite(kafka.EventTicketUpdated, t)
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) Close(c *gin.Context) {
	t, err := h.svc.Close(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	h.afterWrite(kafka.EventTicketClosed, t)
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	uid := auth.UserID(c)
	id := c.Param("id")
	t, err := h.svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uid, id); err != nil {
		failFromErr(c, err)
		return
	}
	if h.producer != nil {
		h.producer.ProduceTicketEventAsync(kafka.EventTicketDeleted, t)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// afterWrite fans the mutated ticket out to the event topic and the search
// index. Both are best-effort and run off the request path.
func (h *TicketHandler) afterWrite(event string, t *model.Ticket) {
	if h.producer != nil {
		h.producer.ProduceTicketEventAsync(event, t)
	}
	if h.search != nil {
		h.search.IndexTicketAsync(t)
	}
}
