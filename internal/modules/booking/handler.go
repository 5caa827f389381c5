package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intermediaal/e-table-reservation/internal/middleware"
	"github.com/intermediaal/e-table-reservation/internal/pkg/response"
	"github.com/intermediaal/e-table-reservation/internal/pkg/token"
	"github.com/intermediaal/e-table-reservation/internal/upstream"
	"github.com/intermediaal/e-table-reservation/internal/wizard"
)

type Handler struct {
	service *Service
	tokens  *token.Service
}

func NewHandler(service *Service, tokens *token.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/business/:slug/sessions", h.StartSession)

	s := rg.Group("/sessions/:sid")
	s.Use(middleware.SessionAuth(h.tokens))
	{
		s.GET("", h.GetState)
		s.PATCH("/draft", h.PatchDraft)
		s.POST("/advance", h.Advance)
		s.POST("/retreat", h.Retreat)
		s.POST("/submit", h.Submit)
		s.GET("/calendar", h.Calendar)
	}
}

func (h *Handler) StartSession(c *gin.Context) {
	resp, err := h.service.StartSession(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) GetState(c *gin.Context) {
	view, err := h.service.GetState(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) PatchDraft(c *gin.Context) {
	var req PatchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	view, err := h.service.PatchDraft(c.Request.Context(), c.Param("sid"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Advance(c *gin.Context) {
	view, err := h.service.Advance(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Retreat(c *gin.Context) {
	view, err := h.service.Retreat(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Submit(c *gin.Context) {
	resp, err := h.service.Submit(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Calendar(c *gin.Context) {
	view, err := h.service.CalendarMonth(c.Request.Context(), c.Param("sid"), c.Query("month"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
	case errors.Is(err, ErrBookingInactive):
		response.Error(c, http.StatusForbidden, "BOOKING_INACTIVE", "Online booking is disabled for this business")
	case errors.Is(err, ErrBadMonth):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid calendar month, expected YYYY-MM")
	case errors.Is(err, wizard.ErrGuestsOutOfRange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Party size is out of range")
	case errors.Is(err, wizard.ErrDateInvalid):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date is missing or in the past")
	case errors.Is(err, wizard.ErrTimeRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Select a time first")
	case errors.Is(err, wizard.ErrTimeUnavailable):
		response.Error(c, http.StatusConflict, "TIME_UNAVAILABLE", "The selected time is not available")
	case errors.Is(err, wizard.ErrZoneUnavailable):
		response.Error(c, http.StatusConflict, "ZONE_UNAVAILABLE", "The selected zone is not available")
	case errors.Is(err, wizard.ErrContactInvalid):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Contact details are incomplete or invalid")
	case errors.Is(err, wizard.ErrAtFirstStep), errors.Is(err, wizard.ErrAtLastStep):
		response.Error(c, http.StatusConflict, "STEP_BLOCKED", "No further step in that direction")
	case errors.Is(err, wizard.ErrDraftIncomplete):
		response.Error(c, http.StatusConflict, "DRAFT_INCOMPLETE", "The reservation draft no longer matches availability")
	default:
		h.writeUpstreamError(c, err)
	}
}

// writeUpstreamError renders the upstream taxonomy: the display message is
// already chosen by the client, only the HTTP status needs mapping.
func (h *Handler) writeUpstreamError(c *gin.Context, err error) {
	var ae *upstream.APIError
	if !errors.As(err, &ae) {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again.")
		return
	}
	switch ae.Kind {
	case upstream.KindNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", ae.Message)
	case upstream.KindInvalid:
		response.Error(c, http.StatusBadRequest, "UPSTREAM_REJECTED", ae.Message)
	case upstream.KindServer:
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", ae.Message)
	default:
		response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", ae.Message)
	}
}
