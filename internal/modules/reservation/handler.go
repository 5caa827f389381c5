package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intermediaal/e-table-reservation/internal/pkg/response"
	"github.com/intermediaal/e-table-reservation/internal/upstream"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/view/:token", h.View)
	rg.POST("/cancel/:token", h.Cancel)
}

func (h *Handler) View(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Cancel(c *gin.Context) {
	view, err := h.service.Cancel(c.Request.Context(), c.Param("token"))
	if err != nil {
		// The reservation is unchanged; surface the upstream's reason.
		writeUpstreamError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CancelResponse{
		Message:     "Your reservation has been successfully cancelled.",
		Reservation: view,
	})
}

func writeUpstreamError(c *gin.Context, err error) {
	var ae *upstream.APIError
	if !errors.As(err, &ae) {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again.")
		return
	}
	switch ae.Kind {
	case upstream.KindNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", ae.Message)
	case upstream.KindInvalid:
		response.Error(c, http.StatusBadRequest, "CANCEL_REFUSED", ae.Message)
	case upstream.KindServer:
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", ae.Message)
	default:
		response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", ae.Message)
	}
}
