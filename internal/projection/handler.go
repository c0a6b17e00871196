package projection

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/hockey-db/hockey-db/internal/api/v1"
	httperr "github.com/hockey-db/hockey-db/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/players/:player_id/events", s.HandlePlayerEvents)
}

// HandlePlayerEvents handles GET /v1/players/:player_id/events
// Query parameters: event_type, player_type, start, end
func (s *Service) HandlePlayerEvents(c *gin.Context) {
	var req v1.PlayerEventsRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.PlayerEvents(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidRequestError,
				Message:   "Invalid player event query",
				Details:   err.Error(),
			})
			return
		}

		slog.Error("[Projection] Player event query failed", "player_id", req.PlayerID, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to query player events",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
