package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/hockey-db/hockey-db/internal/core/errors"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
)

const msgRunAborted = "Ingestion run aborted before ingesting any game"

// TriggerRunHandler handles POST /v1/runs. The run is synchronous and keeps
// going if the client disconnects; RunTimeout still bounds it.
func (s *Service) TriggerRunHandler(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	report, err := s.Run(ctx)
	if err != nil {
		errorType := httperr.HttpRunAborted
		if errors.Is(err, nhl.ErrSourceUnavailable) {
			errorType = httperr.HttpSourceUnavailable
		}

		slog.Warn("[Ingestion] Triggered run aborted", "error", err)
		c.JSON(http.StatusBadGateway, httperr.ErrorResponse{
			ErrorType: errorType,
			Message:   msgRunAborted,
			Details: map[string]interface{}{
				"error":  err.Error(),
				"report": report,
			},
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
