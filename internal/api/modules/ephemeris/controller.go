package ephemeris_module

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListEphemerides handles GET requests for every loaded record
func (s *Service) ListEphemerides(c *gin.Context) {
	records := s.catalog.Records()
	if records == nil {
		records = []*ephemeris.Record{}
	}

	c.JSON(sdk.NewSuccessResponse("Ephemerides retrieved successfully", records).AsGinResponse())
}

// GetToday handles GET requests for the fact shown today
func (s *Service) GetToday(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Today(s.today()))
}

// RefreshEphemerides handles POST requests to reload the records from the store
func (s *Service) RefreshEphemerides(c *gin.Context) {
	if err := s.catalog.Refresh(c.Request.Context()); err != nil {
		s.logger.Error("refresh failed", zap.Error(err))
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to refresh ephemerides", err).AsGinResponse())
		return
	}

	resp := sdk.RefreshResponse{
		Count:    len(s.catalog.Records()),
		LoadedAt: s.catalog.LoadedAt().UTC(),
	}
	c.JSON(sdk.NewSuccessResponse("Ephemerides refreshed successfully", resp).AsGinResponse())
}

// RelayGeneration handles POST requests from clients that cannot hold the generator
// key. The request is forwarded to the generator entrypoint and its answer mirrored
func (s *Service) RelayGeneration(c *gin.Context) {
	var req sdk.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.HasDate() {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Incomplete date fields"})
		return
	}

	if s.relay == nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Generator configuration incomplete"})
		return
	}

	raw, err := s.relay.TriggerGenerationRaw(c.Request.Context(), &sdk.GeneratorRequest{
		TargetDate: req.TargetDate,
		Day:        req.Day,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		var httpErr *sdk.HTTPError
		if errors.As(err, &httpErr) {
			message := httpErr.Message()
			if message == "" {
				message = "Generator request failed"
			}
			c.JSON(httpErr.StatusCode, sdk.ErrorResponse{Error: message})
			return
		}

		s.logger.Error("relay failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GenerateEphemeris handles POST requests to generate and store an ephemeris. An
// empty body generates tomorrow's ephemeris; any other body must carry a full date
func (s *Service) GenerateEphemeris(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	var res *ephemeris.Result
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		res, err = s.generator.GenerateForTomorrow(c.Request.Context())
	} else {
		var req sdk.GeneratorRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}

		date, ok := req.Date()
		if !ok {
			s.fail(c, http.StatusBadRequest, &ephemeris.ValidationError{Message: "incomplete date fields"})
			return
		}
		res, err = s.generator.GenerateForDay(c.Request.Context(), date)
	}

	if err != nil {
		var vErr *ephemeris.ValidationError
		if errors.As(err, &vErr) {
			s.fail(c, http.StatusBadRequest, err)
			return
		}

		s.logger.Error("generation failed", zap.Error(err))
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, sdk.NewGeneratorResponse(res))
}

// fail writes the error body used by the generator entrypoint
func (s *Service) fail(c *gin.Context, status int, err error) {
	c.JSON(status, sdk.ErrorResponse{Error: err.Error(), Timestamp: s.now().UTC()})
}
