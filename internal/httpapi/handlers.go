// Package httpapi exposes the HTTP surface of the price resolution
// service: a login endpoint issuing bearer tokens and the guarded
// price lookup endpoint.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"price-resolution-api/internal/auth"
	"price-resolution-api/internal/logging"
	"price-resolution-api/internal/pricing"
)

// Server bundles the handlers' collaborators.
type Server struct {
	resolver *pricing.Resolver
	auth     *auth.Service
	logger   zerolog.Logger
	now      func() time.Time
}

// NewServer wires the resolver and auth service into a Server.
func NewServer(resolver *pricing.Resolver, authSvc *auth.Service, logger zerolog.Logger) *Server {
	return &Server{
		resolver: resolver,
		auth:     authSvc,
		logger:   logging.Component(logger, "httpapi"),
		now:      time.Now,
	}
}

func (s *Server) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidData, err.Error())
		return
	}

	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.logger.Error().Err(err).Msg("token issuance failed")
		writeError(c, http.StatusInternalServerError, msgInvalidCredentials)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, Username: req.Username})
}

func (s *Server) findPricesHandler(c *gin.Context) {
	var req findPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidData, err.Error())
		return
	}
	if req.StartDate.After(s.now()) {
		writeError(c, http.StatusBadRequest, msgInvalidData, "startDate must not be in the future")
		return
	}

	query := pricing.Query{
		Instant:   req.StartDate.Time,
		ProductID: *req.ProductID,
		BrandID:   *req.BrandID,
	}

	records, err := s.resolver.Resolve(c.Request.Context(), query)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("product_id", query.ProductID).
			Int64("brand_id", query.BrandID).
			Str(requestIDKey, c.GetString(requestIDKey)).
			Msg("price resolution failed")
		writeError(c, http.StatusInternalServerError, msgFindPricesError)
		return
	}

	response := make([]priceResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toPriceResponse(record))
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
