package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, matching the wire contract
	decimal.MarshalJSONWithoutQuotes = true
}

// Router registers the HTTP routes with middleware applied.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger))

	engine.GET("/healthz", s.healthHandler)
	engine.POST("/auth/login", s.loginHandler)

	price := engine.Group("/price", AuthRequired(s.auth))
	price.POST("/findByDateProductIdentifierBrand", s.findPricesHandler)

	return engine
}
