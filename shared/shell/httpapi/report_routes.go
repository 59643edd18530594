package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/features/query/audittrail"
	"github.com/AntonStoeckl/library-circulation-go/features/query/circulationstats"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

func (s *server) reportRoutes(api *gin.RouterGroup) {
	api.GET("/stats", s.stats)
	api.GET("/stats/popular", s.popularTitles)
	api.GET("/audit", s.auditTrail)
}

func (s *server) stats(c *gin.Context) {
	result, err := s.handlers.CirculationStats.Handle(c.Request.Context(), circulationstats.BuildQuery(s.now()))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *server) popularTitles(c *gin.Context) {
	var request pageRequest
	if err := bindQuery(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	query := circulationstats.BuildQuery(s.now())
	query.PopularLimit = orDefault(request.Limit, circulationstats.DefaultPopularLimit)

	result, err := s.handlers.CirculationStats.Handle(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"titles": result.MostReserved, "count": len(result.MostReserved)})
}

func (s *server) auditTrail(c *gin.Context) {
	var request auditListRequest
	if err := bindQuery(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	query := audittrail.BuildQuery(request.Limit, request.Offset)

	if request.EntityType != "" {
		entityType := core.EntityType(request.EntityType)
		query.EntityType = &entityType
	}
	query.EntityID = request.EntityID

	result, err := s.handlers.AuditTrail.Handle(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
