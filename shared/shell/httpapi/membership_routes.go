package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/features/command/approvepatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/changepatronstatus"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/features/query/registeredpatrons"
)

func (s *server) membershipRoutes(api *gin.RouterGroup) {
	api.POST("/patrons", s.registerPatron)
	api.POST("/patrons/:id/approve", s.approvePatron)
	api.POST("/patrons/:id/deactivate", s.changePatronStatus(false))
	api.POST("/patrons/:id/reactivate", s.changePatronStatus(true))
	api.GET("/patrons", s.listPatrons)
	api.GET("/patrons/:id", s.getPatron)
}

func (s *server) registerPatron(c *gin.Context) {
	var request registerPatronRequest
	if err := bind(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := registerpatron.BuildCommand(
		request.Name,
		request.Email,
		request.CardNumber,
		request.Affiliation,
		request.Phone,
		request.Quota,
		actor,
		s.now(),
	)

	result, err := s.handlers.RegisterPatron.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	patron, _ := registerpatron.PatronFrom(result)
	c.JSON(http.StatusCreated, patron)
}

func (s *server) approvePatron(c *gin.Context) {
	patronID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.handlers.ApprovePatron.Handle(c.Request.Context(), approvepatron.BuildCommand(patronID, actor, s.now()))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"patron_id": patronID, "approved": true, "idempotent": result.Idempotent})
}

func (s *server) changePatronStatus(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		patronID, err := pathID(c)
		if err != nil {
			s.fail(c, err)
			return
		}

		actor, err := actorFrom(c)
		if err != nil {
			s.fail(c, err)
			return
		}

		command := changepatronstatus.BuildCommand(patronID, active, actor, s.now())

		result, err := s.handlers.ChangePatronStatus.Handle(c.Request.Context(), command)
		if err != nil {
			s.fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"patron_id": patronID, "active": active, "idempotent": result.Idempotent})
	}
}

func (s *server) listPatrons(c *gin.Context) {
	var request patronListRequest
	if err := bindQuery(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	s.servePatrons(c, registeredpatrons.BuildQuery(request.Approved, request.Active, request.Limit, request.Offset))
}

func (s *server) getPatron(c *gin.Context) {
	patronID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.servePatrons(c, registeredpatrons.BuildPatronQuery(patronID))
}

func (s *server) servePatrons(c *gin.Context, query registeredpatrons.Query) {
	result, err := s.handlers.RegisteredPatrons.Handle(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
