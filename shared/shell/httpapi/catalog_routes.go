package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/features/command/addtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/increasecopies"
	"github.com/AntonStoeckl/library-circulation-go/features/command/removetitle"
	"github.com/AntonStoeckl/library-circulation-go/features/query/titlesincatalog"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

func (s *server) catalogRoutes(api *gin.RouterGroup) {
	api.POST("/titles", s.addTitle)
	api.POST("/titles/:id/copies", s.increaseCopies)
	api.DELETE("/titles/:id", s.removeTitle)
	api.GET("/titles", s.listTitles)
	api.GET("/titles/:id", s.getTitle)
	api.GET("/search", s.listTitles)
	api.GET("/latest-titles", s.latestTitles)
}

func (s *server) addTitle(c *gin.Context) {
	var request addTitleRequest
	if err := bind(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	copies := 1
	if request.Copies != nil {
		copies = *request.Copies
	}

	title := core.Title{
		Title:           request.Title,
		Author:          request.Author,
		ISBN:            request.ISBN,
		Publisher:       request.Publisher,
		PublicationYear: request.PublicationYear,
		Language:        request.Language,
		Category:        request.Category,
	}

	result, err := s.handlers.AddTitle.Handle(c.Request.Context(), addtitle.BuildCommand(title, copies, actor, s.now()))
	if err != nil {
		s.fail(c, err)
		return
	}

	titleID, _ := addtitle.TitleIDFrom(result)
	c.JSON(http.StatusCreated, gin.H{"title_id": titleID})
}

func (s *server) increaseCopies(c *gin.Context) {
	titleID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	var request increaseCopiesRequest
	if err = bind(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.handlers.IncreaseCopies.Handle(c.Request.Context(), increasecopies.BuildCommand(titleID, request.Delta, actor, s.now()))
	if err != nil {
		s.fail(c, err)
		return
	}

	totalCopies, _ := increasecopies.TotalCopiesFrom(result)
	c.JSON(http.StatusOK, gin.H{"title_id": titleID, "total_copies": totalCopies})
}

func (s *server) removeTitle(c *gin.Context) {
	titleID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	if _, err = s.handlers.RemoveTitle.Handle(c.Request.Context(), removetitle.BuildCommand(titleID, actor, s.now())); err != nil {
		s.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *server) listTitles(c *gin.Context) {
	var request titleListRequest
	if err := bindQuery(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	s.serveTitles(c, titlesincatalog.BuildQuery(request.Search, request.Limit, request.Offset))
}

func (s *server) getTitle(c *gin.Context) {
	titleID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.serveTitles(c, titlesincatalog.BuildTitleQuery(titleID))
}

func (s *server) latestTitles(c *gin.Context) {
	s.serveTitles(c, titlesincatalog.BuildLatestQuery())
}

func (s *server) serveTitles(c *gin.Context, query titlesincatalog.Query) {
	result, err := s.handlers.TitlesInCatalog.Handle(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
