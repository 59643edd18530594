package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type addTitleRequest struct {
	Title           string  `json:"title" form:"title"`
	Author          string  `json:"author" form:"author"`
	ISBN            *string `json:"isbn" form:"isbn"`
	Publisher       *string `json:"publisher" form:"publisher"`
	PublicationYear *int    `json:"publication_year" form:"publication_year"`
	Language        *string `json:"language" form:"language"`
	Category        *string `json:"category" form:"category"`
	Copies          *int    `json:"copies" form:"copies"`
}

type increaseCopiesRequest struct {
	Delta int `json:"delta" form:"delta"`
}

type registerPatronRequest struct {
	Name        string  `json:"name" form:"name"`
	Email       string  `json:"email" form:"email"`
	CardNumber  *string `json:"card_number" form:"card_number"`
	Affiliation *string `json:"affiliation" form:"affiliation"`
	Phone       *string `json:"phone" form:"phone"`
	Quota       *int    `json:"quota" form:"quota"`
}

type patronTitleRequest struct {
	PatronID int64 `json:"patron_id" form:"patron_id" binding:"required"`
	TitleID  int64 `json:"title_id" form:"title_id" binding:"required"`
}

type extendRequest struct {
	Days int `json:"days" form:"days"`
}

type pageRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

type titleListRequest struct {
	pageRequest
	Search string `form:"q"`
}

type patronListRequest struct {
	pageRequest
	Approved *bool `form:"approved"`
	Active   *bool `form:"active"`
}

type loanListRequest struct {
	PatronID    *int64 `form:"patron_id"`
	TitleID     *int64 `form:"title_id"`
	Status      string `form:"status"`
	NewestFirst bool   `form:"newest_first"`
	Limit       int    `form:"limit"`
}

type reservationListRequest struct {
	PatronID    *int64 `form:"patron_id"`
	TitleID     *int64 `form:"title_id"`
	Status      string `form:"status"`
	NewestFirst bool   `form:"newest_first"`
	Limit       int    `form:"limit"`
}

type auditListRequest struct {
	pageRequest
	EntityType string `form:"entity_type"`
	EntityID   *int64 `form:"entity_id"`
}

// bind reads a JSON or form body, or the query string of a GET.
func bind(c *gin.Context, request any) error {
	if err := c.ShouldBind(request); err != nil {
		return invalidInput(err.Error())
	}

	return nil
}

// bindOptional is bind for endpoints whose body may be left out entirely.
func bindOptional(c *gin.Context, request any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}

	return bind(c, request)
}

func bindQuery(c *gin.Context, request any) error {
	if err := c.ShouldBindQuery(request); err != nil {
		return invalidInput(err.Error())
	}

	return nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidInput("id must be a positive integer")
	}

	return id, nil
}

// orDefault returns fallback for a value the caller left out.
func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}

	return value
}
