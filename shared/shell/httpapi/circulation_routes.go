package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelloan"
	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/extendloan"
	"github.com/AntonStoeckl/library-circulation-go/features/command/extendreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/fulfillreservation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservetitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/features/query/loanledger"
	"github.com/AntonStoeckl/library-circulation-go/features/query/reservationqueue"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// returnResponse tells the caller which reservation, if any, got the copy that came back.
type returnResponse struct {
	Loan                core.Loan          `json:"loan"`
	PromotedReservation *core.Reservation  `json:"promoted_reservation,omitempty"`
	PromotedLoan        *core.Loan         `json:"promoted_loan,omitempty"`
	ExpiredReservations []core.Reservation `json:"expired_reservations,omitempty"`
}

func (s *server) circulationRoutes(api *gin.RouterGroup) {
	api.POST("/borrow", s.borrowTitle)
	api.POST("/loans/:id/return", s.returnLoan)
	api.POST("/loans/:id/cancel", s.cancelLoan)
	api.POST("/loans/:id/extend", s.extendLoan)
	api.GET("/loans", s.listLoans)
	api.GET("/loans/overdue", s.overdueLoans)
	api.GET("/loans/:id", s.getLoan)

	api.POST("/reserve", s.reserveTitle)
	api.POST("/reservations/:id/cancel", s.cancelReservation)
	api.POST("/reservations/:id/extend", s.extendReservation)
	api.POST("/reservations/:id/fulfill", s.fulfillReservation)
	api.GET("/reservations", s.listReservations)
	api.GET("/reservations/:id", s.getReservation)
}

func (s *server) borrowTitle(c *gin.Context) {
	var request patronTitleRequest
	if err := bind(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := borrowtitle.BuildCommand(request.PatronID, request.TitleID, s.handlers.Policy.LoanDays, actor, s.now())

	result, err := s.handlers.BorrowTitle.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	loan, _ := borrowtitle.LoanFrom(result)
	c.JSON(http.StatusCreated, loan)
}

func (s *server) returnLoan(c *gin.Context) {
	loanID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := returnloan.BuildCommand(loanID, s.handlers.Policy.LoanDays, actor, s.now())

	result, err := s.handlers.ReturnLoan.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	outcome := returnloan.OutcomeFrom(result)
	c.JSON(http.StatusOK, returnResponse{
		Loan:                outcome.Loan,
		PromotedReservation: outcome.PromotedReservation,
		PromotedLoan:        outcome.PromotedLoan,
		ExpiredReservations: outcome.ExpiredReservations,
	})
}

func (s *server) cancelLoan(c *gin.Context) {
	loanID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := cancelloan.BuildCommand(loanID, s.handlers.Policy.LoanDays, actor, s.now())

	result, err := s.handlers.CancelLoan.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	response := gin.H{"loan_id": loanID, "canceled": true}
	if promoted, ok := cancelloan.PromotedLoanFrom(result); ok {
		response["promoted_loan"] = promoted
	}

	c.JSON(http.StatusOK, response)
}

func (s *server) extendLoan(c *gin.Context) {
	loanID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	var request extendRequest
	if err = bindOptional(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := extendloan.BuildCommand(loanID, orDefault(request.Days, s.handlers.Policy.LoanDays), actor, s.now())

	result, err := s.handlers.ExtendLoan.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	dueAt, _ := extendloan.NewDueAtFrom(result)
	c.JSON(http.StatusOK, gin.H{"loan_id": loanID, "due_at": dueAt})
}

func (s *server) listLoans(c *gin.Context) {
	var request loanListRequest
	if err := bindQuery(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	var status *core.LoanStatus
	if request.Status != "" {
		parsed, err := core.ParseLoanStatus(request.Status)
		if err != nil {
			s.fail(c, err)
			return
		}
		status = &parsed
	}

	s.serveLoans(c, loanledger.BuildQuery(request.PatronID, request.TitleID, status, request.NewestFirst, request.Limit, s.now()))
}

func (s *server) overdueLoans(c *gin.Context) {
	s.serveLoans(c, loanledger.BuildOverdueQuery(s.now()))
}

func (s *server) getLoan(c *gin.Context) {
	loanID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.serveLoans(c, loanledger.BuildLoanQuery(loanID, s.now()))
}

func (s *server) serveLoans(c *gin.Context, query loanledger.Query) {
	result, err := s.handlers.LoanLedger.Handle(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *server) reserveTitle(c *gin.Context) {
	var request patronTitleRequest
	if err := bind(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := reservetitle.BuildCommand(request.PatronID, request.TitleID, s.handlers.Policy.ReservationDays, actor, s.now())

	result, err := s.handlers.ReserveTitle.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	reservation, _ := reservetitle.ReservationFrom(result)
	c.JSON(http.StatusCreated, reservation)
}

func (s *server) cancelReservation(c *gin.Context) {
	reservationID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := cancelreservation.BuildCommand(reservationID, actor, s.now())

	if _, err = s.handlers.CancelReservation.Handle(c.Request.Context(), command); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation_id": reservationID, "status": core.ReservationStatusCancelled})
}

func (s *server) extendReservation(c *gin.Context) {
	reservationID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	var request extendRequest
	if err = bindOptional(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	days := orDefault(request.Days, s.handlers.Policy.ReservationDays)

	result, err := s.handlers.ExtendReservation.Handle(c.Request.Context(), extendreservation.BuildCommand(reservationID, days, actor, s.now()))
	if err != nil {
		s.fail(c, err)
		return
	}

	expiresAt, _ := extendreservation.NewExpiresAtFrom(result)
	c.JSON(http.StatusOK, gin.H{"reservation_id": reservationID, "expires_at": expiresAt})
}

func (s *server) fulfillReservation(c *gin.Context) {
	reservationID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, err := actorFrom(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	command := fulfillreservation.BuildCommand(reservationID, s.handlers.Policy.LoanDays, actor, s.now())

	result, err := s.handlers.FulfillReservation.Handle(c.Request.Context(), command)
	if err != nil {
		s.fail(c, err)
		return
	}

	loan, _ := fulfillreservation.LoanFrom(result)
	c.JSON(http.StatusCreated, loan)
}

func (s *server) listReservations(c *gin.Context) {
	var request reservationListRequest
	if err := bindQuery(c, &request); err != nil {
		s.fail(c, err)
		return
	}

	var status *core.ReservationStatus
	if request.Status != "" {
		parsed, err := core.ParseReservationStatus(request.Status)
		if err != nil {
			s.fail(c, err)
			return
		}
		status = &parsed
	}

	s.serveReservations(c, reservationqueue.BuildQuery(request.PatronID, request.TitleID, status, request.NewestFirst, request.Limit, s.now()))
}

func (s *server) getReservation(c *gin.Context) {
	reservationID, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.serveReservations(c, reservationqueue.BuildReservationQuery(reservationID, s.now()))
}

func (s *server) serveReservations(c *gin.Context, query reservationqueue.Query) {
	result, err := s.handlers.ReservationQueue.Handle(c.Request.Context(), query)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
