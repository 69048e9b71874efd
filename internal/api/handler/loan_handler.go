package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/api/metrics"
	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

type LoanHandler struct {
	loanService ports.LoanService
}

func NewLoanHandler(loanService ports.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

type loanRequest struct {
	BookID        int64      `json:"book_id" validate:"required,gt=0"`
	BorrowerName  string     `json:"borrower_name" validate:"required"`
	BorrowerEmail string     `json:"borrower_email" validate:"required,email"`
	DueDate       *time.Time `json:"due_date"`
}

type updateLoanRequest struct {
	BorrowerName  *string    `json:"borrower_name" validate:"omitempty,min=1"`
	BorrowerEmail *string    `json:"borrower_email" validate:"omitempty,email"`
	DueDate       *time.Time `json:"due_date"`
	Status        *string    `json:"status" validate:"omitempty,oneof=ACTIVE RETURNED LATE"`
}

// List handles GET /loans.
//
// @Summary      List all loans
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Loan
// @Router       /loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	loans, err := h.loanService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loans)
}

// Get handles GET /loans/:id.
//
// @Summary      Get a loan by id
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Loan id"
// @Success      200  {object}  domain.Loan
// @Failure      404  {object}  map[string]string
// @Router       /loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	loan, err := h.loanService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// Create handles POST /loans — checks a book out.
//
// @Summary      Create a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loanRequest  true  "Loan details"
// @Success      201   {object}  domain.Loan
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	var req loanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateLoanInput{
		BookID:        req.BookID,
		BorrowerName:  req.BorrowerName,
		BorrowerEmail: req.BorrowerEmail,
	}
	if req.DueDate != nil {
		input.DueDate = *req.DueDate
	}

	loan, err := h.loanService.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.LoansCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, loan)
}

// Update handles PUT /loans/:id.
//
// @Summary      Update a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Loan id"
// @Param        body  body      updateLoanRequest  true  "Fields to update"
// @Success      200   {object}  domain.Loan
// @Failure      404   {object}  map[string]string
// @Router       /loans/{id} [put]
func (h *LoanHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.LoanStatus
	if req.Status != nil {
		s := domain.LoanStatus(*req.Status)
		status = &s
	}

	loan, err := h.loanService.Update(c.Request().Context(), id, ports.LoanUpdate{
		BorrowerName:  req.BorrowerName,
		BorrowerEmail: req.BorrowerEmail,
		DueDate:       req.DueDate,
		Status:        status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// Return handles PATCH /loans/:id/return — closes the loan and restores the copy.
//
// @Summary      Return a loaned book
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Loan id"
// @Success      200  {object}  domain.Loan
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /loans/{id}/return [patch]
func (h *LoanHandler) Return(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	loan, err := h.loanService.Return(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// Delete handles DELETE /loans/:id.
//
// @Summary      Delete a loan
// @Tags         loans
// @Security     BearerAuth
// @Param        id  path  int  true  "Loan id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /loans/{id} [delete]
func (h *LoanHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.loanService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
