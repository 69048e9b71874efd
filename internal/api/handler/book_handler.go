package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/core/ports"
)

type BookHandler struct {
	bookService ports.BookService
}

func NewBookHandler(bookService ports.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type bookRequest struct {
	Title           string `json:"title" validate:"required"`
	ISBN            string `json:"isbn" validate:"omitempty,max=20"`
	PublicationYear int    `json:"publication_year"`
	Genre           string `json:"genre"`
	TotalCopies     int    `json:"total_copies" validate:"gte=0"`
	AuthorID        *int64 `json:"author_id"`
}

type updateBookRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=1"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=20"`
	PublicationYear *int    `json:"publication_year"`
	Genre           *string `json:"genre"`
	TotalCopies     *int    `json:"total_copies" validate:"omitempty,gte=0"`
	AvailableCopies *int    `json:"available_copies" validate:"omitempty,gte=0"`
	AuthorID        *int64  `json:"author_id"`
}

// List handles GET /books.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Book
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.bookService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Get handles GET /books/:id.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book id"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	book, err := h.bookService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /books.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.bookService.Create(c.Request().Context(), ports.CreateBookInput{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Genre:           req.Genre,
		TotalCopies:     req.TotalCopies,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /books/:id.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Book id"
// @Param        body  body      updateBookRequest  true  "Fields to update"
// @Success      200   {object}  domain.Book
// @Failure      404   {object}  map[string]string
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.bookService.Update(c.Request().Context(), id, ports.BookUpdate{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Genre:           req.Genre,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /books/:id.
//
// @Summary      Delete a book
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  int  true  "Book id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.bookService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
