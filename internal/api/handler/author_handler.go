package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/biblioteca/library-system/internal/core/ports"
)

type AuthorHandler struct {
	authorService ports.AuthorService
}

func NewAuthorHandler(authorService ports.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

type authorRequest struct {
	Name        string     `json:"name" validate:"required"`
	Nationality string     `json:"nationality"`
	BirthDate   *time.Time `json:"birth_date"`
	Biography   string     `json:"biography"`
}

type updateAuthorRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1"`
	Nationality *string    `json:"nationality"`
	BirthDate   *time.Time `json:"birth_date"`
	Biography   *string    `json:"biography"`
}

// List handles GET /authors.
//
// @Summary      List all authors
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Author
// @Router       /authors [get]
func (h *AuthorHandler) List(c echo.Context) error {
	authors, err := h.authorService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authors)
}

// Get handles GET /authors/:id.
//
// @Summary      Get an author by id
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Author id"
// @Success      200  {object}  domain.Author
// @Failure      404  {object}  map[string]string
// @Router       /authors/{id} [get]
func (h *AuthorHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	author, err := h.authorService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, author)
}

// Create handles POST /authors.
//
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      authorRequest  true  "Author details"
// @Success      201   {object}  domain.Author
// @Failure      400   {object}  map[string]string
// @Router       /authors [post]
func (h *AuthorHandler) Create(c echo.Context) error {
	var req authorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.authorService.Create(c.Request().Context(), ports.CreateAuthorInput{
		Name:        req.Name,
		Nationality: req.Nationality,
		BirthDate:   req.BirthDate,
		Biography:   req.Biography,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, author)
}

// Update handles PUT /authors/:id.
//
// @Summary      Update an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Author id"
// @Param        body  body      updateAuthorRequest  true  "Fields to update"
// @Success      200   {object}  domain.Author
// @Failure      404   {object}  map[string]string
// @Router       /authors/{id} [put]
func (h *AuthorHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.authorService.Update(c.Request().Context(), id, ports.AuthorUpdate{
		Name:        req.Name,
		Nationality: req.Nationality,
		BirthDate:   req.BirthDate,
		Biography:   req.Biography,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, author)
}

// Delete handles DELETE /authors/:id.
//
// @Summary      Delete an author
// @Tags         authors
// @Security     BearerAuth
// @Param        id  path  int  true  "Author id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.authorService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
