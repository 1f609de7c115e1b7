package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"movieapi/internal/errors"
	"movieapi/internal/model"
	"movieapi/internal/service"
)

var (
	minRating = decimal.Zero
	maxRating = decimal.NewFromInt(10)
)

// MovieHandler handles movie endpoints.
type MovieHandler struct {
	movieService service.MovieService
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// CreateMovieRequest represents a movie creation request.
type CreateMovieRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Playtime    int              `json:"playtime" validate:"required,gt=0"`
	Genre       string           `json:"genre" validate:"max=50"`
	ReleaseYear int              `json:"release_year" validate:"omitempty,gte=1888,lte=2100"`
	Rating      *decimal.Decimal `json:"rating" swaggertype:"number"`
}

// UpdateMovieRequest represents a partial movie update.
type UpdateMovieRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Playtime    *int             `json:"playtime" validate:"omitempty,gt=0"`
	Genre       *string          `json:"genre" validate:"omitempty,max=50"`
	ReleaseYear *int             `json:"release_year" validate:"omitempty,gte=1888,lte=2100"`
	Rating      *decimal.Decimal `json:"rating" swaggertype:"number"`
}

// checkRating enforces the 0..10 range with one decimal place.
func checkRating(r *decimal.Decimal) error {
	if r == nil {
		return nil
	}
	if r.LessThan(minRating) || r.GreaterThan(maxRating) || !r.Equal(r.Round(1)) {
		return fmt.Errorf("%w: rating must be between 0 and 10 with at most one decimal", errors.ErrValidation)
	}
	return nil
}

// CreateMovie godoc
// @Summary Create a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie payload"
// @Success 201 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var req CreateMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := checkRating(req.Rating); err != nil {
		return respondError(c, err)
	}

	movie := &model.Movie{
		Title:       req.Title,
		Playtime:    req.Playtime,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
	}
	if req.Rating != nil {
		movie.Rating = decimal.NewNullDecimal(*req.Rating)
	}

	created, err := h.movieService.CreateMovie(c.Request().Context(), movie)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListMovies godoc
// @Summary List movies, optionally filtered by exact field values
// @Tags movies
// @Produce json
// @Param title query string false "Title"
// @Param genre query string false "Genre"
// @Param release_year query int false "Release year"
// @Success 200 {array} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c echo.Context) error {
	year, err := queryInt(c, "release_year")
	if err != nil {
		return respondError(c, err)
	}
	filter := model.MovieFilter{
		Title:       queryString(c, "title"),
		Genre:       queryString(c, "genre"),
		ReleaseYear: year,
	}

	movies, err := h.movieService.ListMovies(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie godoc
// @Summary Get a movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	movie, err := h.movieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// UpdateMovie godoc
// @Summary Partially update a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} model.Movie
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [patch]
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := checkRating(req.Rating); err != nil {
		return respondError(c, err)
	}

	patch := model.MoviePatch{
		Title:       req.Title,
		Playtime:    req.Playtime,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Rating:      req.Rating,
	}
	movie, err := h.movieService.UpdateMovie(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.movieService.DeleteMovie(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
