package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"movieapi/internal/auth"
	"movieapi/internal/model"
	"movieapi/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
	Age      int    `json:"age" validate:"gte=0,lte=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female"`
}

// UpdateUserRequest is a partial update; omitted fields keep their stored value.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=50"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
	Age      *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
}

func (r UpdateUserRequest) patch() model.UserPatch {
	return model.UserPatch{
		Username: r.Username,
		Password: r.Password,
		Age:      r.Age,
		Gender:   r.Gender,
	}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {integer} int "New user ID"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &model.User{Username: req.Username, Age: req.Age, Gender: req.Gender}
	created, err := h.svc.CreateUser(c.Request().Context(), user, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created.ID)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// SearchUsers godoc
// @Summary Search users by exact field values
// @Tags users
// @Produce json
// @Param username query string false "Username"
// @Param age query int false "Age"
// @Param gender query string false "Gender" Enums(male, female)
// @Success 200 {array} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/search [get]
func (h *UserHandler) SearchUsers(c echo.Context) error {
	age, err := queryInt(c, "age")
	if err != nil {
		return respondError(c, err)
	}
	filter := model.UserFilter{
		Username: queryString(c, "username"),
		Age:      age,
		Gender:   queryString(c, "gender"),
	}

	users, err := h.svc.SearchUsers(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	return h.update(c, id)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, DetailResponse{Detail: fmt.Sprintf("User: %d, Successfully Deleted.", id)})
}

// Me godoc
// @Summary Get the logged-in user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := auth.UserFromContext(c.Request().Context())
	if !ok {
		return auth.Unauthorized(c)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Partially update the logged-in user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := auth.UserFromContext(c.Request().Context())
	if !ok {
		return auth.Unauthorized(c)
	}
	return h.update(c, user.ID)
}

// DeleteMe godoc
// @Summary Delete the logged-in user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user, ok := auth.UserFromContext(c.Request().Context())
	if !ok {
		return auth.Unauthorized(c)
	}
	if err := h.svc.DeleteUser(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, DetailResponse{Detail: "Successfully Deleted."})
}

func (h *UserHandler) update(c echo.Context, id uint) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.patch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
