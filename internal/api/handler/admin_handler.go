package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mateosvilasboas/infog2-crud/internal/api/metrics"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// AdminHandler exposes the admin-only user registry endpoints. The RBAC
// middleware guarantees the caller holds the admin role before any of these
// run.
type AdminHandler struct {
	userService ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// Create registers a new user with an explicit role.
//
// @Summary      Create a user (admin or client)
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/ [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Register(c.Request().Context(), ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List returns active users, with optional exact-match email/name filters
// and offset/limit pagination.
//
// @Summary      List users
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        email   query     string  false  "Exact email filter"
// @Param        name    query     string  false  "Exact name filter"
// @Param        offset  query     int     false  "Pagination offset (default 0)"
// @Param        limit   query     int     false  "Page size (default 100)"
// @Success      200     {object}  userListResponse
// @Failure      401     {object}  errorResponse
// @Router       /admin/ [get]
func (h *AdminHandler) List(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.userService.List(c.Request().Context(), ports.ListUsersInput{
		Email:  c.QueryParam("email"),
		Name:   c.QueryParam("name"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	resp := userListResponse{Users: make([]userResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes the user identified by id and role.
//
// @Summary      Soft-delete a user by id and role
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int     true  "User id"
// @Param        role  query     string  true  "User role (admin or client)"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	role := c.QueryParam("role")

	if err := h.userService.SoftDelete(c.Request().Context(), uint(id), role); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.WithLabelValues(role).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
