package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mateosvilasboas/infog2-crud/internal/api/metrics"
	"github.com/mateosvilasboas/infog2-crud/internal/core/domain"
	"github.com/mateosvilasboas/infog2-crud/internal/core/ports"
)

// ClientHandler exposes self-registration and the self-service endpoints.
type ClientHandler struct {
	userService ports.UserService
}

func NewClientHandler(userService ports.UserService) *ClientHandler {
	return &ClientHandler{userService: userService}
}

// Register creates a client account. No authentication required; the role is
// always client.
//
// @Summary      Self-register as a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      registerClientRequest  true  "Client details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /client/ [post]
func (h *ClientHandler) Register(c echo.Context) error {
	var req registerClientRequest
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
		Role:     domain.RoleClient,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update changes the caller's own name, email and (optionally) password.
//
// @Summary      Update own profile
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id (must be the caller's)"
// @Param        body  body      updateUserRequest  true  "New profile data"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /client/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	callerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateSelf(c.Request().Context(), callerID, uint(targetID), ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete soft-deletes the caller's own account.
//
// @Summary      Delete own account
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id (must be the caller's)"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /client/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	callerID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.userService.SoftDeleteSelf(c.Request().Context(), callerID, uint(targetID)); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.WithLabelValues(role).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
