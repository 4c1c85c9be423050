package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/controller"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/service"
	"github.com/rs/zerolog/log"
)

type AccountController struct {
	accountService service.AccountService
}

func NewAccountController(accountService service.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

func (c *AccountController) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/auths/users")
	users.GET("", c.ListUsers)
	users.GET("/:id", c.GetUser)
	users.DELETE("/delete", c.DeleteUsers)
	users.POST("/restore", c.RestoreUsers)
	users.POST("/:id/block", c.BlockUser)
	users.POST("/:id/unblock", c.UnblockUser)
}

// ListUsers godoc
// @Summary (Admin) List users
// @Description Paginated users ordered by id. is_deleted=true lists soft-deleted users instead.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param is_deleted query bool false "List soft-deleted users"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.UserResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "Invalid page"
// @Router /auths/users [get]
func (c *AccountController) ListUsers(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	showDeleted, ok := controller.ShowDeleted(ctx)
	if !ok {
		return
	}

	page, err := c.accountService.ListUsers(ctx.Request.Context(), actor, showDeleted, controller.PageParams(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetUser godoc
// @Summary (Admin) Get a user with its profiles
// @Description Returns the user with its student or teacher profile, the teacher's subscription and whether it expired.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param is_deleted query bool false "Look the user up among soft-deleted users"
// @Success 200 {object} dto.UserDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auths/users/{id} [get]
func (c *AccountController) GetUser(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	showDeleted, ok := controller.ShowDeleted(ctx)
	if !ok {
		return
	}

	user, err := c.accountService.GetUser(ctx.Request.Context(), actor, id, showDeleted)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteUsers godoc
// @Summary (Admin) Soft delete users
// @Description Soft deletes every listed user that is not already deleted. Repeating the call is harmless.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserIDsRequest true "Users to delete"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /auths/users/delete [delete]
func (c *AccountController) DeleteUsers(ctx *gin.Context) {
	c.bulk(ctx, c.accountService.DeleteUsers)
}

// RestoreUsers godoc
// @Summary (Admin) Restore soft-deleted users
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserIDsRequest true "Users to restore"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /auths/users/restore [post]
func (c *AccountController) RestoreUsers(ctx *gin.Context) {
	c.bulk(ctx, c.accountService.RestoreUsers)
}

// BlockUser godoc
// @Summary (Admin) Block a user
// @Description Blocked users keep their data but are rejected by authentication.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 202 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Already blocked"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auths/users/{id}/block [post]
func (c *AccountController) BlockUser(ctx *gin.Context) {
	c.toggle(ctx, c.accountService.Block)
}

// UnblockUser godoc
// @Summary (Admin) Unblock a user
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 202 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Not blocked"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auths/users/{id}/unblock [post]
func (c *AccountController) UnblockUser(ctx *gin.Context) {
	c.toggle(ctx, c.accountService.Unblock)
}

func (c *AccountController) bulk(ctx *gin.Context, op func(context.Context, policy.Actor, []uint) (string, error)) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	var req dto.UserIDsRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	msg, err := op(ctx.Request.Context(), actor, req.UserIDs)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Ctx(ctx.Request.Context()).Info().Uint("actor", actor.UserID).Uints("user_ids", req.UserIDs).Msg(msg)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func (c *AccountController) toggle(ctx *gin.Context, op func(context.Context, policy.Actor, uint) (string, error)) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}

	msg, err := op(ctx.Request.Context(), actor, id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: msg})
}
