package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/controller"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/middleware"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	accountService service.AccountService
}

func NewAuthController(accountService service.AccountService) *AuthController {
	return &AuthController{accountService: accountService}
}

// RegisterRoutes expects a group where authentication is optional.
func (c *AuthController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auths/users/register_user", c.Register)
}

// Register godoc
// @Summary Register a user
// @Description Creates a user and, for position student or teacher, the matching profile. Only a superuser may create another superuser.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "New account"
// @Success 201 {object} dto.UserDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or email already registered"
// @Failure 403 {object} dto.ErrorResponse "Superuser creation by a non-superuser"
// @Router /auths/users/register_user [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	var actor *policy.Actor
	if a, ok := middleware.CurrentActor(ctx); ok {
		actor = &a
	}

	user, err := c.accountService.Register(ctx.Request.Context(), actor, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Ctx(ctx.Request.Context()).Info().Uint("user_id", user.ID).Str("position", req.Position).Msg("User registered")
	ctx.JSON(http.StatusCreated, user)
}
