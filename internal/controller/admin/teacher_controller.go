package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/controller"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/service"
)

type TeacherController struct {
	teacherService service.TeacherService
}

func NewTeacherController(teacherService service.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

func (c *TeacherController) RegisterRoutes(api *gin.RouterGroup) {
	api.PUT("/teachers/:id/subscription", c.UpdateSubscription)
}

// UpdateSubscription godoc
// @Summary (Admin) Assign or clear a teacher's subscription
// @Description A null subscription_id clears it. Assigning stamps subscribed_at and publishes the change.
// @Tags Admin - Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.UpdateSubscriptionRequest true "Subscription to assign"
// @Success 200 {object} dto.TeacherProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown subscription"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id}/subscription [put]
func (c *TeacherController) UpdateSubscription(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubscriptionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.UpdateSubscription(ctx.Request.Context(), actor, id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, teacher)
}
