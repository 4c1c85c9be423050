package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/controller"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/lshigami/Edutrack/internal/service"
)

type SubjectController struct {
	subjectService service.SubjectService
}

func NewSubjectController(subjectService service.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

func (c *SubjectController) RegisterRoutes(api *gin.RouterGroup) {
	subjects := api.Group("/subjects")
	subjects.GET("/general_subjects", c.ListGeneralSubjects)
	subjects.GET("/general_subjects/:id", c.GetGeneralSubject)
	subjects.GET("/trackways", c.ListTrackWays)
	subjects.GET("/trackways/:id", c.GetTrackWay)
	subjects.GET("/classes", c.ListClasses)
	subjects.GET("/classes/:id", c.GetClass)
	subjects.GET("/class_subjects", c.ListClassSubjects)
	subjects.GET("/class_subjects/:id", c.GetClassSubject)
}

// ListGeneralSubjects godoc
// @Summary List general subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param is_deleted query bool false "List soft-deleted rows (admins only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.GeneralSubjectResponse]
// @Failure 403 {object} dto.ErrorResponse "is_deleted requested by a non-admin"
// @Failure 404 {object} dto.ErrorResponse "Invalid page"
// @Router /subjects/general_subjects [get]
func (c *SubjectController) ListGeneralSubjects(ctx *gin.Context) {
	list(ctx, c.subjectService.ListGeneralSubjects)
}

// GetGeneralSubject godoc
// @Summary Get a general subject with the classes it is taught in
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "General subject ID"
// @Param is_deleted query bool false "Look among soft-deleted rows (admins only)"
// @Success 200 {object} dto.GeneralSubjectDetailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/general_subjects/{id} [get]
func (c *SubjectController) GetGeneralSubject(ctx *gin.Context) {
	detail(ctx, c.subjectService.GetGeneralSubject)
}

// ListTrackWays godoc
// @Summary List track ways with their subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param is_deleted query bool false "List soft-deleted rows (admins only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.TrackWayResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/trackways [get]
func (c *SubjectController) ListTrackWays(ctx *gin.Context) {
	list(ctx, c.subjectService.ListTrackWays)
}

// GetTrackWay godoc
// @Summary Get a track way with its subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Track way ID"
// @Param is_deleted query bool false "Look among soft-deleted rows (admins only)"
// @Success 200 {object} dto.TrackWayResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/trackways/{id} [get]
func (c *SubjectController) GetTrackWay(ctx *gin.Context) {
	detail(ctx, c.subjectService.GetTrackWay)
}

// ListClasses godoc
// @Summary List classes
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param is_deleted query bool false "List soft-deleted rows (admins only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.ClassResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/classes [get]
func (c *SubjectController) ListClasses(ctx *gin.Context) {
	list(ctx, c.subjectService.ListClasses)
}

// GetClass godoc
// @Summary Get a class
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param is_deleted query bool false "Look among soft-deleted rows (admins only)"
// @Success 200 {object} dto.ClassResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/classes/{id} [get]
func (c *SubjectController) GetClass(ctx *gin.Context) {
	detail(ctx, c.subjectService.GetClass)
}

// ListClassSubjects godoc
// @Summary List class subjects
// @Description Optionally filtered by general subject and class.
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param subject_id query int false "General subject ID"
// @Param class_id query int false "Class ID"
// @Param is_deleted query bool false "List soft-deleted rows (admins only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.ClassSubjectResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /subjects/class_subjects [get]
func (c *SubjectController) ListClassSubjects(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	showDeleted, ok := controller.ShowDeleted(ctx)
	if !ok {
		return
	}
	var filter repository.ClassSubjectFilter
	if filter.SubjectID, ok = controller.ParseOptionalID(ctx, "subject_id"); !ok {
		return
	}
	if filter.ClassID, ok = controller.ParseOptionalID(ctx, "class_id"); !ok {
		return
	}

	page, err := c.subjectService.ListClassSubjects(ctx.Request.Context(), actor, showDeleted, filter, controller.PageParams(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetClassSubject godoc
// @Summary Get a class subject with its topics
// @Description Topics are nested as one page in creation order; page and size select it (default size 15).
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class subject ID"
// @Param is_deleted query bool false "Look among soft-deleted rows (admins only)"
// @Param page query int false "Topics page" default(1)
// @Param size query int false "Topics page size" default(15)
// @Success 200 {object} dto.ClassSubjectDetailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Class subject not found or topics page out of range"
// @Router /subjects/class_subjects/{id} [get]
func (c *SubjectController) GetClassSubject(ctx *gin.Context) {
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

	cs, err := c.subjectService.GetClassSubject(ctx.Request.Context(), actor, id, showDeleted, ctx.Query("page"), ctx.Query("size"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cs)
}

// list serves a visibility-scoped paginated collection.
func list[R any](ctx *gin.Context, fetch func(context.Context, policy.Actor, bool, pagination.Params) (pagination.Page[R], error)) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	showDeleted, ok := controller.ShowDeleted(ctx)
	if !ok {
		return
	}

	page, err := fetch(ctx.Request.Context(), actor, showDeleted, controller.PageParams(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func detail[R any](ctx *gin.Context, fetch func(context.Context, policy.Actor, uint, bool) (*R, error)) {
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

	item, err := fetch(ctx.Request.Context(), actor, id, showDeleted)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}
