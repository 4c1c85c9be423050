package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/internal/controller"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/service"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

func (c *ChatController) RegisterRoutes(api *gin.RouterGroup) {
	chats := api.Group("/chats")
	chats.GET("", c.ListChats)
	chats.POST("", c.OpenChat)
	chats.GET("/:id", c.GetChat)
	chats.POST("/:id/messages", c.PostMessage)
}

// ListChats godoc
// @Summary List the caller's chats
// @Description Only chats where the caller is the student or the teacher, newest first.
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param is_deleted query bool false "List soft-deleted chats (admins only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[dto.ChatResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Invalid page"
// @Router /chats [get]
func (c *ChatController) ListChats(ctx *gin.Context) {
	list(ctx, c.chatService.ListChats)
}

// OpenChat godoc
// @Summary Open a chat with a teacher
// @Description Students only. Returns the existing chat when one is already open with that teacher.
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChatRequest true "Teacher to chat with"
// @Success 201 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown teacher"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /chats [post]
func (c *ChatController) OpenChat(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	var req dto.CreateChatRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	chat, err := c.chatService.OpenChat(ctx.Request.Context(), actor, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, chat)
}

// GetChat godoc
// @Summary Get a chat with its messages
// @Description Messages are nested as one page, newest first; page and size select it (default size 30).
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Param page query int false "Messages page" default(1)
// @Param size query int false "Messages page size" default(30)
// @Success 200 {object} dto.ChatDetailResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Chat not found or messages page out of range"
// @Router /chats/{id} [get]
func (c *ChatController) GetChat(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}

	chat, err := c.chatService.GetChat(ctx.Request.Context(), actor, id, ctx.Query("page"), ctx.Query("size"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, chat)
}

// PostMessage godoc
// @Summary Post a message to a chat
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Param request body dto.CreateMessageRequest true "Message"
// @Success 201 {object} dto.ChatMessageResponse
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /chats/{id}/messages [post]
func (c *ChatController) PostMessage(ctx *gin.Context) {
	actor, ok := controller.Actor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateMessageRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.chatService.PostMessage(ctx.Request.Context(), actor, id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, msg)
}
