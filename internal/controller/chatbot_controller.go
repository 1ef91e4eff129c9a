package controller

import (
	"time"

	"albi-mall-assistant-be/internal/constant"
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/pkg/serverutils"
	"albi-mall-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("chat", c.Chat)
	h.Get("session/:id", c.GetSession)
	h.Delete("session/:id", c.ClearSession)
	h.Get("sessions", c.ListSessions)
	h.Get("stats", c.Stats)
	h.Get("health", c.Health)
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError(serverutils.CodeInvalidRequestBody, "Request body must be JSON with a message field")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Chat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ChatEnvelope{
		Success:   true,
		Code:      fiber.StatusOK,
		Message:   "Success chat",
		Data:      *res,
		SessionID: res.SessionID,
	})
}

func (c *chatbotController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *chatbotController) ClearSession(ctx *fiber.Ctx) error {
	if err := c.chatbotService.ClearSession(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}

func (c *chatbotController) ListSessions(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.ListSessions(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatbotController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", c.chatbotService.Stats(ctx.UserContext())))
}

func (c *chatbotController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Service is healthy", dto.HealthResponse{
		Service:   constant.ServiceName,
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}))
}
