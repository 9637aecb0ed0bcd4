package controller

import (
	"errors"

	"asknova-be/internal/constant"
	"asknova-be/internal/dto"
	"asknova-be/internal/pkg/serverutils"
	"asknova-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IGenController is the REST fallback surface for clients that can't hold a
// websocket open. The prompt endpoint buffers the stream and returns only
// the terminal result.
type IGenController interface {
	RegisterRoutes(r fiber.Router)
	Prompt(ctx *fiber.Ctx) error
	GetRecommendation(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type genController struct {
	service service.IConversationService
}

func NewGenController(svc service.IConversationService) IGenController {
	return &genController{service: svc}
}

func (c *genController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gen")
	h.Post("/prompt", c.Prompt)
	h.Post("/recommendation", c.GetRecommendation)
	h.Get("/history/:userId/:sessionId", c.GetHistory)
}

func (c *genController) Prompt(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request body"))
	}

	// REST callers get no incremental delivery; fragments are discarded and
	// only the terminal result is returned.
	result, err := c.service.HandleTurn(ctx.Context(), &req, nil)
	if err != nil {
		return engineErrorResponse(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse(result, "Response generated successfully"))
}

func (c *genController) GetRecommendation(ctx *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed request body"))
	}

	result, err := c.service.GetRecommendation(ctx.Context(), &req)
	if err != nil {
		return engineErrorResponse(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse(result, "Suggested datasets successfully"))
}

func (c *genController) GetHistory(ctx *fiber.Ctx) error {
	req := dto.GetHistoryRequest{
		UserId:    ctx.Params("userId"),
		SessionId: ctx.Params("sessionId"),
	}

	result, err := c.service.GetHistory(ctx.Context(), &req)
	if err != nil {
		return engineErrorResponse(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse(result, "History retrieved successfully"))
}

func engineErrorResponse(ctx *fiber.Ctx, err error) error {
	var engineErr *dto.EngineError
	if errors.As(err, &engineErr) {
		status := fiber.StatusInternalServerError
		switch engineErr.Type {
		case constant.ErrTypeMissingPrompt, constant.ErrTypeInvalidInput:
			status = fiber.StatusBadRequest
		case constant.ErrTypeUpstreamFailure:
			status = fiber.StatusBadGateway
		}
		return ctx.Status(status).JSON(serverutils.ErrorResponse(status, engineErr.Message))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
}
