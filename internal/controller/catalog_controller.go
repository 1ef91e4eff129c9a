package controller

import (
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/pkg/serverutils"
	"albi-mall-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	ListProducts(ctx *fiber.Ctx) error
	SuggestedQueries(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Get("products", c.ListProducts)
	h.Get("suggested-queries", c.SuggestedQueries)
}

func (c *catalogController) ListProducts(ctx *fiber.Ctx) error {
	var req dto.ProductListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.NewBadRequestError(serverutils.CodeValidation, "Invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.ListProducts(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list products", res))
}

func (c *catalogController) SuggestedQueries(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get suggested queries", c.catalogService.SuggestedQueries(ctx.UserContext())))
}
