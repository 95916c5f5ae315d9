package controller

import (
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/pkg/serverutils"
	"customer-insight-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICustomerController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateField(ctx *fiber.Ctx) error
	ListNotes(ctx *fiber.Ctx) error
	ApplyUpdates(ctx *fiber.Ctx) error
}

type customerController struct {
	customerService service.ICustomerService
	applyService    service.IApplyService
}

func NewCustomerController(customerService service.ICustomerService, applyService service.IApplyService) ICustomerController {
	return &customerController{
		customerService: customerService,
		applyService:    applyService,
	}
}

func (c *customerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/customers")
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Patch("/:id/fields", c.UpdateField)
	h.Get("/:id/notes", c.ListNotes)
	h.Post("/:id/apply-updates", c.ApplyUpdates)
}

func (c *customerController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	customer, err := c.customerService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"customer": dto.NewCustomerResponse(customer)})
}

func (c *customerController) Show(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	customer, err := c.customerService.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"customer": dto.NewCustomerResponse(customer)})
}

func (c *customerController) UpdateField(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var req dto.UpdateFieldRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	// Field writes are attributed when an actor is known but do not require one.
	actorId, _ := serverutils.ActorFromRequest(ctx, req.RmId)

	value, err := c.customerService.UpdateField(ctx.UserContext(), id, actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.UpdateFieldResponse{Success: true, Field: req.Field, Value: value})
}

func (c *customerController) ListNotes(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	notes, err := c.customerService.ListNotes(ctx.UserContext(), id, ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"notes": dto.NewCustomerNoteResponses(notes)})
}

func (c *customerController) ApplyUpdates(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var req dto.ApplyUpdatesRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	actorId, err := serverutils.ActorFromRequest(ctx, req.RmId)
	if err != nil {
		return err
	}

	result, err := c.applyService.ApplyUpdates(ctx.UserContext(), id, actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.NewApplyUpdatesResponse(result))
}
