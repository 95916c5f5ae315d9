package controller

import (
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/pkg/serverutils"
	"customer-insight-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterestController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
}

type interestController struct {
	interestService service.IInterestService
}

func NewInterestController(interestService service.IInterestService) IInterestController {
	return &interestController{
		interestService: interestService,
	}
}

func (c *interestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/customers/:id/interests")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Post("/confirm", c.Confirm)
	h.Get("/:interestId", c.Show)
	h.Patch("/:interestId", c.Update)
	h.Delete("/:interestId", c.Archive)
}

func (c *interestController) List(ctx *fiber.Ctx) error {
	customerId, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var query dto.ListInterestsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.Validation("invalid query parameters")
	}

	interests, err := c.interestService.ListByCustomer(ctx.UserContext(), customerId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"interests": dto.NewInterestResponses(interests)})
}

func (c *interestController) Create(ctx *fiber.Ctx) error {
	customerId, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var req dto.CreateInterestRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	actorId, err := serverutils.ActorFromRequest(ctx, req.RmId)
	if err != nil {
		return err
	}

	interest, err := c.interestService.CreateManual(ctx.UserContext(), customerId, actorId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"interest": dto.NewInterestResponse(interest)})
}

func (c *interestController) Confirm(ctx *fiber.Ctx) error {
	customerId, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var req dto.ConfirmInterestRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	artifactId, err := uuid.Parse(req.ArtifactId)
	if err != nil {
		return apperror.Validation("invalid artifactId")
	}
	actorId, err := serverutils.ActorFromRequest(ctx, req.RmId)
	if err != nil {
		return err
	}

	override := &entity.InterestOverride{Label: req.Label, Description: req.Description}
	interest, err := c.interestService.CreateFromArtifact(ctx.UserContext(), customerId, artifactId, actorId, override)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"interest": dto.NewInterestResponse(interest)})
}

func (c *interestController) Show(ctx *fiber.Ctx) error {
	customerId, interestId, err := interestPath(ctx)
	if err != nil {
		return err
	}

	interest, err := c.interestService.GetById(ctx.UserContext(), customerId, interestId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"interest": dto.NewInterestResponse(interest)})
}

func (c *interestController) Update(ctx *fiber.Ctx) error {
	customerId, interestId, err := interestPath(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateInterestRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	actorId, err := serverutils.ActorFromRequest(ctx, req.RmId)
	if err != nil {
		return err
	}

	interest, err := c.interestService.Update(ctx.UserContext(), customerId, interestId, actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"interest": dto.NewInterestResponse(interest)})
}

func (c *interestController) Archive(ctx *fiber.Ctx) error {
	customerId, interestId, err := interestPath(ctx)
	if err != nil {
		return err
	}

	var req dto.ArchiveInterestRequest
	if err := parseOptionalBody(ctx, &req); err != nil {
		return err
	}
	actorId, err := serverutils.ActorFromRequest(ctx, req.RmId)
	if err != nil {
		return err
	}

	interest, err := c.interestService.Archive(ctx.UserContext(), customerId, interestId, actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"interest": dto.NewInterestResponse(interest)})
}

func interestPath(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	customerId, err := pathId(ctx, "id", "customer")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	interestId, err := pathId(ctx, "interestId", "interest")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return customerId, interestId, nil
}
