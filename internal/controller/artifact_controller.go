package controller

import (
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/pkg/apperror"
	"customer-insight-be/internal/pkg/serverutils"
	"customer-insight-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IArtifactController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Decide(ctx *fiber.Ctx) error
	ListByCustomer(ctx *fiber.Ctx) error
}

type artifactController struct {
	artifactService service.IArtifactService
	reviewService   service.IReviewService
}

func NewArtifactController(artifactService service.IArtifactService, reviewService service.IReviewService) IArtifactController {
	return &artifactController{
		artifactService: artifactService,
		reviewService:   reviewService,
	}
}

func (c *artifactController) RegisterRoutes(r fiber.Router) {
	r.Get("/artifacts/:id", c.Show)
	r.Patch("/artifacts/:id", c.Decide)
	r.Get("/customers/:id/artifacts", c.ListByCustomer)
}

func (c *artifactController) Show(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "artifact")
	if err != nil {
		return err
	}

	artifact, err := c.artifactService.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"artifact": dto.NewArtifactResponse(artifact)})
}

func (c *artifactController) Decide(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "artifact")
	if err != nil {
		return err
	}

	var req dto.DecideArtifactRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	actorId, err := serverutils.ActorFromRequest(ctx, req.RmId)
	if err != nil {
		return err
	}

	artifact, err := c.reviewService.Decide(ctx.UserContext(), id, actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"artifact": dto.NewArtifactResponse(artifact)})
}

func (c *artifactController) ListByCustomer(ctx *fiber.Ctx) error {
	customerId, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var query dto.ListArtifactsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.Validation("invalid query parameters")
	}

	artifacts, err := c.artifactService.ListByCustomer(ctx.UserContext(), customerId, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"artifacts": dto.NewArtifactResponses(artifacts)})
}
