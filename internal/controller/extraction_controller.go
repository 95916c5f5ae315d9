package controller

import (
	"customer-insight-be/internal/dto"
	"customer-insight-be/internal/pkg/serverutils"
	"customer-insight-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExtractionController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	ShowProposal(ctx *fiber.Ctx) error
	ShowNudge(ctx *fiber.Ctx) error
	SubmitNudgeAnswers(ctx *fiber.Ctx) error
	FinalizeNudge(ctx *fiber.Ctx) error
}

type extractionController struct {
	extractionService service.IExtractionService
	nudgeService      service.INudgeService
}

func NewExtractionController(extractionService service.IExtractionService, nudgeService service.INudgeService) IExtractionController {
	return &extractionController{
		extractionService: extractionService,
		nudgeService:      nudgeService,
	}
}

func (c *extractionController) RegisterRoutes(r fiber.Router) {
	r.Post("/customers/:id/extractions", c.Ingest)
	r.Get("/proposals/:id", c.ShowProposal)

	n := r.Group("/nudges")
	n.Get("/:id", c.ShowNudge)
	n.Post("/:id/answers", c.SubmitNudgeAnswers)
	n.Post("/:id/finalize", c.FinalizeNudge)
}

func (c *extractionController) Ingest(ctx *fiber.Ctx) error {
	customerId, err := pathId(ctx, "id", "customer")
	if err != nil {
		return err
	}

	var req dto.ExtractionRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.extractionService.Ingest(ctx.UserContext(), customerId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *extractionController) ShowProposal(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "proposal")
	if err != nil {
		return err
	}

	proposal, err := c.extractionService.GetProposal(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"proposal": proposal})
}

func (c *extractionController) ShowNudge(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "nudge session")
	if err != nil {
		return err
	}

	session, err := c.nudgeService.Get(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"nudge": session})
}

func (c *extractionController) SubmitNudgeAnswers(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "nudge session")
	if err != nil {
		return err
	}

	var req dto.SubmitNudgeAnswersRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	session, err := c.nudgeService.SubmitAnswers(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"nudge": session})
}

func (c *extractionController) FinalizeNudge(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "nudge session")
	if err != nil {
		return err
	}

	var req dto.FinalizeNudgeRequest
	if err := parseOptionalBody(ctx, &req); err != nil {
		return err
	}
	// Only required when answers are written; the service enforces that.
	actorId, _ := serverutils.ActorFromRequest(ctx, req.RmId)

	res, err := c.nudgeService.Finalize(ctx.UserContext(), id, actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
