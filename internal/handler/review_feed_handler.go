package handler

import (
	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/internal/pkg/serverutils"
	"customer-insight-be/internal/service"
	internalWS "customer-insight-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ReviewFeedHandler upgrades reviewers onto the live event feed of one
// customer.
type ReviewFeedHandler struct {
	customerService service.ICustomerService
	hub             *internalWS.Hub
	jwtSecret       string
	logger          logger.ILogger
}

func NewReviewFeedHandler(customerService service.ICustomerService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *ReviewFeedHandler {
	return &ReviewFeedHandler{
		customerService: customerService,
		hub:             hub,
		jwtSecret:       jwtSecret,
		logger:          log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ReviewFeedHandler) ServeWs(c *fiber.Ctx) error {
	customerId, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse("customer not found"))
	}

	// Browsers cannot set headers on the handshake, so the token may come as a query param.
	if tokenStr := c.Query("token"); tokenStr != "" && serverutils.SessionUserId(c) == "" {
		userId, err := serverutils.ParseSessionToken(h.jwtSecret, tokenStr)
		if err != nil {
			h.logger.Warn("ReviewFeedHandler", "Invalid token in WS handshake", map[string]interface{}{"customer_id": customerId})
			return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Invalid token"))
		}
		c.Locals("user_id", userId)
	}

	actorId, err := serverutils.ActorFromRequest(c, nil)
	if err != nil {
		return err
	}

	if _, err := h.customerService.GetById(c.UserContext(), customerId); err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		fields := map[string]interface{}{"customer_id": customerId, "actor_id": actorId}
		h.logger.Info("ReviewFeedHandler", "Starting review feed session", fields)
		internalWS.ServeWs(h.hub, conn, customerId, actorId)
		h.logger.Info("ReviewFeedHandler", "Review feed session ended", fields)
	})(c)
}

func (h *ReviewFeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/customers/:id/review-feed", h.ServeWs)
}
