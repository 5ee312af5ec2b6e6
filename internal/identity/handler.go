package identity

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bitvault/bitvault/internal/httpx"
)

// Handler exposes identity endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Mail string `json:"mail"`
}

// Register handles user onboarding. All three wallet slots start empty.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	var user User
	err := httpx.RetryOnce(func() error {
		var err error
		user, err = h.service.Register(c.UserContext(), req.Mail)
		return err
	})
	if err != nil {
		return httpx.Error(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user_id": user.ID})
}
