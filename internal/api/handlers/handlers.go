package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func parseID(c *fiber.Ctx, what string) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+what+" ID")
	}
	return id, nil
}
