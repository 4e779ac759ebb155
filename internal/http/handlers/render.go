package handlers

import "github.com/gofiber/fiber/v2"

// NotFound renders the friendly not-found page, falling back to plain text
// when the template engine itself is unavailable.
func NotFound(c *fiber.Ctx, message string) error {
	if err := c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": message}); err != nil {
		return c.Status(fiber.StatusNotFound).SendString(message)
	}
	return nil
}
