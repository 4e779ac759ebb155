package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/prefs"
)

type ThemeHandler struct {
	Themes *prefs.Store
}

func (h *ThemeHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"theme": h.Themes.Theme()})
}

type setThemeRequest struct {
	Theme string `json:"theme" form:"theme"`
}

func (h *ThemeHandler) Set(c *fiber.Ctx) error {
	var req setThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	mode := domain.ThemeMode(req.Theme)
	if mode != domain.ThemeLight && mode != domain.ThemeDark {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "theme must be light or dark"})
	}
	h.Themes.SetTheme(mode)
	log.Info(c, "theme.set", map[string]any{"theme": mode})
	return c.JSON(fiber.Map{"theme": h.Themes.Theme()})
}
