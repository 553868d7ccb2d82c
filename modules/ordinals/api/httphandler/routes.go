package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/ordinals")

	r.Get("/sat/:number", h.GetSat)
	r.Get("/output/:txid/:vout", h.GetOutput)
	r.Get("/block/:height", h.GetBlock)
	r.Get("/block", h.GetCurrentBlock)
	return nil
}
