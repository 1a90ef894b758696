package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type PublicController struct {
	endpoints []Endpoint
}

func NewPublicController() *PublicController {
	return &PublicController{endpoints: make([]Endpoint, 0)}
}

// SetEndpoints is called once every route has been mounted.
func (p *PublicController) SetEndpoints(endpoints []Endpoint) {
	p.endpoints = endpoints
}

func (p *PublicController) GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now())
}

func (p *PublicController) GetHealth(c *fiber.Ctx) error {
	return c.Status(200).JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (p *PublicController) GetEndpoints(c *fiber.Ctx) error {
	return c.Status(200).JSON(p.endpoints)
}
