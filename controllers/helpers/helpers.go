package helpers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/validate"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Vaildate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

// ParamID reads a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func InvalidParam(c *fiber.Ctx, name string) error {
	return c.Status(422).JSON(Errors{
		Errors: []string{"server.method.invalid_" + name},
	})
}

func InvalidBody(c *fiber.Ctx) error {
	return c.Status(400).JSON(Errors{
		Errors: []string{"server.method.invalid_message_body"},
	})
}
