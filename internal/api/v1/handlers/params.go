package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/db/models"
)

// paramUint parses a numeric path parameter. Returns 0 when missing or
// malformed.
func paramUint(c *fiber.Ctx, name string) uint {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// listOptions builds pagination and filter options from query parameters.
func listOptions(c *fiber.Ctx) (*models.ListOptions, error) {
	opts := &models.ListOptions{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseJobStatus(status)
		if err != nil {
			return nil, err
		}
		opts.JobStatus = &parsed
	}
	opts.Normalize()
	return opts, nil
}
