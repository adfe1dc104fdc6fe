// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Pagination type & builders
=================================*/

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Count      int   `json:"count"` // items on this page
}

func BuildPagination(total int64, page, perPage, count int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage)) // ceil
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Count:      count,
	}
}

/* ===============================
   Paging resolver (query → page/perPage/offset)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging reads ?page= and ?per_page= (alias ?limit=) and normalizes.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	perPage := c.QueryInt("per_page", 0)
	if perPage <= 0 {
		perPage = c.QueryInt("limit", defaultPerPage)
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	// explicit offset wins over page (legacy clients send offset)
	offset := c.QueryInt("offset", -1)
	if offset < 0 {
		offset = (page - 1) * perPage
	} else {
		page = (offset / perPage) + 1
	}

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  offset,
		Limit:   perPage,
	}
}

/* ===============================
   JSON envelope
=================================*/

func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "deleted"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonList wraps a listing with pagination meta plus optional extras
// (e.g. summary_stats histogram).
func JsonList(c *fiber.Ctx, message string, data any, pagination Pagination, extras fiber.Map) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	body := fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": pagination,
	}
	for k, v := range extras {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// JsonErrorWith attaches a detail payload (conflict info, field errors) next to
// the message.
func JsonErrorWith(c *fiber.Ctx, status int, message string, key string, detail any) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		key:       detail,
	})
}

// JsonValidationError translates validator.v10 failures into a field→tag map.
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	fieldErrors := make(map[string]string, len(ve))
	for _, fe := range ve {
		fieldErrors[fe.Field()] = fe.Tag()
	}
	return JsonErrorWith(c, fiber.StatusBadRequest, "Validation failed", "errors", fieldErrors)
}
