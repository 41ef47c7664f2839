package response

import (
	"github.com/gofiber/fiber/v2"
)

// Every response is a JSON object with a `success` flag. Failures carry a
// `message`; successes carry operation-specific fields.
type StandardResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse keeps `data` present even when the page is empty.
type ListResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination"`
	Statistics interface{} `json:"statistics"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func Success(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessMessage(c *fiber.Ctx, message string) error {
	return c.JSON(StandardResponse{
		Success: true,
		Message: message,
	})
}

func List(c *fiber.Ctx, data interface{}, pagination *Pagination, statistics interface{}) error {
	return c.JSON(ListResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Statistics: statistics,
	})
}

func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(StandardResponse{
		Success: false,
		Message: message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, resource string) error {
	return Error(c, fiber.StatusNotFound, resource+" not found")
}

func MethodNotAllowed(c *fiber.Ctx) error {
	return Error(c, fiber.StatusMethodNotAllowed, "Method not allowed")
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func CalculatePagination(page, perPage int, total int64) *Pagination {
	totalPages := total / int64(perPage)
	if total%int64(perPage) > 0 {
		totalPages++
	}

	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
