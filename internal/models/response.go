package models

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the success envelope every endpoint returns. The shape is
// part of the public contract and must not change.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIErrorResponse is the failure envelope. Errors carries field-level
// validation messages when present.
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

// Pagination is the metadata block attached to every paginated listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
}

// NewPagination derives the pagination block from a page number, page size
// and total row count. TotalPages is at least 1 even for an empty result.
func NewPagination(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return Pagination{CurrentPage: page, TotalPages: pages, Total: total}
}

// Respond writes the standard success envelope with the given status.
func Respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// RespondWithError writes the standard error envelope. AppErrors choose
// their own HTTP status; storage deadline overruns surface as 503; anything
// else is treated as internal.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr = NewUnavailableError(err)
		} else {
			appErr = NewInternalError(err)
		}
	}

	status := appErr.HTTPStatus()
	resp := APIErrorResponse{
		StatusCode: status,
		Success:    false,
		Message:    appErr.Message,
		Errors:     appErr.Fields,
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	return c.Status(status).JSON(resp)
}
