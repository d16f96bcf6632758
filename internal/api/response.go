// ABOUTME: JSON response envelope shared by every API route.
// ABOUTME: Success and failure both carry {success, data, message}.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope returned by every /api route.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// IDResult is returned by item and day mutations.
type IDResult struct {
	ID int `json:"id"`
}

// RenameResult is returned after a day has been moved to a new date.
type RenameResult struct {
	ID        int    `json:"id"`
	EntryDate string `json:"entry_date"`
}

// PortionResult reports the stored count for one item after a change.
type PortionResult struct {
	ItemID   int `json:"itemId"`
	Portions int `json:"portions"`
}

func respondOK(c echo.Context, data any, message string) error {
	if message == "" {
		message = "OK"
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func respondFail(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Data: nil, Message: message})
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

func notFound() error {
	return echo.NewHTTPError(http.StatusNotFound, "not found")
}
