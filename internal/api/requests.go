// ABOUTME: Request bodies and validation for the API.
// ABOUTME: Required integers are pointers so an explicit zero still counts as present.
package api

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/pyramid/internal/models"
	"github.com/labstack/echo/v4"
)

const dateTag = "ymd"

// ItemRequest is the body of POST /api/items and PUT /api/items/:id.
type ItemRequest struct {
	Label               string `json:"label" validate:"required"`
	RecommendedPortions *int   `json:"recommended_portions" validate:"required"`
	Tier                *int   `json:"tier" validate:"required"`
	ItemOrder           *int   `json:"item_order" validate:"required"`
}

// DayRequest is the body of POST /api/days and PUT /api/days/:id.
type DayRequest struct {
	Date string `json:"date" validate:"required,ymd"`
}

// IncrementRequest is the body of POST /api/days/:id/portions.
type IncrementRequest struct {
	ItemID *int `json:"itemId" validate:"required"`
	Delta  *int `json:"delta" validate:"required"`
}

// SetPortionRequest is the body of PUT /api/days/:id/portions.
type SetPortionRequest struct {
	ItemID   *int `json:"itemId" validate:"required"`
	Portions *int `json:"portions" validate:"required"`
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that also knows the ymd date tag.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation(dateTag, func(fl validator.FieldLevel) bool {
		return models.ValidDate(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// bindAndValidate decodes the body as JSON into req and validates it.
// The Content-Type header is ignored: clients sending text/plain or no
// type at all still get their JSON parsed.
func bindAndValidate(c echo.Context, req any) error {
	if c.Request().ContentLength == 0 {
		return badRequest("invalid JSON")
	}
	if err := c.Echo().JSONSerializer.Deserialize(c, req); err != nil {
		return badRequest("invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(validationMessage(err))
	}
	return nil
}

// validationMessage turns validator errors into a short client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == dateTag || fe.Field() == "Date" {
				return "invalid date"
			}
		}
		return "missing required fields"
	}
	return err.Error()
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, badRequest("invalid id")
	}
	return id, nil
}
