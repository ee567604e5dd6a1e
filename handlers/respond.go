package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylehub-labs/stylehub-backend-go/config"
	"github.com/stylehub-labs/stylehub-backend-go/services"
)

// response is the JSON envelope every endpoint uses.
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, response{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, response{Success: true, Message: message})
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// unclassified falls through to a generic 500.
func respondError(c echo.Context, err error) error {
	if se, ok := services.Classify(err); ok {
		status := http.StatusInternalServerError
		switch se.Kind {
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindInvalidState:
			status = http.StatusBadRequest
		case services.KindForbidden:
			status = http.StatusForbidden
		case services.KindUpstream:
			status = http.StatusInternalServerError
		}
		return c.JSON(status, response{Success: false, Message: se.Msg})
	}
	return err
}

// ErrorHandler formats every unhandled error as the response envelope. In
// non-production environments the raw error text is echoed back.
func ErrorHandler(cfg config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		} else if !cfg.IsProduction() {
			message = err.Error()
		}

		if writeErr := c.JSON(status, response{Success: false, Message: message}); writeErr != nil {
			c.Logger().Error(writeErr)
		}
	}
}

// Validator wires go-playground/validator into echo's c.Validate.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func objectIDParam(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}
