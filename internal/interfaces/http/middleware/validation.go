package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"github.com/bonitoviento/backend/internal/domain/farm"
	"github.com/bonitoviento/backend/internal/domain/trade"
	"github.com/bonitoviento/backend/internal/domain/warehouse"
	"github.com/bonitoviento/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator: JSON field names in errors and
// the closed-set tags agenda_kind, movement_type, auction_type and
// warehouse_direction. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		for tag, fn := range customValidators {
			// registration only fails on an empty tag
			_ = v.RegisterValidation(tag, fn)
		}
	})
}

var customValidators = map[string]validator.Func{
	"agenda_kind": func(fl validator.FieldLevel) bool {
		_, ok := agenda.ParseKind(fl.Field().String())
		return ok
	},
	"movement_type": func(fl validator.FieldLevel) bool {
		return farm.MovementType(fl.Field().String()).IsValid()
	},
	"auction_type": func(fl validator.FieldLevel) bool {
		return trade.AuctionType(fl.Field().String()).IsValid()
	},
	"warehouse_direction": func(fl validator.FieldLevel) bool {
		return warehouse.Direction(fl.Field().String()).IsValid()
	},
}

// ValidationDetails converts a binding error into per-field details.
// Errors that are not validator errors yield nil.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

// HandleValidationError writes a 400 response for a binding error
func HandleValidationError(c *gin.Context, err error) {
	if details := ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", GetRequestID(c), details,
		))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInvalidJSON, "Malformed request body", GetRequestID(c),
	))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "agenda_kind":
		return "Must be one of: " + joinKinds()
	case "movement_type":
		return "Must be one of: entry exit"
	case "auction_type":
		return "Must be one of: purchase sale"
	case "warehouse_direction":
		return "Must be one of: in out"
	default:
		return "Invalid value"
	}
}

func joinKinds() string {
	kinds := agenda.AllKinds()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, " ")
}
