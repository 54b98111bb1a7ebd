package api

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hostel-booking-backend/internal/apperr"
)

func init() {
	// Binding errors name the JSON field, not the Go struct field.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// bindJSON decodes the request body into dst, writing a 400 on failure.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.writeError(c, bindError(err))
		return false
	}
	return true
}

// bindError turns a decoding or binding failure into a validation error keyed
// by JSON field names.
func bindError(err error) error {
	var (
		fe      apperr.FieldErrors
		invalid validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &invalid):
		for _, v := range invalid {
			fe.Add(v.Field(), ruleMessage(v.Tag()))
		}
		return fe.Err()
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fe.Add(typeErr.Field, "has the wrong type")
		return fe.Err()
	case errors.Is(err, io.EOF):
		return apperr.Validation("request body is required")
	default:
		return apperr.Validation("request body is not valid JSON")
	}
}

func ruleMessage(tag string) string {
	if tag == "required" {
		return "is required"
	}
	return "is invalid"
}
