// Package validation wraps per-field rules into a single middleware stage.
// Every rule runs regardless of earlier failures and all failures are
// aggregated into one response, so the client sees the complete list at once.
// Rules are pure functions of the request body, query and params; no I/O.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"readinglist-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	LocationBody  = "body"
	LocationQuery = "query"
	LocationParam = "param"
)

// formats backs the field-level format and range predicates.
var formats = validator.New()

// Rule checks one field and returns nil on success.
type Rule func(c *gin.Context, body map[string]any) *apperror.FieldError

// Validate executes all rules and aggregates failures. The body is parsed
// once and cached on the context, so handlers can rebind it into their DTOs
// with ShouldBindBodyWith afterwards.
func Validate(rules ...Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			_ = c.ShouldBindBodyWith(&body, binding.JSON)
		}

		var fields []apperror.FieldError
		for _, rule := range rules {
			if fe := rule(c, body); fe != nil {
				fields = append(fields, *fe)
			}
		}

		if len(fields) > 0 {
			c.Error(apperror.Validation(fields))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bodyError(field string, value any, message string) *apperror.FieldError {
	return &apperror.FieldError{Field: field, Value: value, Message: message, Location: LocationBody}
}

// StringField requires a non-empty string (after trimming). Optional fields
// pass when absent but are still type-checked when present.
func StringField(field string, optional bool) Rule {
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		raw, ok := body[field]
		if !ok || raw == nil {
			if optional {
				return nil
			}
			return bodyError(field, nil, field+" is required")
		}
		s, ok := raw.(string)
		if !ok {
			return bodyError(field, raw, field+" must be a string")
		}
		if strings.TrimSpace(s) == "" {
			return bodyError(field, raw, field+" must not be empty")
		}
		return nil
	}
}

// MinLenField is StringField with a minimum trimmed length.
func MinLenField(field string, optional bool, min int) Rule {
	str := StringField(field, optional)
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		if fe := str(c, body); fe != nil {
			return fe
		}
		raw, ok := body[field]
		if !ok || raw == nil {
			return nil
		}
		s := strings.TrimSpace(raw.(string))
		if err := formats.Var(s, fmt.Sprintf("min=%d", min)); err != nil {
			return bodyError(field, raw, fmt.Sprintf("%s must be at least %d characters", field, min))
		}
		return nil
	}
}

// IntField requires an integer within [min, max]. JSON numbers arrive as
// float64, so non-integral values are rejected explicitly.
func IntField(field string, optional bool, min, max int) Rule {
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		raw, ok := body[field]
		if !ok || raw == nil {
			if optional {
				return nil
			}
			return bodyError(field, nil, field+" is required")
		}
		f, ok := raw.(float64)
		if !ok || f != math.Trunc(f) {
			return bodyError(field, raw, field+" must be an integer")
		}
		if err := formats.Var(int(f), fmt.Sprintf("gte=%d,lte=%d", min, max)); err != nil {
			return bodyError(field, raw, fmt.Sprintf("%s must be between %d and %d", field, min, max))
		}
		return nil
	}
}

// FloatField requires a number within [min, max].
func FloatField(field string, optional bool, min, max float64) Rule {
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		raw, ok := body[field]
		if !ok || raw == nil {
			if optional {
				return nil
			}
			return bodyError(field, nil, field+" is required")
		}
		f, ok := raw.(float64)
		if !ok {
			return bodyError(field, raw, field+" must be a number")
		}
		if err := formats.Var(f, fmt.Sprintf("gte=%v,lte=%v", min, max)); err != nil {
			return bodyError(field, raw, fmt.Sprintf("%s must be between %v and %v", field, min, max))
		}
		return nil
	}
}

// EnumField requires one of a closed set of string values.
func EnumField(field string, optional bool, allowed ...string) Rule {
	tag := "oneof=" + strings.Join(allowed, " ")
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		raw, ok := body[field]
		if !ok || raw == nil {
			if optional {
				return nil
			}
			return bodyError(field, nil, field+" is required")
		}
		s, ok := raw.(string)
		if !ok {
			return bodyError(field, raw, field+" must be a string")
		}
		if err := formats.Var(s, tag); err != nil {
			return bodyError(field, raw, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
		}
		return nil
	}
}

// ISBNField accepts an ISBN with optional hyphens or spaces; the compact
// form must be alphanumeric with length 10 or 13.
func ISBNField(field string, optional bool) Rule {
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		raw, ok := body[field]
		if !ok || raw == nil {
			if optional {
				return nil
			}
			return bodyError(field, nil, field+" is required")
		}
		s, ok := raw.(string)
		if !ok {
			return bodyError(field, raw, field+" must be a string")
		}
		compact := CompactISBN(s)
		if len(compact) != 10 && len(compact) != 13 {
			return bodyError(field, raw, field+" must have length 10 or 13 (hyphens allowed)")
		}
		if err := formats.Var(compact, "alphanum"); err != nil {
			return bodyError(field, raw, field+" must be alphanumeric")
		}
		return nil
	}
}

// CompactISBN strips hyphens and spaces; books store the compact form.
func CompactISBN(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, s)
}

// UUIDParam requires a path parameter to be a well-formed UUID.
func UUIDParam(name string) Rule {
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		value := c.Param(name)
		if _, err := uuid.Parse(value); err != nil {
			return &apperror.FieldError{
				Field:    name,
				Value:    value,
				Message:  name + " must be a valid UUID",
				Location: LocationParam,
			}
		}
		return nil
	}
}

// QueryInt requires an optional query parameter, when present, to be an
// integer within [min, max].
func QueryInt(name string, min, max int) Rule {
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		value := c.Query(name)
		if value == "" {
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < min || n > max {
			return &apperror.FieldError{
				Field:    name,
				Value:    value,
				Message:  fmt.Sprintf("%s must be an integer between %d and %d", name, min, max),
				Location: LocationQuery,
			}
		}
		return nil
	}
}

// QueryEnum requires an optional query parameter, when present, to be one of
// a closed set of values.
func QueryEnum(name string, allowed ...string) Rule {
	tag := "oneof=" + strings.Join(allowed, " ")
	return func(c *gin.Context, body map[string]any) *apperror.FieldError {
		value := c.Query(name)
		if value == "" {
			return nil
		}
		if err := formats.Var(value, tag); err != nil {
			return &apperror.FieldError{
				Field:    name,
				Value:    value,
				Message:  fmt.Sprintf("%s must be one of: %s", name, strings.Join(allowed, ", ")),
				Location: LocationQuery,
			}
		}
		return nil
	}
}
