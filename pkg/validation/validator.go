package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init configures the global validator used by Gin's binding.
// Errors report JSON field names and a few alias tags are registered.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("maxbytes72", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= 72
		})
		v.RegisterAlias("pwd", "min=8,maxbytes72") // bcrypt limit is in bytes
		v.RegisterAlias("rsvpstatus", "oneof=attending maybe not_attending")
		v.RegisterAlias("eventdate", "datetime=2006-01-02")
		v.RegisterAlias("clock", "datetime=15:04")
		v.RegisterAlias("nonzero", "required")
	})
}

// ToDetails converts binding errors into a map[field]message for the error payload.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required", "nonzero":
		return "is required"
	case "required_without":
		return "is required when " + param + " is not present"
	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "pwd":
		return "must be at least 8 characters and at most 72 bytes"
	case "rsvpstatus":
		return "must be one of: attending, maybe, not_attending"
	case "eventdate":
		return "must be a date formatted YYYY-MM-DD"
	case "clock":
		return "must be a time formatted HH:MM"
	case "datetime":
		return "must match format " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "numeric":
		return "must be numeric"
	case "len":
		if kind == reflect.String {
			return fmt.Sprintf("must be exactly %s characters", param)
		}
		return "must have length " + param
	case "min":
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return "must be at least " + param
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	}
	if param != "" {
		return fmt.Sprintf("failed %s=%s validation", tag, param)
	}
	return "failed " + tag + " validation"
}
