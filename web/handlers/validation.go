package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindForm binds form fields and translates struct tag violations into
// field-keyed messages.
func bindForm(c *gin.Context, req interface{}) error {
	err := c.ShouldBind(req)
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				messages = append(messages, field+" is required")
			case "oneof":
				messages = append(messages, field+" must be one of the allowed values")
			default:
				messages = append(messages, field+" is invalid")
			}
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}

	return err
}
