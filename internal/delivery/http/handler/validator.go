package handler

import (
	"fmt"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags used by request types.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("bodytype", func(fl validator.FieldLevel) bool {
		switch val := fl.Field().Interface().(type) {
		case domain.BodyType:
			return val.Valid()
		case string:
			return domain.BodyType(val).Valid()
		}
		return false
	})
}
