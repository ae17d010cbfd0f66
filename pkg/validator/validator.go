package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var cpfPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// ValidCPF checks the ###.###.###-## national id format.
func ValidCPF(cpf string) bool {
	return cpfPattern.MatchString(cpf)
}

// RegisterCustomValidations installs the `cpf` rule on gin's binding engine.
// Call once at startup, before the router handles requests.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidCPF(fl.Field().String())
	})
}
