package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopdash/backend/internal/domain/ordering"
)

// SetupValidator registers custom binding validators and makes validation
// errors report JSON field names instead of Go struct names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
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

		_ = v.RegisterValidation("payment_method", validPaymentMethod)
	}
}

// validPaymentMethod accepts only the supported payment methods
func validPaymentMethod(fl validator.FieldLevel) bool {
	return fl.Field().String() == ordering.PaymentMethodCOD
}
