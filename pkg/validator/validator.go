package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("e164phone", e164PhoneValidator)
		if err != nil {
			log.Fatal("register e164phone validator failed")
		}
	}
}

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// IsE164 reports whether the number is in international E.164 format.
func IsE164(phone string) bool {
	return e164Pattern.MatchString(phone)
}

var e164PhoneValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsE164(fl.Field().String())
}
