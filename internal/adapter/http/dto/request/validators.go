package request

import (
	"reflect"
	"strings"
	"sync"

	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/domain/lead"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterBindingValidators installs RegisterValidators on gin's default
// binding engine. Safe to call more than once.
func RegisterBindingValidators() error {
	var err error
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			err = RegisterValidators(v)
		}
	})
	return err
}

// RegisterValidators installs the custom binding tags used by the request
// DTOs (payment_method, lead_urgency, kanban_status) and makes field errors report JSON
// names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return entities.PaymentMethodType(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("lead_urgency", func(fl validator.FieldLevel) bool {
		_, ok := lead.ParseUrgency(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("kanban_status", func(fl validator.FieldLevel) bool {
		_, ok := lead.ParseStatus(fl.Field().String())
		return ok
	})
}

// FieldErrors flattens validator errors into "json.path" -> tag, dropping
// the root struct name.
func FieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		out[ns] = fe.Tag()
	}
	return out
}
