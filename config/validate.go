package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vcrobe/hobbit/pathmatch"
)

// ErrInvalidConfiguration is matched by every validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0] //nolint:mnd
		if len(name) == 0 || name == "-" {
			name = fld.Name
		}

		return name
	})

	// route_pattern accepts the patterns pathmatch compiles.
	if err := v.RegisterValidation("route_pattern", func(fl validator.FieldLevel) bool {
		_, err := pathmatch.Compile(fl.Field().String(), pathmatch.Options{})

		return err == nil
	}); err != nil {
		panic(err)
	}

	return v
}

// Validate checks the struct tags and the uniqueness of the route names.
func Validate(conf Config) error {
	if err := validate.Struct(conf); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, ErrInvalidConfiguration.Error())
		}

		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, describe(fe))
		}

		return errors.Wrap(ErrInvalidConfiguration, strings.Join(messages, "; "))
	}

	seen := make(map[string]bool, len(conf.Routes))
	for _, r := range conf.Routes {
		if seen[r.Name] {
			return errors.Wrapf(ErrInvalidConfiguration, "route %q is declared twice", r.Name)
		}

		seen[r.Name] = true
	}

	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "route_pattern":
		return field + " is not a valid route pattern: " + quote(fe.Value())
	case "startswith":
		return field + " must start with " + quote(fe.Param())
	default:
		return field + " failed the " + fe.Tag() + " check"
	}
}

func quote(v any) string {
	s, _ := v.(string)

	return `"` + s + `"`
}
