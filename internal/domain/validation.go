package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("registering notblank validation: %v", err))
	}
	// Report fields by their record names rather than Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateFields checks the shared item and any variant field structs, and
// reports every violation in a single ErrValidation.
func validateFields(item Item, variant ...any) error {
	var problems []string
	for _, s := range append([]any{item}, variant...) {
		problems = append(problems, describe(validate.Struct(s))...)
	}
	if err := checkPrice(item.Price); err != nil && len(problems) == 0 {
		return err
	}
	if len(problems) > 0 {
		return validationErrorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func describe(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			out = append(out, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			out = append(out, fmt.Sprintf("%s must be >= %s (got %v)", fe.Field(), fe.Param(), fe.Value()))
		default:
			out = append(out, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return out
}
