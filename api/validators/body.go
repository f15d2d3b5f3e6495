package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/leadflowhq/leadflow-backend/pkg/errors"
)

// phoneRe accepts digits with an optional leading + and optional
// ()-. separators between 1-4 digit groups.
var phoneRe = regexp.MustCompile(`^\+?\(?\d{1,4}\)?[-\s.]?\(?\d{1,4}\)?[-\s.]?\d{1,9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// DecodeJSONBody decodes the request body into dest, then runs struct
// validation. Unknown body fields are ignored, so clients cannot smuggle
// values into fields the payload type does not declare. Violations come
// back as one typed error carrying a {field, message} entry per failed
// rule.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
	}
	if err := validate.Struct(dest); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			if typed := collectFieldViolations(dest); typed != nil {
				return typed
			}
		}
		return formatValidationErrors(err)
	}
	return nil
}

// collectFieldViolations re-runs each declared rule on every field so a
// field breaking several rules reports all of them. The stock struct
// validation stops at a field's first failing tag.
func collectFieldViolations(dest any) *pkgerrors.Error {
	val := reflect.ValueOf(dest)
	for val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typed := pkgerrors.New(pkgerrors.CodeValidation, "validation failed")
	failed := false
	structType := val.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		rules := field.Tag.Get("validate")
		if rules == "" || rules == "-" {
			continue
		}
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = field.Name
		}

		optional := false
		for _, rule := range strings.Split(rules, ",") {
			if rule == "omitempty" {
				optional = true
				continue
			}
			check := rule
			if optional {
				check = "omitempty," + rule
			}
			err := validate.Var(val.Field(i).Interface(), check)
			if err == nil {
				continue
			}
			failed = true
			message := "is invalid"
			if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
				message = validationMessage(errs[0])
			}
			typed = typed.WithFields(pkgerrors.FieldError{Field: name, Message: message})
		}
	}
	if !failed {
		return nil
	}
	return typed
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		typed := pkgerrors.New(pkgerrors.CodeValidation, "validation failed")
		for _, fieldErr := range errs {
			typed = typed.WithFields(pkgerrors.FieldError{
				Field:   fieldErr.Field(),
				Message: validationMessage(fieldErr),
			})
		}
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}
