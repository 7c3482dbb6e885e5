package screen

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// ValidateForm roda as tags `validate` do formulário. Campo obrigatório vazio
// gera a mensagem "Fill required fields"; outros problemas, "Invalid values".
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}

	out := &ValidationError{Message: "Invalid values", Fields: map[string]string{}}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out.Message = "Fill required fields"
			out.Fields[fe.Field()] = "is required"
		case "numeric", "number":
			out.Fields[fe.Field()] = "must be a number"
		case "oneof":
			out.Fields[fe.Field()] = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			out.Fields[fe.Field()] = "is invalid"
		}
	}
	return out
}

// Decimal converte um campo já validado com `numeric`; vazio vira zero
func Decimal(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
