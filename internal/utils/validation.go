package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("gtzero", gtZero); err != nil {
		panic(err)
	}
	return v
}

// decimalValue exposes a decimal to the validator as its exact string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// gtZero accepts decimals and numbers strictly greater than zero.
func gtZero(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return err == nil && d.IsPositive()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() > 0
	case reflect.Float32, reflect.Float64:
		return field.Float() > 0
	}
	return false
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// ValidateStruct runs the struct tags of v.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}

// fieldMessages overrides the generic text for fields operators see most.
var fieldMessages = map[string]string{
	"name.required":       "Digite um nome",
	"size.required":       "Insira um tamanho",
	"categoryid.required": "Selecione uma categoria",
	"productid.required":  "Selecione um produto",
	"price.gtzero":        "Informe um preço maior que zero",
}

// FormatValidationErrors maps lower-cased field names to Portuguese messages.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		if msg, ok := fieldMessages[field+"."+err.Tag()]; ok {
			messages[field] = msg
			continue
		}
		switch err.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s é obrigatório.", err.Field())
		case "email":
			messages[field] = fmt.Sprintf("%s deve ser um e-mail válido.", err.Field())
		case "url":
			messages[field] = fmt.Sprintf("%s deve ser uma URL válida.", err.Field())
		case "oneof":
			messages[field] = fmt.Sprintf("%s deve ser um de: %s.", err.Field(), err.Param())
		case "min":
			messages[field] = fmt.Sprintf("%s deve ter no mínimo %s.", err.Field(), err.Param())
		case "gtzero":
			messages[field] = fmt.Sprintf("%s deve ser maior que zero.", err.Field())
		case "max":
			messages[field] = fmt.Sprintf("%s deve ter no máximo %s.", err.Field(), err.Param())
		default:
			messages[field] = fmt.Sprintf("Validação %s falhou no campo %s.", err.Tag(), err.Field())
		}
	}
	return messages
}

// ValidationMessage flattens a validation error into a single line suitable
// for a notification. Other errors are returned as-is.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	formatted := FormatValidationErrors(verrs)
	keys := make([]string, 0, len(formatted))
	for k := range formatted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, formatted[k])
	}
	return strings.Join(parts, " ")
}
