// Package validation проверяет поля форм клиента до отправки на сервер.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/storefront/internal/domain/models"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// в ошибках используем имена полей формы, а не Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "email_address", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "denomination", func(fl validator.FieldLevel) bool {
		amount, err := strconv.ParseInt(fl.Field().String(), 10, 64)
		return err == nil && slices.Contains(models.Denominations, amount)
	})
	mustRegister(v, "card_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.CardTypes, fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// ValidEmail проверяет адрес по упрощенному правилу x@y.z без пробелов
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.ToLower(email))
}

// ValidPassword - не короче 6 символов
func ValidPassword(password string) bool {
	return len([]rune(password)) >= 6
}

// FieldError - ошибка одного поля формы с текстом для пользователя
type FieldError struct {
	Field   string
	Message string
}

// Errors - ошибки формы в порядке полей
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Get возвращает сообщение для поля
func (e Errors) Get(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

func (e Errors) Has(field string) bool {
	_, ok := e.Get(field)
	return ok
}

// Struct проверяет всю форму. Возвращает nil или Errors.
func Struct(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe.Field(), fe.Tag())})
	}
	return out
}

// Field проверяет одно поле формы (при потере фокуса). Пустая строка - поле в порядке.
func Field(form any, field string) string {
	var verrs Errors
	if err := Struct(form); !errors.As(err, &verrs) {
		return ""
	}
	msg, _ := verrs.Get(field)
	return msg
}
