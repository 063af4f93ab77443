package checkout

import (
	"reflect"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Form carries the customer details collected at checkout. Values are
// trimmed before validation; bounds apply to the trimmed value.
type Form struct {
	Name    string `json:"customer_name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"required,min=9,max=20,phone"`
	Address string `json:"address" validate:"required,min=5,max=500"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
	}
}

// Result is the outcome of validating a form: either Valid with the trimmed
// form, or invalid with a per-field message map. An invalid form is an
// expected outcome, not an error.
type Result struct {
	Valid  bool
	Form   Form
	Fields map[string]string
}

var phonePattern = regexp.MustCompile(`^[0-9 +\-()]+$`)

// newValidator returns a configured validator with the phone character-set
// rule registered and json tag names used in error reports.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phone", func(fl validatorv10.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// Validator checks checkout forms. Safe for concurrent use.
type Validator struct {
	v *validatorv10.Validate
}

func NewValidator() *Validator {
	return &Validator{v: newValidator()}
}

// Validate trims the form and checks every field. Repeated calls with the
// same input yield the same result.
func (cv *Validator) Validate(f Form) Result {
	trimmed := f.Trimmed()

	err := cv.v.Struct(trimmed)
	if err == nil {
		return Result{Valid: true, Form: trimmed}
	}

	fields := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			fields[fe.Field()] = fieldMessage(fe)
		}
	} else {
		fields["form"] = err.Error()
	}

	return Result{Form: trimmed, Fields: fields}
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Field() {
	case "customer_name":
		return "Ism 2 dan 100 gacha belgidan iborat bo'lishi kerak"
	case "phone":
		if fe.Tag() == "phone" {
			return "Telefon raqami faqat raqamlar, probel, +, - va qavslardan iborat bo'lishi mumkin"
		}
		return "Telefon raqami 9 dan 20 gacha belgidan iborat bo'lishi kerak"
	case "address":
		return "Manzil 5 dan 500 gacha belgidan iborat bo'lishi kerak"
	default:
		return "Noto'g'ri qiymat"
	}
}
