// Package validation validates request inputs with go-playground/validator and
// turns failures into errs.KindValidation errors carrying caller-facing messages.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	domain "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/errs"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the isodate tag registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("param"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseInputDate(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// DateRangeInput is the pair of query parameters shared by the range queries.
type DateRangeInput struct {
	StartDate string `param:"start_date" validate:"required,isodate"`
	EndDate   string `param:"end_date" validate:"required,isodate"`
}

type ReportInput struct {
	ReportID string `param:"report_id" validate:"required"`
}

// Struct validates s. The first failing rule decides the message, checked in a
// fixed order: any missing field wins over any malformed one.
func Struct(s any) error {
	if err := Validator().Struct(trimmed(s)); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errs.Wrap(err, "validate input")
		}
		return translate(s, fieldErrs)
	}
	return nil
}

func trimmed(s any) any {
	switch v := s.(type) {
	case DateRangeInput:
		return DateRangeInput{StartDate: strings.TrimSpace(v.StartDate), EndDate: strings.TrimSpace(v.EndDate)}
	case ReportInput:
		return ReportInput{ReportID: strings.TrimSpace(v.ReportID)}
	default:
		return s
	}
}

func translate(s any, fieldErrs validator.ValidationErrors) error {
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return errs.Validationf("%s", requiredMessage(s, fe.Field()))
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "isodate":
		return errs.Validationf(domain.MsgInvalidDate)
	default:
		return errs.Validationf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func requiredMessage(s any, field string) string {
	switch s.(type) {
	case DateRangeInput:
		return domain.MsgDateRangeRequired
	case ReportInput:
		return domain.MsgReportIDRequired
	default:
		return field + " is required"
	}
}
