package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adds the form tags used by admin inputs to gin's validator:
// "hhmm" for 24h clock times and "isodate" for YYYY-MM-DD dates.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("hhmm", layoutRule("15:04")); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", layoutRule("2006-01-02"))
}

func layoutRule(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}

// ShiftOrdered reports whether both HH:MM times parse and start is before end.
func ShiftOrdered(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}

func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
