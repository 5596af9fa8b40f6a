package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/walletwise/backend/internal/errs"
)

var validate = validator.New()

// validateStruct runs struct-tag validation and converts failures into a
// single ValidationError with a readable field summary.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
		}
		return errs.NewValidationError("invalid request: " + strings.Join(parts, "; "))
	}
	return errs.NewValidationError(err.Error())
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValidationError(fmt.Sprintf("invalid date %q", value))
}
