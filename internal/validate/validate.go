package validate

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	v = validator.New()
)

// Struct runs tag-based validation on a form DTO.
func Struct(s any) error {
	return v.Struct(s)
}

// StructErrors flattens validator errors into a field->message map for
// inline rendering next to the offending inputs.
func StructErrors(err error) map[string]string {
	out := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			out[e.Field()] = "invalid value for " + e.Field()
		}
		return out
	}
	if err != nil {
		out["form"] = err.Error()
	}
	return out
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (pet/slot/product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Date validates an ISO yyyy-mm-dd date string.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reDate.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// NextDueDate enforces the add-vaccination rule: required, strictly
// after the given date, strictly after today. ISO date strings compare
// correctly as strings, which is also how the backend compares them.
func NextDueDate(nextDue, given, today string) (msg string, ok bool) {
	if strings.TrimSpace(nextDue) == "" {
		return "Next due date is required", false
	}
	if _, ok := Date(nextDue); !ok {
		return "Next due date must be a valid date", false
	}
	if nextDue <= given {
		return "Next due date must be after the given date", false
	}
	if nextDue <= today {
		return "Next due date must be in the future", false
	}
	return "", true
}

// Attachment accepts one optional file by extension only; there is no
// magic-byte check, the backend re-validates uploads.
func Attachment(filename string) bool {
	if filename == "" {
		return true
	}
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "pdf", "jpg", "jpeg", "png":
		return true
	}
	return false
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}
