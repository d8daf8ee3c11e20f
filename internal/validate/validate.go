// Package validate holds the pure domain validators.  Validators take a
// normalized input record plus an isUpdate flag and return every violation
// found; they never touch the store and never mutate their input.  In
// update mode the caller is expected to have merged the stored row into the
// payload, so an absent field is not an error but a present one must still
// satisfy its rule.
package validate

import (
	"math"
	"regexp"
)

// Error is a single validation failure tagged with the field it concerns.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e Error) Error() string { return e.Message }

// Errors accumulates all failures for one payload; an empty slice means
// the record is valid.
type Errors []Error

// Messages flattens the failures into the plain string list carried by the
// `{"errors": [...]}` response envelope.
func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, v := range e {
		out = append(out, v.Message)
	}
	return out
}

func (e *Errors) add(field, message string) {
	*e = append(*e, Error{Field: field, Message: message})
}

var (
	phoneRe = regexp.MustCompile(`^[0-9]{9,15}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// nonNegative reports whether v is a finite number >= 0.
func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
