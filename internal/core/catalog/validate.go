package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func validID(s string) error {
	if s == "" {
		return nil // notEmpty reports the missing case
	}
	if !idPattern.MatchString(s) {
		return fmt.Errorf("must be lowercase letters, digits, and dashes")
	}
	return nil
}

func validKind(k Kind) error {
	if !k.IsValid() {
		return fmt.Errorf("must be %q or %q", KindMovie, KindSeries)
	}
	return nil
}

func ratingRange(r float64) error {
	if r < 0 || r > 10 {
		return fmt.Errorf("must be between 0 and 10")
	}
	return nil
}

func progressRange(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}

func yearRange(y int) error {
	if y == 0 {
		return nil // unset
	}
	if y < 1880 || y > 2100 {
		return fmt.Errorf("must be a plausible release year")
	}
	return nil
}

func nonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

// Validate checks a single content record.
func (r Record) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("id", r.ID, notEmpty, validID),
		criterio.Run("title", r.Title, notEmpty),
		criterio.Run("kind", r.Kind, validKind),
		criterio.Run("year", r.Year, yearRange),
		criterio.Run("rating", r.Rating, ratingRange),
		criterio.Run("progress", r.Progress, progressRange),
		criterio.Run("runtime", r.Runtime, nonNegative),
		criterio.Run("seasons", r.Seasons, nonNegative),
	)
}

// Validate checks a display row. Rows may be empty; the TUI renders an
// empty shelf without navigation.
func (w Row) Validate() error {
	errs := criterio.ValidateStruct(
		criterio.Run("id", w.ID, notEmpty, validID),
		criterio.Run("title", w.Title, notEmpty),
	)
	if errs != nil {
		return errs
	}

	var b criterio.FieldErrorsBuilder
	for i, id := range w.Content {
		if err := notEmpty(id); err != nil {
			b = b.Append(fmt.Sprintf("content[%d]", i), err)
			continue
		}
		if err := validID(id); err != nil {
			b = b.Append(fmt.Sprintf("content[%d]", i), err)
		}
	}
	return b.ToError()
}

// Validate checks every row and record in a catalog file.
func (f File) Validate() error {
	var b criterio.FieldErrorsBuilder
	for i, row := range f.Rows {
		if err := row.Validate(); err != nil {
			b = b.Append(fmt.Sprintf("rows[%d]", i), err)
		}
	}
	for i, rec := range f.Content {
		if err := rec.Validate(); err != nil {
			b = b.Append(fmt.Sprintf("content[%d]", i), err)
		}
	}
	return b.ToError()
}

// normalize fills defaults before validation. Records without a kind are
// treated as movies.
func (f *File) normalize() {
	for i := range f.Content {
		if f.Content[i].Kind == "" {
			f.Content[i].Kind = KindMovie
		}
	}
}
