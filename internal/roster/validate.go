package roster

import (
	"fmt"
	"strings"
)

// MaxEntries is the number of rows the input form offers per kind.
const MaxEntries = 10

// Validate checks the roster structure before conversion.
// Returns every problem found; incomplete entry rows are not errors.
func Validate(file *File) []error {
	var errs []error

	if len(file.Years) == 0 {
		return append(errs, fmt.Errorf("years: at least one year is required"))
	}

	seen := make(map[string]bool)
	for i, y := range file.Years {
		yearPath := fmt.Sprintf("years[%d]", i)
		if strings.TrimSpace(y.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", yearPath))
		}
		for j, s := range y.Sections {
			secPath := fmt.Sprintf("%s.sections[%d]", yearPath, j)
			if strings.TrimSpace(s.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", secPath))
				continue
			}
			key := strings.TrimSpace(y.Name) + "/" + strings.TrimSpace(s.Name)
			if seen[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate division %q", secPath, strings.TrimSpace(y.Name)+" "+strings.TrimSpace(s.Name)))
			}
			seen[key] = true

			if len(s.Lectures) > MaxEntries {
				errs = append(errs, fmt.Errorf("%s.lectures: %d entries exceeds the limit of %d", secPath, len(s.Lectures), MaxEntries))
			}
			if len(s.Practicals) > MaxEntries {
				errs = append(errs, fmt.Errorf("%s.practicals: %d entries exceeds the limit of %d", secPath, len(s.Practicals), MaxEntries))
			}
		}
	}

	return errs
}
