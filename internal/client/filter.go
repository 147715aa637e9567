package client

import (
	"strings"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// FilterStudents returns the students whose name, email or grade contains
// query, ignoring case, in their original order. An empty query matches
// every student. The input slice is not modified.
func FilterStudents(students []types.Student, query string) []types.Student {
	q := strings.ToLower(query)

	matched := make([]types.Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Email), q) ||
			strings.Contains(strings.ToLower(s.Grade), q) {
			matched = append(matched, s)
		}
	}
	return matched
}
