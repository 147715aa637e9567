// Package seed holds the sample roster used for demos and local
// development. Nothing seeds implicitly: callers invoke IfEmpty.
package seed

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// Students is the fixed sample roster.
var Students = []types.InsertStudent{
	{
		Name:        "Alice Johnson",
		FatherName:  "John Johnson",
		MotherName:  "Mary Johnson",
		BrotherName: "Jack Johnson",
		Email:       "alice@example.com",
		Grade:       "10th Grade",
	},
	{
		Name:        "Bob Smith",
		FatherName:  "Robert Smith",
		MotherName:  "Linda Smith",
		BrotherName: "Billy Smith",
		Email:       "bob@example.com",
		Grade:       "9th Grade",
	},
	{
		Name:        "Charlie Davis",
		FatherName:  "Charles Davis",
		MotherName:  "Susan Davis",
		BrotherName: "Chris Davis",
		Email:       "charlie@example.com",
		Grade:       "11th Grade",
	},
}

// IfEmpty inserts Students when the store holds no students at all and
// returns how many rows it inserted. A non-empty store is left alone, so
// calling it twice is harmless.
func IfEmpty(ctx context.Context, store storage.Storage) (int, error) {
	existing, err := store.GetStudents(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: list students: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, s := range Students {
		if _, err := store.CreateStudent(ctx, s); err != nil {
			return i, fmt.Errorf("seed: create %q: %w", s.Name, err)
		}
	}
	return len(Students), nil
}
