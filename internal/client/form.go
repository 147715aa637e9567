package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// Field describes one input of the student form.
type Field struct {
	Name        string // JSON name, matches types.ValidationError.Field
	Label       string
	InputType   string // HTML input type
	Placeholder string
}

// Fields lists the form inputs in display order.
var Fields = []Field{
	{Name: "name", Label: "Full Name", InputType: "text", Placeholder: "Alice Johnson"},
	{Name: "fatherName", Label: "Father's Name", InputType: "text", Placeholder: "John Johnson"},
	{Name: "motherName", Label: "Mother's Name", InputType: "text", Placeholder: "Mary Johnson"},
	{Name: "brotherName", Label: "Brother's Name", InputType: "text", Placeholder: "Jack Johnson"},
	{Name: "email", Label: "Email", InputType: "email", Placeholder: "alice@example.com"},
	{Name: "grade", Label: "Grade", InputType: "text", Placeholder: "10th Grade"},
}

// Form holds the values of a student being entered and submits them
// through a CreateStudentMutation.
type Form struct {
	mutation  *CreateStudentMutation
	onCreated func(types.Student)

	mu     sync.Mutex
	values types.InsertStudent
}

// NewForm returns an empty form. onCreated, if non-nil, is called after a
// successful submit, once the form has been reset.
func NewForm(m *CreateStudentMutation, onCreated func(types.Student)) *Form {
	return &Form{mutation: m, onCreated: onCreated}
}

func (f *Form) field(name string) (*string, error) {
	switch name {
	case "name":
		return &f.values.Name, nil
	case "fatherName":
		return &f.values.FatherName, nil
	case "motherName":
		return &f.values.MotherName, nil
	case "brotherName":
		return &f.values.BrotherName, nil
	case "email":
		return &f.values.Email, nil
	case "grade":
		return &f.values.Grade, nil
	}
	return nil, fmt.Errorf("unknown form field %q", name)
}

// Set updates one field by its JSON name.
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.field(name)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Value returns the current value of a field, or "" for an unknown name.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.field(name)
	if err != nil {
		return ""
	}
	return *p
}

// Values returns a copy of everything entered so far.
func (f *Form) Values() types.InsertStudent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Validate runs the same rules the server applies.
func (f *Form) Validate() *types.ValidationError {
	_, verr := types.Validate(f.Values())
	return verr
}

// SubmitDisabled reports whether the submit control should be disabled.
func (f *Form) SubmitDisabled() bool {
	return f.mutation.IsPending()
}

// Reset clears every field.
func (f *Form) Reset() {
	f.mu.Lock()
	f.values = types.InsertStudent{}
	f.mu.Unlock()
}

// Submit validates the form and, if it is valid, creates the student.
// A validation failure is returned as *types.ValidationError without any
// request being sent. On any failure the entered values are kept.
func (f *Form) Submit(ctx context.Context) (types.Student, error) {
	input, verr := types.Validate(f.Values())
	if verr != nil {
		return types.Student{}, verr
	}

	created, err := f.mutation.Mutate(ctx, input)
	if err != nil {
		return types.Student{}, err
	}

	f.Reset()
	if f.onCreated != nil {
		f.onCreated(created)
	}
	return created, nil
}
