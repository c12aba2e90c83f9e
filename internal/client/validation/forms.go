package validation

// Field is one named input of a form.
type Field struct {
	Name string
	Rule Rule
}

type Form []Field

var (
	SignupForm = Form{
		{Name: "name", Rule: Required("Name")},
		{Name: "email", Rule: Email},
		{Name: "password", Rule: MinLength(MinPasswordLength, "Password")},
	}
	LoginForm = Form{
		{Name: "email", Rule: Email},
		{Name: "password", Rule: MinLength(MinPasswordLength, "Password")},
	}
)

// Validate runs every field's rule against values and returns the failures
// keyed by field name. A missing value validates as "".
func (f Form) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, field := range f {
		if msg := field.Rule(values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

// FirstError returns the first failure in field order, or "".
func (f Form) FirstError(values map[string]string) string {
	for _, field := range f {
		if msg := field.Rule(values[field.Name]); msg != "" {
			return msg
		}
	}
	return ""
}
