package validate

import "github.com/MarcinProgramista/smart-inventory-ai-backend/internal/normalize"

// Contact checks a normalized contact payload.  Only user_id and
// first_name are mandatory; the optional fields are validated when present.
func Contact(in normalize.ContactInput, isUpdate bool) Errors {
	var errs Errors

	if !in.UserID.Present {
		if !isUpdate {
			errs.add("user_id", "Missing user_id")
		}
	} else if in.UserID.NaN() {
		errs.add("user_id", "Invalid user_id")
	}

	if in.FirstName == nil {
		if !isUpdate {
			errs.add("first_name", "First name must be at least 2 characters")
		}
	} else if len(*in.FirstName) < 2 {
		errs.add("first_name", "First name must be at least 2 characters")
	}

	if in.LastName != nil && len(*in.LastName) < 2 {
		errs.add("last_name", "Last name must be at least 2 characters")
	}

	if in.Role != nil && len(*in.Role) < 2 {
		errs.add("role", "Role must be at least 2 characters")
	}

	if in.MobilePhone != nil && !phoneRe.MatchString(*in.MobilePhone) {
		errs.add("mobile_phone", "Invalid phone number format (expected 9-15 digits)")
	}

	if in.Email != nil && !emailRe.MatchString(*in.Email) {
		errs.add("email", "Invalid email format")
	}

	return errs
}
