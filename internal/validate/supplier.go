package validate

import "github.com/MarcinProgramista/smart-inventory-ai-backend/internal/normalize"

// Supplier checks a normalized supplier payload.  Create mode requires
// user_id, name, city and country; normalization already defaulted an
// absent country to "PL".
func Supplier(in normalize.SupplierInput, isUpdate bool) Errors {
	var errs Errors

	if !in.UserID.Present {
		if !isUpdate {
			errs.add("user_id", "user_id is required")
		}
	} else if in.UserID.NaN() {
		errs.add("user_id", "Invalid user_id")
	}

	if in.Name == nil {
		if !isUpdate {
			errs.add("name", "Supplier name must have at least 2 characters")
		}
	} else if len(*in.Name) < 2 {
		errs.add("name", "Supplier name must have at least 2 characters")
	}

	if in.City == nil {
		if !isUpdate {
			errs.add("city", "City is required")
		}
	} else if *in.City == "" {
		errs.add("city", "City is required")
	}

	if in.Country == nil || len(*in.Country) != 2 {
		errs.add("country", "Invalid country code (use ISO2 like 'PL')")
	}

	if in.PostalCode != nil && len(*in.PostalCode) > 20 {
		errs.add("postal_code", "Postal code too long")
	}

	if in.ContactID.Present && in.ContactID.NaN() {
		errs.add("contact_id", "Invalid contact_id")
	}

	return errs
}
