package validate

import "github.com/MarcinProgramista/smart-inventory-ai-backend/internal/normalize"

// Item checks a normalized item payload.  Create mode requires user_id,
// name, quantity, min_quantity, price and supplier_id; category_id stays
// optional in both modes.
func Item(in normalize.ItemInput, isUpdate bool) Errors {
	var errs Errors

	if !in.UserID.Present {
		if !isUpdate {
			errs.add("user_id", "Missing user_id")
		}
	} else if in.UserID.NaN() {
		errs.add("user_id", "Invalid user_id")
	}

	if in.Name != nil {
		if len(*in.Name) < 2 {
			errs.add("name", "Invalid item name")
		}
	} else if !isUpdate {
		errs.add("name", "Name is required")
	}

	if in.Quantity.Present {
		if !nonNegative(in.Quantity.Value) {
			errs.add("quantity", "Quantity must be a non-negative number")
		}
	} else if !isUpdate {
		errs.add("quantity", "Quantity is required")
	}

	if in.MinQuantity.Present {
		if !nonNegative(in.MinQuantity.Value) {
			errs.add("min_quantity", "Min quantity must be a non-negative number")
		}
	} else if !isUpdate {
		errs.add("min_quantity", "Min quantity is required")
	}

	if in.Price.Present {
		if !nonNegative(in.Price.Value) {
			errs.add("price", "Price must be a non-negative number")
		}
	} else if !isUpdate {
		errs.add("price", "Price is required")
	}

	if in.SupplierID.Present {
		if in.SupplierID.NaN() {
			errs.add("supplier_id", "Invalid supplier_id")
		}
	} else if !isUpdate {
		errs.add("supplier_id", "supplier_id is required")
	}

	if in.CategoryID.Present && in.CategoryID.NaN() {
		errs.add("category_id", "Invalid category_id")
	}

	return errs
}
