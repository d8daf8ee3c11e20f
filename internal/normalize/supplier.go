package normalize

// SupplierInput is the normalized shape of a supplier payload.
type SupplierInput struct {
	UserID     Num
	Name       *string
	ContactID  Num // weak reference; not present means stored NULL
	Street     *string
	PostalCode *string
	City       *string
	Country    *string
}

// Supplier coerces a raw supplier payload.  Country is the one field
// normalization defaults: an absent or blank value becomes "PL".
func Supplier(raw map[string]any) SupplierInput {
	in := SupplierInput{
		UserID:     num(raw, "user_id"),
		Name:       reqStr(raw, "name"),
		ContactID:  num(raw, "contact_id"),
		Street:     optStr(raw, "street"),
		PostalCode: optStr(raw, "postal_code"),
		City:       reqStr(raw, "city"),
		Country:    optStr(raw, "country"),
	}
	if in.Country == nil {
		pl := "PL"
		in.Country = &pl
	}
	return in
}
