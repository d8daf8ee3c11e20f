package normalize

// ItemInput is the normalized shape of an item payload.
type ItemInput struct {
	UserID      Num
	CategoryID  Num // optional foreign key; not present means stored NULL
	SupplierID  Num
	Name        *string
	Quantity    Num
	MinQuantity Num
	Price       Num
	Description *string
}

// Item coerces a raw item payload.  Identifiers and quantities become Num
// tri-states, name keeps empty values for validation to flag, description
// collapses to nil when blank.
func Item(raw map[string]any) ItemInput {
	return ItemInput{
		UserID:      num(raw, "user_id"),
		CategoryID:  num(raw, "category_id"),
		SupplierID:  num(raw, "supplier_id"),
		Name:        reqStr(raw, "name"),
		Quantity:    num(raw, "quantity"),
		MinQuantity: num(raw, "min_quantity"),
		Price:       num(raw, "price"),
		Description: optStr(raw, "description"),
	}
}
