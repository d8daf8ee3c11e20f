package normalize

// ContactInput is the normalized shape of a contact payload.
type ContactInput struct {
	UserID      Num
	FirstName   *string
	LastName    *string
	Role        *string
	MobilePhone *string
	Email       *string
}

// Contact coerces a raw contact payload.  first_name is required so empty
// values survive for validation; the rest collapse to nil when blank.
func Contact(raw map[string]any) ContactInput {
	return ContactInput{
		UserID:      num(raw, "user_id"),
		FirstName:   reqStr(raw, "first_name"),
		LastName:    optStr(raw, "last_name"),
		Role:        optStr(raw, "role"),
		MobilePhone: optStr(raw, "mobile_phone"),
		Email:       optStr(raw, "email"),
	}
}
