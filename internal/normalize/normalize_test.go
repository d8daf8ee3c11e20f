package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     map[string]any
		present bool
		nan     bool
		value   float64
	}{
		{"absent key", map[string]any{}, false, false, 0},
		{"explicit null", map[string]any{"quantity": nil}, false, false, 0},
		{"empty string", map[string]any{"quantity": ""}, false, false, 0},
		{"blank string", map[string]any{"quantity": "   "}, false, false, 0},
		{"json number", map[string]any{"quantity": 12.5}, true, false, 12.5},
		{"numeric string", map[string]any{"quantity": " 7 "}, true, false, 7},
		{"garbage string", map[string]any{"quantity": "abc"}, true, true, 0},
		{"wrong type", map[string]any{"quantity": true}, true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := num(tt.raw, "quantity")
			assert.Equal(t, tt.present, n.Present)
			assert.Equal(t, tt.nan, n.NaN())
			if tt.present && !tt.nan {
				assert.Equal(t, tt.value, n.Value)
			}
		})
	}
}

func TestOptStrCollapsesBlanksToNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, optStr(map[string]any{}, "description"))
	assert.Nil(t, optStr(map[string]any{"description": nil}, "description"))
	assert.Nil(t, optStr(map[string]any{"description": "  "}, "description"))
	assert.Nil(t, optStr(map[string]any{"description": 42}, "description"))

	got := optStr(map[string]any{"description": "  spare fuse "}, "description")
	require.NotNil(t, got)
	assert.Equal(t, "spare fuse", *got)
}

func TestReqStrKeepsPresentEmptyValues(t *testing.T) {
	t.Parallel()

	// Absent stays nil so update mode can skip the field entirely.
	assert.Nil(t, reqStr(map[string]any{}, "name"))
	assert.Nil(t, reqStr(map[string]any{"name": nil}, "name"))

	// Present but empty survives as "" so validation reports it.
	got := reqStr(map[string]any{"name": "   "}, "name")
	require.NotNil(t, got)
	assert.Equal(t, "", *got)

	got = reqStr(map[string]any{"name": " Widget "}, "name")
	require.NotNil(t, got)
	assert.Equal(t, "Widget", *got)
}

func TestItemNormalization(t *testing.T) {
	t.Parallel()

	in := Item(map[string]any{
		"user_id":     float64(3),
		"supplier_id": "9",
		"name":        "  Hex Bolt ",
		"quantity":    "15",
		"price":       2.75,
		"description": "  ",
	})

	assert.Equal(t, int64(3), in.UserID.Int64())
	assert.Equal(t, int64(9), in.SupplierID.Int64())
	require.NotNil(t, in.Name)
	assert.Equal(t, "Hex Bolt", *in.Name)
	assert.Equal(t, 15.0, in.Quantity.Value)
	assert.False(t, in.MinQuantity.Present)
	assert.Equal(t, 2.75, in.Price.Value)
	assert.Nil(t, in.Description)
	assert.False(t, in.CategoryID.Present)
}

func TestSupplierNormalizationDefaultsCountry(t *testing.T) {
	t.Parallel()

	in := Supplier(map[string]any{
		"user_id": float64(1),
		"name":    "Bolts & Co",
		"city":    "Warsaw",
	})
	require.NotNil(t, in.Country)
	assert.Equal(t, "PL", *in.Country)

	in = Supplier(map[string]any{"country": " de "})
	require.NotNil(t, in.Country)
	assert.Equal(t, "de", *in.Country)
}

func TestContactNormalization(t *testing.T) {
	t.Parallel()

	in := Contact(map[string]any{
		"user_id":      "4",
		"first_name":   " Anna ",
		"mobile_phone": "  ",
		"email":        "anna@example.com",
	})

	assert.Equal(t, int64(4), in.UserID.Int64())
	require.NotNil(t, in.FirstName)
	assert.Equal(t, "Anna", *in.FirstName)
	assert.Nil(t, in.LastName)
	assert.Nil(t, in.MobilePhone)
	require.NotNil(t, in.Email)
	assert.Equal(t, "anna@example.com", *in.Email)
}
