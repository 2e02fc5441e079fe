package address_test

import (
	"testing"

	"shiplabel/internal/core/domain/model/address"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddress(t *testing.T, name, street1, city, state, zip string) address.Address {
	t.Helper()
	a, err := address.NewAddress(name, street1, city, state, zip)
	require.NoError(t, err)
	return a
}

func TestNewAddress(t *testing.T) {
	t.Run("should create complete address with required fields", func(t *testing.T) {
		a, err := address.NewAddress("J Doe", "1 Main St", "Springfield", "IL", "62704")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.IsComplete())
		assert.Equal(t, "J Doe", a.Name())
		assert.Equal(t, "1 Main St", a.Street1())
		assert.Equal(t, "Springfield", a.City())
		assert.Equal(t, "IL", a.State())
		assert.Equal(t, "62704", a.Zip())
		assert.Equal(t, address.DefaultCountry, a.Country())
	})

	t.Run("should fail when any required field is empty", func(t *testing.T) {
		cases := []struct {
			name    string
			fields  [5]string
			missing string
		}{
			{"missing name", [5]string{"", "1 Main St", "Springfield", "IL", "62704"}, "name"},
			{"missing street1", [5]string{"J Doe", "", "Springfield", "IL", "62704"}, "street1"},
			{"missing city", [5]string{"J Doe", "1 Main St", "", "IL", "62704"}, "city"},
			{"missing state", [5]string{"J Doe", "1 Main St", "Springfield", "", "62704"}, "state"},
			{"missing zip", [5]string{"J Doe", "1 Main St", "Springfield", "IL", ""}, "zip"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := address.NewAddress(tc.fields[0], tc.fields[1], tc.fields[2], tc.fields[3], tc.fields[4])

				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.missing)
			})
		}
	})

	t.Run("should treat whitespace-only fields as empty", func(t *testing.T) {
		_, err := address.NewAddress("J Doe", "   ", "Springfield", "IL", "62704")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "street1")
	})

	t.Run("should collect all validation errors joined", func(t *testing.T) {
		_, err := address.NewAddress("", "", "Springfield", "IL", "62704")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "street1")
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var a address.Address

		err := a.Validate()

		require.Error(t, err)
		assert.Equal(t, address.ErrAddressIsNotConstructed, err)
	})
}

func TestRestoreAddress(t *testing.T) {
	t.Run("should restore optional fields and explicit country", func(t *testing.T) {
		a, err := address.RestoreAddress(
			"J Doe", "Acme Co", "1 Main St", "Suite 4", "Springfield", "IL", "62704", "CA",
			"555-0100", "jdoe@example.com",
		)

		require.NoError(t, err)
		assert.Equal(t, "Acme Co", a.Company())
		assert.Equal(t, "Suite 4", a.Street2())
		assert.Equal(t, "CA", a.Country())
		assert.Equal(t, "555-0100", a.Phone())
		assert.Equal(t, "jdoe@example.com", a.Email())
	})

	t.Run("should default country when restored empty", func(t *testing.T) {
		a, err := address.RestoreAddress("J Doe", "", "1 Main St", "", "Springfield", "IL", "62704", "", "", "")

		require.NoError(t, err)
		assert.Equal(t, address.DefaultCountry, a.Country())
	})
}

func TestAddress_IsEqual(t *testing.T) {
	t.Run("should compare case-insensitively", func(t *testing.T) {
		a := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62704")
		b := mustAddress(t, "j doe", "1 MAIN ST", "springfield", "il", "62704")

		assert.True(t, a.IsEqual(b))
	})

	t.Run("should detect differing postal code", func(t *testing.T) {
		a := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62704")
		b := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62705")

		assert.False(t, a.IsEqual(b))
	})
}

func TestAddress_DiffCorrected(t *testing.T) {
	t.Run("should report exactly one change for corrected zip", func(t *testing.T) {
		submitted := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62703")
		corrected := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62704")

		changes := submitted.DiffCorrected(corrected)

		require.Len(t, changes, 1)
		assert.Equal(t, "zip", changes[0].Field)
		assert.Equal(t, "62704", changes[0].Updated)
		assert.Equal(t, "zip updated to 62704", changes[0].Notice())
	})

	t.Run("should ignore case-only differences", func(t *testing.T) {
		submitted := mustAddress(t, "J Doe", "1 main st", "springfield", "IL", "62704")
		corrected := mustAddress(t, "J Doe", "1 MAIN ST", "SPRINGFIELD", "IL", "62704")

		assert.Empty(t, submitted.DiffCorrected(corrected))
	})

	t.Run("should report multiple standardized fields", func(t *testing.T) {
		submitted := mustAddress(t, "J Doe", "1 Main Street", "Springfeld", "IL", "62704")
		corrected := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62704")

		changes := submitted.DiffCorrected(corrected)

		require.Len(t, changes, 2)
		assert.Equal(t, "street1", changes[0].Field)
		assert.Equal(t, "city", changes[1].Field)
	})

	t.Run("should never include name in the diff", func(t *testing.T) {
		submitted := mustAddress(t, "J Doe", "1 Main St", "Springfield", "IL", "62704")
		corrected := mustAddress(t, "JANE DOE", "1 Main St", "Springfield", "IL", "62704")

		assert.Empty(t, submitted.DiffCorrected(corrected))
	})
}
