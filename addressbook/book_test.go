package addressbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
)

func defaults(items []models.Address) []string {
	var ids []string
	for _, a := range items {
		if a.IsDefault {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestBook_FirstAddBecomesDefault(t *testing.T) {
	b := New[models.Address]()

	first := b.Add(models.Address{ID: "a1"}, false)
	second := b.Add(models.Address{ID: "a2", IsDefault: true}, false)

	assert.True(t, first.IsDefault)
	assert.False(t, second.IsDefault)
	assert.Equal(t, []string{"a1"}, defaults(b.All()))
}

func TestBook_AddAsDefaultClearsOthers(t *testing.T) {
	b := New(models.Address{ID: "a1", IsDefault: true}, models.Address{ID: "a2"})

	b.Add(models.Address{ID: "a3"}, true)

	assert.Equal(t, []string{"a3"}, defaults(b.All()))
}

func TestBook_DeleteDefaultPromotesFirst(t *testing.T) {
	b := New(models.Address{ID: "a1"}, models.Address{ID: "a2", IsDefault: true}, models.Address{ID: "a3"})

	require.NoError(t, b.Delete("a2"))

	assert.Equal(t, []string{"a1"}, defaults(b.All()))
	assert.Equal(t, 2, b.Len())
}

func TestBook_DeleteLastLeavesNoDefault(t *testing.T) {
	b := New(models.Address{ID: "a1", IsDefault: true})

	require.NoError(t, b.Delete("a1"))

	_, ok := b.Default()
	assert.False(t, ok)
	assert.Empty(t, defaults(b.All()))
}

func TestBook_DeleteMissing(t *testing.T) {
	b := New[models.PaymentMethod]()
	err := b.Delete("nope")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBook_SetDefaultKeepsExactlyOne(t *testing.T) {
	b := New(models.PaymentMethod{ID: "p1", IsDefault: true}, models.PaymentMethod{ID: "p2"}, models.PaymentMethod{ID: "p3"})

	require.NoError(t, b.SetDefault("p3"))

	d, ok := b.Default()
	require.True(t, ok)
	assert.Equal(t, "p3", d.ID)
	count := 0
	for _, p := range b.All() {
		if p.IsDefault {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBook_NewNormalizesDefaults(t *testing.T) {
	b := New(models.Address{ID: "a1", IsDefault: true}, models.Address{ID: "a2", IsDefault: true})
	assert.Equal(t, []string{"a1"}, defaults(b.All()))

	b = New(models.Address{ID: "a1"}, models.Address{ID: "a2"})
	assert.Equal(t, []string{"a1"}, defaults(b.All()))
}

func TestBook_UpdateWithDefault(t *testing.T) {
	b := New(models.Address{ID: "a1", IsDefault: true}, models.Address{ID: "a2"})

	updated, err := b.Update(models.Address{ID: "a2", City: "Boston", IsDefault: true})
	require.NoError(t, err)

	assert.Equal(t, "Boston", updated.City)
	assert.Equal(t, []string{"a2"}, defaults(b.All()))

	_, err = b.Update(models.Address{ID: "zz"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestValidateAddress(t *testing.T) {
	valid := models.AddressForm{Name: "Jane", Street: "1 Elm", City: "Austin", State: "TX", Zip: "73301-1234"}

	got, err := ValidateAddress(valid)
	require.NoError(t, err)
	assert.Equal(t, DefaultCountry, got.Country)

	missing := valid
	missing.City = "  "
	_, err = ValidateAddress(missing)
	assert.EqualError(t, err, "Please fill in all required address fields")

	badZip := valid
	badZip.Zip = "7330"
	_, err = ValidateAddress(badZip)
	assert.EqualError(t, err, "Please enter a valid ZIP code")
	assert.True(t, apperrors.IsKind(err, apperrors.KindFormat))
}

func TestBook_AddStampedSkipsTakenIDs(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	b := New[models.Address]()

	first := b.AddStamped("addr", at, models.Address{Name: "A"}, false)
	second := b.AddStamped("addr", at, models.Address{Name: "B"}, false)
	third := b.AddStamped("addr", at, models.Address{Name: "C"}, true)

	assert.Equal(t, "addr_1700000000000", first.ID)
	assert.Equal(t, "addr_1700000000001", second.ID)
	assert.Equal(t, "addr_1700000000002", third.ID)

	got, ok := b.Get(second.ID)
	require.True(t, ok)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, []string{third.ID}, defaults(b.All()))
}
