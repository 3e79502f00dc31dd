package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogd/internal/domain"
	"catalogd/internal/services"
)

func pts(values ...float64) []domain.PricePoint {
	out := make([]domain.PricePoint, len(values))
	for i, v := range values {
		out[i] = domain.PricePoint{Price: v}
	}
	return out
}

func fptr(v float64) *float64 { return &v }

func TestGrowth_EmptySeriesIsUndefined(t *testing.T) {
	g, err := services.Growth(nil)
	require.NoError(t, err)
	assert.Nil(t, g, "empty series must read as undefined, not zero")
}

func TestGrowth(t *testing.T) {
	g, err := services.Growth(pts(100, 150))
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 50.0, *g)

	g, err = services.Growth(pts(13, 17, 14, 11))
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, -15.38, *g)
}

func TestGrowth_ZeroBase(t *testing.T) {
	_, err := services.Growth(pts(0, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidGrowthBase)
}

func TestDiff(t *testing.T) {
	fresh := []domain.FreshOffer{
		{ForeignID: 1, Price: fptr(11)},
		{ForeignID: 2, Price: fptr(12)},
		{ForeignID: 3, Price: fptr(13)},
	}
	stored := []domain.StoredOffer{
		{OfferID: 23, ForeignID: 1, Price: fptr(10)},
		{OfferID: 24, ForeignID: 2, Price: fptr(12)},
		{OfferID: 25, ForeignID: 3, Price: fptr(14)},
	}

	inserts, orphans := services.Diff(fresh, stored)
	assert.Empty(t, orphans)
	assert.Equal(t, []domain.PriceInsert{
		{OfferID: 23, Price: fptr(11)},
		{OfferID: 25, Price: fptr(13)},
	}, inserts)

	// No hidden state: identical inputs yield identical output.
	again, _ := services.Diff(fresh, stored)
	assert.Equal(t, inserts, again)
}

func TestDiff_NilPrices(t *testing.T) {
	fresh := []domain.FreshOffer{
		{ForeignID: 1, Price: nil},
		{ForeignID: 2, Price: fptr(5)},
		{ForeignID: 3, Price: nil},
	}
	stored := []domain.StoredOffer{
		{OfferID: 10, ForeignID: 1, Price: nil},
		{OfferID: 11, ForeignID: 2, Price: nil},
		{OfferID: 12, ForeignID: 3, Price: fptr(5)},
	}

	inserts, orphans := services.Diff(fresh, stored)
	assert.Empty(t, orphans)
	require.Len(t, inserts, 2)
	assert.Equal(t, int64(11), inserts[0].OfferID)
	assert.Equal(t, 5.0, *inserts[0].Price)
	assert.Equal(t, int64(12), inserts[1].OfferID)
	assert.Nil(t, inserts[1].Price)
}

func TestDiff_OrphanFreshOffer(t *testing.T) {
	fresh := []domain.FreshOffer{{ForeignID: 99, Price: fptr(1)}}

	inserts, orphans := services.Diff(fresh, nil)
	assert.Empty(t, inserts, "an orphan must not halt or insert anything")
	assert.Equal(t, []int64{99}, orphans)
}

func TestCleanupOffers(t *testing.T) {
	offers := []domain.Offer{
		{OfferID: 1, ForeignID: 3, Price: fptr(2)},
		{OfferID: 2, ForeignID: 7, Price: nil},
		{OfferID: 3, ForeignID: 9, Price: fptr(8)},
	}

	cleaned := services.CleanupOffers(offers)
	require.Len(t, cleaned, 2)
	assert.Equal(t, int64(1), cleaned[0].OfferID)
	assert.Equal(t, 2.0, *cleaned[0].Price)
	assert.Equal(t, int64(3), cleaned[1].OfferID)
	assert.Equal(t, 8.0, *cleaned[1].Price)
	for _, o := range cleaned {
		assert.Zero(t, o.ForeignID, "foreign id must not survive cleanup")
	}
}

func TestCleanupOffers_ZeroPrice(t *testing.T) {
	cleaned := services.CleanupOffers([]domain.Offer{{OfferID: 1, Price: fptr(0)}})
	assert.Empty(t, cleaned)
}
