package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/models"
)

func TestDecodeProductUpdate(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		u, err := decodeProductUpdate([]byte(`{"name":"Nike Air Max 90","price":119.5}`))
		require.NoError(t, err)
		require.NotNil(t, u.Name)
		assert.Equal(t, "Nike Air Max 90", *u.Name)
		assert.Equal(t, 119.5, *u.Price)
		assert.Nil(t, u.Category)
		assert.False(t, u.ClearSale)
	})

	t.Run("null sale price clears sale", func(t *testing.T) {
		u, err := decodeProductUpdate([]byte(`{"sale_price": null, "sale_ends_at":"2030-01-01T00:00:00Z"}`))
		require.NoError(t, err)
		assert.True(t, u.ClearSale)
		assert.Nil(t, u.SaleEndsAt)
	})

	t.Run("not on sale clears sale", func(t *testing.T) {
		u, err := decodeProductUpdate([]byte(`{"is_on_sale":false,"sale_price":10}`))
		require.NoError(t, err)
		assert.True(t, u.ClearSale)
		assert.Nil(t, u.SalePrice)
	})

	t.Run("new sale", func(t *testing.T) {
		u, err := decodeProductUpdate([]byte(`{"is_on_sale":true,"sale_price":10,"sale_ends_at":"2030-01-01T00:00:00Z"}`))
		require.NoError(t, err)
		assert.False(t, u.ClearSale)
		assert.Equal(t, 10.0, *u.SalePrice)
		require.NotNil(t, u.SaleEndsAt)
		assert.Equal(t, 2030, u.SaleEndsAt.Year())
	})

	t.Run("empty", func(t *testing.T) {
		u, err := decodeProductUpdate([]byte(`{}`))
		require.NoError(t, err)
		assert.True(t, u.IsEmpty())
	})

	t.Run("bad types", func(t *testing.T) {
		_, err := decodeProductUpdate([]byte(`{"price":"cheap"}`))
		assert.Error(t, err)
		_, err = decodeProductUpdate([]byte(`not json`))
		assert.Error(t, err)
	})
}

func TestNewProductView(t *testing.T) {
	now := time.Now()
	sale := 75.0

	t.Run("active sale", func(t *testing.T) {
		end := now.Add(90 * time.Minute)
		v := newProductView(models.Product{Name: "Garden Tools Set", Price: 100, SalePrice: &sale, SaleEndsAt: &end}, now)
		assert.True(t, v.OnSale)
		assert.Equal(t, 75.0, v.EffectivePrice)
		assert.Equal(t, 25, v.DiscountPercentage)
		require.NotNil(t, v.Countdown)
		assert.Equal(t, "1h 30m 0s", v.Countdown.Text)
	})

	t.Run("ended sale", func(t *testing.T) {
		end := now.Add(-time.Minute)
		v := newProductView(models.Product{Name: "Garden Tools Set", Price: 100, SalePrice: &sale, SaleEndsAt: &end}, now)
		assert.False(t, v.OnSale)
		assert.Equal(t, 100.0, v.EffectivePrice)
		require.NotNil(t, v.Countdown)
		assert.True(t, v.Countdown.Expired)
	})

	t.Run("regular", func(t *testing.T) {
		v := newProductView(models.Product{Name: "Garden Tools Set", Price: 100}, now)
		assert.False(t, v.OnSale)
		assert.Nil(t, v.Countdown)
		assert.Zero(t, v.DiscountPercentage)
	})
}
