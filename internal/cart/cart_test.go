package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/distmalvinas/remito-service/internal/cart"
)

func TestCart_Add_AccumulatesByProduct(t *testing.T) {
	c := cart.New()

	c.Add("Agua", 2, 100)
	c.Add("Agua", 3, 100)

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, cart.Line{Producto: "Agua", Cantidad: 5, Precio: 100}, lines[0])
}

func TestCart_Add_CapturesPriceOnFirstAdd(t *testing.T) {
	c := cart.New()

	c.Add("Agua", 1, 100)
	// Price changed in the catalog later; the captured one stays.
	c.Add("Agua", 1, 130)

	assert.Equal(t, 100.0, c.Lines()[0].Precio)
	assert.Equal(t, 200.0, c.Total())
}

func TestCart_Add_KeepsInsertionOrder(t *testing.T) {
	c := cart.New()

	c.Add("Agua", 1, 100)
	c.Add("Yerba", 1, 250)
	c.Add("Agua", 1, 100)
	c.Add("Azúcar", 1, 90)

	lines := c.Lines()
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "Agua", lines[0].Producto)
	assert.Equal(t, "Yerba", lines[1].Producto)
	assert.Equal(t, "Azúcar", lines[2].Producto)
}

func TestCart_Add_Quantities(t *testing.T) {
	tests := []struct {
		name     string
		cantidad float64
		expected float64
	}{
		{name: "zero_defaults_to_one", cantidad: 0, expected: 1},
		{name: "fractional_is_kept", cantidad: 1.5, expected: 1.5},
		{name: "negative_is_a_return_line", cantidad: -2, expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New()
			c.Add("Agua", tt.cantidad, 100)
			assert.Equal(t, tt.expected, c.Lines()[0].Cantidad)
		})
	}
}

func TestCart_RemoveAt(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		remaining []string
	}{
		{name: "removes_line_at_position", index: 1, remaining: []string{"Agua", "Azúcar"}},
		{name: "negative_index_is_noop", index: -1, remaining: []string{"Agua", "Yerba", "Azúcar"}},
		{name: "out_of_range_index_is_noop", index: 3, remaining: []string{"Agua", "Yerba", "Azúcar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New()
			c.Add("Agua", 1, 100)
			c.Add("Yerba", 1, 250)
			c.Add("Azúcar", 1, 90)

			c.RemoveAt(tt.index)

			var got []string
			for _, l := range c.Lines() {
				got = append(got, l.Producto)
			}
			assert.Equal(t, tt.remaining, got)
		})
	}
}

func TestCart_Total_RecomputedAfterEveryMutation(t *testing.T) {
	c := cart.New()
	assert.Equal(t, 0.0, c.Total())

	c.Add("Agua", 2, 100)
	assert.Equal(t, 200.0, c.Total())

	c.Add("Yerba", 1, 250)
	assert.Equal(t, 450.0, c.Total())

	c.RemoveAt(0)
	assert.Equal(t, 250.0, c.Total())

	c.RemoveAt(0)
	assert.True(t, c.Empty())
	assert.Equal(t, 0.0, c.Total())
}
