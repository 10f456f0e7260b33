package cart

// Line is one aggregated product row of an in-progress order. Precio is the
// unit price captured when the product was first added; it is not re-synced
// if the catalog changes afterwards.
type Line struct {
	Producto string  `json:"producto"`
	Cantidad float64 `json:"cantidad"`
	Precio   float64 `json:"precio"`
}

// Cart keeps lines in insertion order and holds at most one line per distinct
// product name. It is not safe for concurrent use; callers serialize access.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add accumulates cantidad onto an existing line for producto, or appends a
// new line capturing precio. A zero cantidad means "not given" and defaults
// to 1; any other numeric value, including a negative return quantity, is
// taken as-is.
func (c *Cart) Add(producto string, cantidad, precio float64) {
	if cantidad == 0 {
		cantidad = 1
	}

	for i := range c.lines {
		if c.lines[i].Producto == producto {
			c.lines[i].Cantidad += cantidad
			return
		}
	}

	c.lines = append(c.lines, Line{Producto: producto, Cantidad: cantidad, Precio: precio})
}

// RemoveAt deletes the line at position i. An out-of-range index is a no-op.
func (c *Cart) RemoveAt(i int) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the current lines in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is recomputed on every call, never cached.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.lines {
		total += l.Cantidad * l.Precio
	}
	return total
}
