package remito

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/distmalvinas/remito-service/internal/cart"
	"github.com/distmalvinas/remito-service/internal/sequence"
)

type State string

const (
	StatePreviewing State = "PREVIEWING"
	StateCommitted  State = "COMMITTED"
)

var (
	ErrNoProduct      = errors.New("remito: product name is required")
	ErrEmptyCart      = errors.New("remito: cart is empty")
	ErrCommitInFlight = errors.New("remito: a commit is already in progress")
	ErrNotCommitted   = errors.New("remito: no document has been generated yet")
)

// Counter is the numbering capability. Peek must never advance the sequence;
// TakeNext must persist the increment before returning the taken value.
type Counter interface {
	Peek(ctx context.Context) (int, error)
	TakeNext(ctx context.Context) (int, error)
}

// Rasterizer turns an order view into a raster image of the remito.
type Rasterizer interface {
	Render(ctx context.Context, ord *Order) (image.Image, error)
}

// Assembler wraps a rendered image into a single-page binary document.
type Assembler interface {
	Assemble(ctx context.Context, img image.Image) ([]byte, error)
}

// Composer drives one order from cart edits through numbering and rendering
// to a committed document. It starts Previewing and moves to Committed after
// a successful render; a failed render drops it back to Previewing without
// restoring the consumed number.
type Composer struct {
	mu         sync.Mutex
	state      State
	cart       *cart.Cart
	customer   Customer
	doc        *Document
	committing bool

	counter    Counter
	rasterizer Rasterizer
	assembler  Assembler
	now        func() time.Time
}

func NewComposer(counter Counter, rasterizer Rasterizer, assembler Assembler) *Composer {
	return &Composer{
		state:      StatePreviewing,
		cart:       cart.New(),
		counter:    counter,
		rasterizer: rasterizer,
		assembler:  assembler,
		now:        time.Now,
	}
}

func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AddLine adds a product to the cart, accumulating quantity on repeat adds.
// The unit price is captured on the first add of each product.
func (c *Composer) AddLine(producto string, cantidad, precio float64) error {
	if producto == "" {
		return ErrNoProduct
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Add(producto, cantidad, precio)
	return nil
}

// RemoveLine deletes the cart line at position i; out-of-range is a no-op.
func (c *Composer) RemoveLine(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.RemoveAt(i)
}

func (c *Composer) SetCustomer(cust Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customer = cust
}

// Preview builds the current order view stamped with a peek at the counter.
// The peeked number is informational only; the real number is assigned at
// Commit time and may differ if another session commits first.
func (c *Composer) Preview(ctx context.Context) (*Order, error) {
	n, err := c.counter.Peek(ctx)
	if err != nil {
		return nil, fmt.Errorf("remito: failed to peek counter: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(sequence.Format(n)), nil
}

// Commit assigns the next remito number, renders the order and assembles the
// PDF. The number is consumed and persisted before rendering starts, so a
// rasterizer or assembler failure burns it permanently.
func (c *Composer) Commit(ctx context.Context) (*Document, error) {
	c.mu.Lock()
	if c.committing {
		c.mu.Unlock()
		return nil, ErrCommitInFlight
	}
	if c.cart.Empty() {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}
	c.committing = true
	c.state = StatePreviewing
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.committing = false
		c.mu.Unlock()
	}()

	n, err := c.counter.TakeNext(ctx)
	if err != nil {
		return nil, fmt.Errorf("remito: failed to take next number: %w", err)
	}
	numero := sequence.Format(n)

	c.mu.Lock()
	ord := c.snapshotLocked(numero)
	c.mu.Unlock()

	img, err := c.rasterizer.Render(ctx, ord)
	if err != nil {
		log.Error().Err(err).Str("numero", numero).Msg("remito: failed to rasterize order")
		return nil, fmt.Errorf("remito: failed to rasterize order: %w", err)
	}

	pdf, err := c.assembler.Assemble(ctx, img)
	if err != nil {
		log.Error().Err(err).Str("numero", numero).Msg("remito: failed to assemble pdf")
		return nil, fmt.Errorf("remito: failed to assemble pdf: %w", err)
	}

	doc := &Document{Numero: numero, Order: *ord, PDF: pdf}

	c.mu.Lock()
	c.doc = doc
	c.state = StateCommitted
	c.mu.Unlock()

	log.Info().Str("numero", numero).Int("items", len(ord.Items)).Msg("remito: document committed")
	return doc, nil
}

// Download returns the last committed PDF and its filename. The filename
// picks up the customer name as it reads now, matching what the clerk sees
// at download time. A document stays downloadable after later cart edits
// until a new Commit replaces it.
func (c *Composer) Download() ([]byte, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil, "", ErrNotCommitted
	}
	return c.doc.PDF, Filename(c.doc.Numero, c.customer.Cliente), nil
}

// ShareURI builds the messaging link for the last committed document from the
// current cart and fields. The cart is re-validated here: it is mutable after
// commit, and an emptied cart must not produce an empty share message.
func (c *Composer) ShareURI() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return "", ErrNotCommitted
	}
	if c.cart.Empty() {
		return "", ErrEmptyCart
	}
	return BuildShareURI(c.snapshotLocked(c.doc.Numero)), nil
}

func (c *Composer) snapshotLocked(numero string) *Order {
	return &Order{
		Customer: c.customer,
		Items:    c.cart.Lines(),
		Total:    c.cart.Total(),
		Numero:   numero,
		Fecha:    c.now(),
	}
}
