package remito

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/distmalvinas/remito-service/internal/cart"
)

// Customer holds the four free-text fields of the order form.
type Customer struct {
	Cliente   string `json:"cliente"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Nota      string `json:"nota"`
}

// Order is the computed view rendered onto a remito: it is derived from the
// cart and the customer fields on demand and never stored.
type Order struct {
	Customer
	Items  []cart.Line `json:"items"`
	Total  float64     `json:"total"`
	Numero string      `json:"numero"`
	Fecha  time.Time   `json:"fecha"`
}

// Document is a committed remito: the assigned number, the order snapshot it
// was rendered from and the assembled PDF.
type Document struct {
	Numero string
	Order  Order
	PDF    []byte
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename derives the download name: remito_<number>_<sanitized customer>.pdf.
func Filename(numero, cliente string) string {
	return fmt.Sprintf("remito_%s_%s.pdf", numero, sanitizeName(cliente))
}

func sanitizeName(name string) string {
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "cliente"
	}
	return name
}
