package remito

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// BuildShareURI composes the WhatsApp deep link for an order: a wa.me compose
// URL with the itemized order as percent-encoded message text. Pure function,
// no delivery is observed.
func BuildShareURI(ord *Order) string {
	lines := []string{
		"*Nuevo pedido / Remito:*",
		"",
		fmt.Sprintf("*Cliente:* %s", orDefault(ord.Cliente, "No especificado")),
		fmt.Sprintf("*Teléfono:* %s", orDefault(ord.Telefono, "-")),
		fmt.Sprintf("*Dirección:* %s", orDefault(ord.Direccion, "-")),
		"",
		"*Productos:*",
	}

	for _, item := range ord.Items {
		lines = append(lines, fmt.Sprintf("- %s × %s ($%s) = $%.2f",
			formatNumber(item.Cantidad), item.Producto, formatNumber(item.Precio), item.Cantidad*item.Precio))
	}

	lines = append(lines, "", fmt.Sprintf("*Total:* $%.2f", ord.Total))
	if ord.Nota != "" {
		lines = append(lines, fmt.Sprintf("*Nota:* %s", ord.Nota))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Remito Nº: %s", ord.Numero),
		"",
		"Pedido generado desde la web de la distribuidora",
	)

	return "https://wa.me/?text=" + url.QueryEscape(strings.Join(lines, "\n"))
}

// Opener launches an external URI, the side-effecting half of the share flow.
type Opener interface {
	Open(uri string) error
}

// Share builds the compose link for ord and hands it to the opener. No
// delivery confirmation comes back.
func Share(opener Opener, ord *Order) error {
	return opener.Open(BuildShareURI(ord))
}

// SystemOpener hands the URI to the OS default handler.
type SystemOpener struct{}

func (SystemOpener) Open(uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	case "darwin":
		cmd = exec.Command("open", uri)
	default:
		cmd = exec.Command("xdg-open", uri)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("remito: failed to open uri: %w", err)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// formatNumber prints quantities and unit prices without trailing zeros,
// the way they were typed (2, 1.5, 100).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
