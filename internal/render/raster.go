package render

import (
	"context"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/distmalvinas/remito-service/internal/remito"
)

const (
	charWidth  = 7
	lineHeight = 18
	margin     = 14
	docColumns = 72
)

// TextRasterizer lays the remito out as monochrome text on a white canvas:
// company header, REMITO X banner, customer block, item rows, total, note and
// signature line. Scale 2 doubles the pixel density of the output image.
type TextRasterizer struct {
	Scale int
}

func NewTextRasterizer() *TextRasterizer {
	return &TextRasterizer{Scale: 2}
}

func (r *TextRasterizer) Render(ctx context.Context, ord *remito.Order) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: rasterization aborted: %w", err)
	}

	lines := documentLines(ord)

	columns := docColumns
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > columns {
			columns = n
		}
	}

	width := margin*2 + charWidth*columns
	height := margin*2 + lineHeight*len(lines)

	base := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(base, base.Bounds(), image.White, image.Point{}, xdraw.Src)

	d := &font.Drawer{
		Dst:  base,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	y := margin + basicfont.Face7x13.Ascent
	for _, line := range lines {
		d.Dot = fixed.P(margin, y)
		d.DrawString(asciiFold.Replace(line))
		y += lineHeight
	}

	if r.Scale <= 1 {
		return base, nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width*r.Scale, height*r.Scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return scaled, nil
}

// Face7x13 only carries basic latin glyphs, so accented text is folded to
// ASCII before drawing.
var asciiFold = strings.NewReplacer(
	"Nº", "No.",
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N",
	"×", "x", "º", "o", "—", "-", "–", "-",
)

func documentLines(ord *remito.Order) []string {
	divider := strings.Repeat("-", docColumns)

	lines := []string{
		"Distribuidora Malvinas",
		"CUIT: XX-XXXXXXXX-X",
		"Domicilio: Pablo Areguati 2178 - Grand Bourg - Buenos Aires",
		"",
		"REMITO X",
		"No válido como factura",
		fmt.Sprintf("Remito Nº %s — Fecha: %s", ord.Numero, ord.Fecha.Format("02/01/2006")),
		divider,
		fmt.Sprintf("Cliente: %s", displayOr(ord.Cliente, "Cliente")),
		fmt.Sprintf("Tel: %s", displayOr(ord.Telefono, "-")),
		fmt.Sprintf("Dirección de entrega: %s", displayOr(ord.Direccion, "-")),
		divider,
	}

	if len(ord.Items) == 0 {
		lines = append(lines, "No hay productos.")
	}
	for _, item := range ord.Items {
		left := fmt.Sprintf("%s × %s", formatQuantity(item.Cantidad), item.Producto)
		right := fmt.Sprintf("$%.2f", item.Cantidad*item.Precio)
		lines = append(lines, row(left, right))
	}

	lines = append(lines,
		row("Total", fmt.Sprintf("$%.2f", ord.Total)),
		divider,
		fmt.Sprintf("Nota: %s", displayOr(ord.Nota, "-")),
		"",
		"",
		strings.Repeat("_", 38),
		"Firma del receptor / Aclaración / DNI",
	)

	return lines
}

func row(left, right string) string {
	pad := docColumns - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func displayOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func formatQuantity(v float64) string {
	return fmt.Sprintf("%g", v)
}
