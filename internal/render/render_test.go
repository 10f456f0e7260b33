package render_test

import (
	"bytes"
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distmalvinas/remito-service/internal/cart"
	"github.com/distmalvinas/remito-service/internal/remito"
	"github.com/distmalvinas/remito-service/internal/render"
)

func sampleOrder() *remito.Order {
	return &remito.Order{
		Customer: remito.Customer{
			Cliente:   "Juan Perez",
			Telefono:  "1144556677",
			Direccion: "Av. Siempreviva 742",
			Nota:      "dejar en portería",
		},
		Items: []cart.Line{
			{Producto: "Agua", Cantidad: 2, Precio: 100},
			{Producto: "Yerba", Cantidad: 1, Precio: 250},
		},
		Total:  450,
		Numero: "0041",
		Fecha:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTextRasterizer_Render(t *testing.T) {
	r := render.NewTextRasterizer()

	img, err := r.Render(context.Background(), sampleOrder())

	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Positive(t, bounds.Dx())
	assert.Positive(t, bounds.Dy())
}

func TestTextRasterizer_ScaleDoublesDimensions(t *testing.T) {
	ord := sampleOrder()

	base, err := (&render.TextRasterizer{Scale: 1}).Render(context.Background(), ord)
	require.NoError(t, err)
	scaled, err := (&render.TextRasterizer{Scale: 2}).Render(context.Background(), ord)
	require.NoError(t, err)

	assert.Equal(t, base.Bounds().Dx()*2, scaled.Bounds().Dx())
	assert.Equal(t, base.Bounds().Dy()*2, scaled.Bounds().Dy())
}

func TestTextRasterizer_RendersEmptyOrder(t *testing.T) {
	r := render.NewTextRasterizer()

	img, err := r.Render(context.Background(), &remito.Order{Numero: "0001", Fecha: time.Now()})

	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
}

func TestTextRasterizer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := render.NewTextRasterizer().Render(ctx, sampleOrder())

	assert.Error(t, err)
}

func TestPDFAssembler_Assemble(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 300))

	out, err := render.NewPDFAssembler().Assemble(context.Background(), img)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPipeline_RasterThenAssemble(t *testing.T) {
	ctx := context.Background()

	img, err := render.NewTextRasterizer().Render(ctx, sampleOrder())
	require.NoError(t, err)

	out, err := render.NewPDFAssembler().Assemble(ctx, img)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
