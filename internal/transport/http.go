package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/distmalvinas/remito-service/internal/catalog"
	"github.com/distmalvinas/remito-service/internal/handler"
	"github.com/distmalvinas/remito-service/internal/remito"
)

func NewRouter(catalogSvc catalog.Service, sessions *remito.Sessions, publicDir string) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rutas simples OK"))
	})

	ch := handler.NewCatalogHandler(catalogSvc)
	ph := handler.NewPedidoHandler(sessions)

	r.Get("/api/catalogo", ch.GetCatalog)

	r.Route("/api/pedidos", func(r chi.Router) {
		r.Post("/", ph.CreatePedido)
		r.Get("/{id}", ph.GetPedido)
		r.Post("/{id}/items", ph.AddItem)
		r.Delete("/{id}/items/{index}", ph.RemoveItem)
		r.Put("/{id}/cliente", ph.SetCliente)
		r.Post("/{id}/remito", ph.GenerateRemito)
		r.Get("/{id}/remito.pdf", ph.DownloadRemito)
		r.Get("/{id}/whatsapp", ph.ShareWhatsApp)
	})

	if publicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(publicDir)))
	}

	return r
}
