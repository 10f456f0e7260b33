package catalog

// Entry is one sellable product mirrored from the spreadsheet catalog.
// Field names follow the sheet headers (ID, Producto, Precio, Categoría).
type Entry struct {
	ID        string  `json:"id"`
	Producto  string  `json:"producto"`
	Precio    float64 `json:"precio"`
	Categoria string  `json:"categoria"`
}
