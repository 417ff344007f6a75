package dictionary

// GroupDef is one curated work-group label offered to document editors.
// Uploads are not restricted to this list; it only feeds pickers in the UI.
type GroupDef struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var curated = []GroupDef{
	{Code: "razborka", Label: "Разборка"},
	{Code: "defektovka", Label: "Дефектовка"},
	{Code: "peremotka", Label: "Перемотка"},
	{Code: "zamena_zapchastey", Label: "Замена запчастей"},
	{Code: "mekhanicheskie_raboty", Label: "Механические работы"},
	{Code: "sborka", Label: "Сборка"},
	{Code: "balansirovka", Label: "Балансировка"},
	{Code: "ispytaniya", Label: "Испытания"},
	{Code: "pokraska", Label: "Покраска"},
	{Code: "dostavka", Label: "Доставка"},
}

// Groups returns the curated list in display order.
func Groups() []GroupDef {
	out := make([]GroupDef, len(curated))
	copy(out, curated)
	return out
}

// IsKnown reports whether label matches a curated work group.
func IsKnown(label string) bool {
	for _, g := range curated {
		if g.Label == label {
			return true
		}
	}
	return false
}
