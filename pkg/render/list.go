package render

import "github.com/goliatone/go-recipebook/pkg/model"

// List is the input of a Renderer: the (possibly filtered) items of one
// collection in display order.
type List struct {
	Collection model.Collection
	Items      []model.Item
}

// Entry is one rendered row.
type Entry struct {
	Name   string
	Detail string
}

// Text returns the single line form of the entry, "name: detail" when a detail
// is shown.
func (e Entry) Text(showDetail bool) string {
	if !showDetail {
		return e.Name
	}
	return e.Name + ": " + e.Detail
}

// Project maps every item to an Entry, preserving order. Instructions are
// only carried for collections that show them.
func Project(list List) []Entry {
	out := make([]Entry, 0, len(list.Items))
	for _, item := range list.Items {
		entry := Entry{Name: item.Name}
		if list.Collection.ShowInstructions {
			entry.Detail = item.Instructions
		}
		out = append(out, entry)
	}
	return out
}
