package catalog

import "strings"

// Filter derives the visible subset of the catalog
type Filter struct {
	Query    string
	Category Selector
}

// Result is a computed filter output. The zero value means "not computed
// yet"; a computed result with no items is a valid empty state.
type Result struct {
	Items  []Item
	Loaded bool
}

// Empty reports whether the filter ran and matched nothing
func (r Result) Empty() bool {
	return r.Loaded && len(r.Items) == 0
}

// Apply scans items in order and keeps the ones matching query and category
func (f Filter) Apply(items []Item) Result {
	selector := f.Category
	if selector == "" {
		selector = SelectAll
	}
	query := strings.ToLower(f.Query)

	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if !selector.Matches(item.Category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		matched = append(matched, item)
	}

	return Result{Items: matched, Loaded: true}
}
