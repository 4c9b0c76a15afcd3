package viewmodels

// RefListViewData renders the departments and categories admin pages; the
// two differ only in heading and base path.
type RefListViewData struct {
	Layout   LayoutData
	Heading  string
	Singular string
	BasePath string
	Items    []RefItem
	HasItems bool
	Form     RefForm
	Alert    *Alert
}

type RefItem struct {
	ID          int64
	Name        string
	Description string
	AssetCount  int64
	CanDelete   bool
}

type RefForm struct {
	Name        string
	Description string
}
