package viewmodels

type AssetItem struct {
	ID             int64
	Tag            string
	Name           string
	SerialNumber   string
	Status         string
	StatusLabel    string
	BadgeClass     string
	OwnerEmail     string
	DepartmentName string
	CategoryName   string
	UpdatedAt      string
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

type RefOption struct {
	ID       int64
	Name     string
	Selected bool
}

type AssetsListViewData struct {
	Layout        LayoutData
	Assets        []AssetItem
	HasAssets     bool
	Query         string
	StatusFilter  string
	StatusOptions []StatusOption
	// BasePath distinguishes the admin list from a user's own list; links
	// and the search form post back to it.
	BasePath    string
	ShowOwner   bool
	BulkDelete  bool
	Page        int
	TotalPages  int
	TotalCount  int64
	ShowingFrom int
	ShowingTo   int
}

type AssetForm struct {
	Name         string
	SerialNumber string
	Description  string
	Status       string
	DepartmentID int64
	CategoryID   int64
}

type AssetFormViewData struct {
	Layout        LayoutData
	Form          AssetForm
	Editing       bool
	AssetID       int64
	AssetTag      string
	Departments   []RefOption
	Categories    []RefOption
	StatusOptions []StatusOption
	Alert         *Alert
}

type AssetDetailViewData struct {
	Layout            LayoutData
	Asset             AssetItem
	Description       string
	CreatedAt         string
	HasPendingRequest bool
	RecentRequests    []DeletionRequestItem
}
