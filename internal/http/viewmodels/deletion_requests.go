package viewmodels

type DeletionRequestItem struct {
	ID             int64
	AssetID        int64
	AssetGone      bool
	AssetName      string
	AssetTag       string
	RequesterEmail string
	Reason         string
	Status         string
	StatusLabel    string
	BadgeClass     string
	DeciderEmail   string
	DecisionNote   string
	CreatedAt      string
	DecidedAt      string
	IsPending      bool
}

type DeletionRequestsViewData struct {
	Layout        LayoutData
	Requests      []DeletionRequestItem
	HasRequests   bool
	StatusFilter  string
	StatusOptions []StatusOption
	Page          int
	TotalPages    int
	TotalCount    int64
	ShowingFrom   int
	ShowingTo     int
}
