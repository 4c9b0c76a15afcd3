package viewmodels

type AdminDashboardViewData struct {
	Layout          LayoutData
	TotalAssets     int64
	TotalUsers      int64
	PendingRequests int64
	StatusCounts    []StatusCount
	RecentRequests  []DeletionRequestItem
}

type StatusCount struct {
	Status     string
	Label      string
	BadgeClass string
	Count      int64
}

type UserHomeViewData struct {
	Layout         LayoutData
	TotalAssets    int64
	StatusCounts   []StatusCount
	RecentRequests []DeletionRequestItem
}
