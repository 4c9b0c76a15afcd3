// Package viewmodels holds the plain data structures handed to views.
// Handlers do all loading and shaping; views only read these.
package viewmodels

type LayoutData struct {
	Title      string
	CSRFToken  string
	UserEmail  string
	UserRole   string
	SignedIn   bool
	IsAdmin    bool
	// PendingRequests feeds the nav badge for open deletion requests;
	// only populated for admins.
	PendingRequests int64
	Toast           *ToastViewData
	ActivePath      string
}

type ToastViewData struct {
	Category    string
	Title       string
	Description string
}

// Alert is an inline form alert rendered inside the page that triggered it.
type Alert struct {
	Title       string
	Message     string
	Destructive bool
}
