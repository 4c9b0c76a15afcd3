package viewmodels

type LandingViewData struct {
	Layout LayoutData
}
