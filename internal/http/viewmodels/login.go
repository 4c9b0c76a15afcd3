package viewmodels

type LoginViewData struct {
	CSRFToken     string
	Email         string
	Next          string
	ErrorMessage  string
	SetupRequired bool
	Toast         *ToastViewData
}

type ResetPasswordViewData struct {
	CSRFToken      string
	Token          string
	Email          string
	ErrorMessage   string
	SuccessMessage string
	TokenValid     bool
	Toast          *ToastViewData
}
