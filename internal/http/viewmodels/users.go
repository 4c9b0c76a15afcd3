package viewmodels

type UsersForm struct {
	Email string
	Role  string
}

type UsersUserItem struct {
	ID             int64
	Email          string
	Role           string
	IsActive       bool
	LastLogin      string
	LastLoginTitle string
	IsSelf         bool
	IsLastAdmin    bool
	CanEditRole    bool
	CanDelete      bool
}

type UsersEditForm struct {
	ID                 int64
	Email              string
	Role               string
	IsActive           bool
	RoleDisabled       bool
	RoleDisabledReason string
}

type UsersViewData struct {
	Layout   LayoutData
	Users    []UsersUserItem
	HasUsers bool
	OpenAdd  bool
	OpenEdit bool
	Form     UsersForm
	EditForm UsersEditForm
	Alert    *Alert
	// ResetLink carries a freshly minted password reset URL back to the
	// admin who asked for it.
	ResetLink      string
	ResetLinkEmail string
}
