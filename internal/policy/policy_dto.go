package policy

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type RoleResponse struct {
	Name        string               `json:"name"`
	SuperAdmin  bool                 `json:"superAdmin"`
	Permissions []PermissionResponse `json:"permissions"`
}
