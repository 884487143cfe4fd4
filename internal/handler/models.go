package handler

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GroupRequest struct {
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Priority  int    `json:"priority"`
	NameColor string `json:"name_color"`
}

type GroupNameRequest struct {
	Name string `json:"name"`
}

type GroupResponse struct {
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
	Priority  int    `json:"priority"`
	NameColor string `json:"name_color,omitempty"`
}

type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

type MigrateRequest struct {
	Path string `json:"path"`
}

type MigrationResponse struct {
	Migrated   []string `json:"migrated"`
	Skipped    []string `json:"skipped"`
	Removed    []string `json:"removed"`
	ChatFormat string   `json:"chat_format,omitempty"`
	TabFormat  string   `json:"tab_format,omitempty"`
}

type UserRequest struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Permissions []string `json:"permissions"`
}

type UserIDRequest struct {
	UserID string `json:"user_id"`
}

type PermissionsRequest struct {
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
}

type ResolveResponse struct {
	UserID string `json:"user_id"`
	Group  string `json:"group"`
}

type BindingResponse struct {
	UserID     string `json:"user_id"`
	Entry      string `json:"entry"`
	Group      string `json:"group"`
	Identifier string `json:"identifier"`
	Prefix     string `json:"prefix"`
	Suffix     string `json:"suffix"`
}

type BackendGroupChangedRequest struct {
	Group string `json:"group"`
}

type ChatFormatRequest struct {
	Enabled *bool   `json:"enabled"`
	Format  *string `json:"format"`
}

type ChatFormatResponse struct {
	Enabled bool   `json:"enabled"`
	Format  string `json:"format"`
}

type TabFormatRequest struct {
	Enabled         *bool   `json:"enabled"`
	Format          *string `json:"format"`
	SpaceBeforeName *bool   `json:"space_before_name"`
}

type TabFormatResponse struct {
	Enabled         bool   `json:"enabled"`
	Format          string `json:"format"`
	SpaceBeforeName bool   `json:"space_before_name"`
}

type ChatLineRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type ChatLineResponse struct {
	Enabled  bool   `json:"enabled"`
	Line     string `json:"line,omitempty"`
	ListName string `json:"list_name"`
}

type TeamResponse struct {
	Name              string   `json:"name"`
	Prefix            string   `json:"prefix"`
	Suffix            string   `json:"suffix"`
	NameTagVisibility string   `json:"name_tag_visibility"`
	CollisionRule     string   `json:"collision_rule"`
	Entries           []string `json:"entries"`
}

type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
}
