package model

// Action is one of the four operations a module grants per role.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions is the per-entry grant set.
type Actions struct {
	View   bool `db:"can_view" json:"view"`
	Add    bool `db:"can_add" json:"add"`
	Edit   bool `db:"can_edit" json:"edit"`
	Delete bool `db:"can_delete" json:"delete"`
}

func (a Actions) Allows(action Action) bool {
	switch action {
	case ActionView:
		return a.View
	case ActionAdd:
		return a.Add
	case ActionEdit:
		return a.Edit
	case ActionDelete:
		return a.Delete
	}
	return false
}

// MenuEntry is one module the role can reach. Path is the stable module
// key (e.g. "admin/pharmacy"), not a URL.
type MenuEntry struct {
	Path    string      `json:"path"`
	Title   string      `json:"title"`
	Actions Actions     `json:"actions"`
	SubMenu []MenuEntry `json:"sub_menu,omitempty"`
}

// Menu is the permission menu issued at login. It is read-only for the
// lifetime of the session.
type Menu []MenuEntry

// Lookup finds the entry for a module path, searching one level of
// sub-menus. A missing path means no access.
func (m Menu) Lookup(path string) (MenuEntry, bool) {
	for _, e := range m {
		if e.Path == path {
			return e, true
		}
		for _, sub := range e.SubMenu {
			if sub.Path == path {
				return sub, true
			}
		}
	}
	return MenuEntry{}, false
}
