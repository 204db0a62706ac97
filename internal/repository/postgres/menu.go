package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
)

type menuRow struct {
	ID       uuid.UUID  `db:"id"`
	ParentID *uuid.UUID `db:"parent_id"`
	Path     string     `db:"path"`
	Title    string     `db:"title"`
	Position int        `db:"position"`
	model.Actions
}

// MenuForRole assembles the nested permission menu for a role from the
// flat menu_entries rows. Top-level entries come first in position
// order, children attach to their parent in position order.
func (r *menuRepository) MenuForRole(ctx context.Context, roleName string) (model.Menu, error) {
	query := `
		SELECT m.id, m.parent_id, m.path, m.title, m.position,
			rm.can_view, rm.can_add, rm.can_edit, rm.can_delete
		FROM menu_entries m
		JOIN role_menus rm ON rm.menu_entry_id = m.id
		WHERE rm.role_name = $1
		ORDER BY m.position ASC
	`
	var rows []menuRow
	if err := r.db.SelectContext(ctx, &rows, query, roleName); err != nil {
		return nil, fmt.Errorf("failed to load menu for role %q: %w", roleName, err)
	}

	byParent := make(map[uuid.UUID][]menuRow)
	var top []menuRow
	for _, row := range rows {
		if row.ParentID == nil {
			top = append(top, row)
			continue
		}
		byParent[*row.ParentID] = append(byParent[*row.ParentID], row)
	}

	menu := make(model.Menu, 0, len(top))
	for _, row := range top {
		entry := model.MenuEntry{
			Path:    row.Path,
			Title:   row.Title,
			Actions: row.Actions,
		}
		for _, child := range byParent[row.ID] {
			entry.SubMenu = append(entry.SubMenu, model.MenuEntry{
				Path:    child.Path,
				Title:   child.Title,
				Actions: child.Actions,
			})
		}
		menu = append(menu, entry)
	}
	return menu, nil
}
