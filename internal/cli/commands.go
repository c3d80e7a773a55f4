package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/todo/internal/todos"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/spf13/cobra"
)

func newLsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withList(cmd.Context(), func(mgr *todos.Manager, surf *textSurface) error {
				group := app.Group || app.cfg.Group
				ui.Panel(app.out, listLines(surf.view, group))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&app.Group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return usagef("add: empty text")
			}
			return app.withList(cmd.Context(), func(mgr *todos.Manager, _ *textSurface) error {
				it, _ := mgr.AddItem(text)
				ui.OK(app.out, "added "+ui.Dim(shortID(it.ID)))
				return nil
			})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <ref>",
		Aliases: []string{"done"},
		Short:   "Toggle done for an item (1-based index or id prefix)",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withList(cmd.Context(), func(mgr *todos.Manager, _ *textSurface) error {
				id, err := resolve(mgr, args[0])
				if err != nil {
					return err
				}
				mgr.ToggleItem(id)
				it, _ := mgr.Find(id)
				if it.Completed {
					ui.OK(app.out, "done")
				} else {
					ui.OK(app.out, "reopened")
				}
				return nil
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace an item's text; empty text removes it",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withList(cmd.Context(), func(mgr *todos.Manager, _ *textSurface) error {
				id, err := resolve(mgr, args[0])
				if err != nil {
					return err
				}
				text := strings.Join(args[1:], " ")
				mgr.BeginEdit(id)
				mgr.CommitEdit(id, text)
				if _, ok := mgr.Find(id); !ok {
					ui.OK(app.out, "removed")
					return nil
				}
				ui.OK(app.out, "updated")
				return nil
			})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withList(cmd.Context(), func(mgr *todos.Manager, _ *textSurface) error {
				id, err := resolve(mgr, args[0])
				if err != nil {
					return err
				}
				mgr.DeleteItem(id)
				ui.OK(app.out, "removed")
				return nil
			})
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item (asks first)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withList(cmd.Context(), func(mgr *todos.Manager, _ *textSurface) error {
				if !mgr.ClearAll() {
					ui.OK(app.out, "kept")
					return nil
				}
				ui.OK(app.out, "cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&app.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// resolve turns a lookup miss into a usage error with a hint.
func resolve(mgr *todos.Manager, ref string) (string, error) {
	id, err := mgr.Resolve(ref)
	if errors.Is(err, todos.ErrNotFound) || errors.Is(err, todos.ErrAmbiguous) {
		return "", usagef("%v (run `todo ls` to see items)", err)
	}
	return id, err
}

// -------------- rendering helpers --------------

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func listLines(v todos.View, group bool) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), v.Done,
		ui.C(t.Pending, t.SymUnchecked), v.Pending,
		ui.C(t.Accent, "Total"), v.Total(),
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(v.Done, v.Total(), 28)), ""}
	if v.Empty {
		lines = append(lines, ui.C(t.Title, todos.EmptyTitle), ui.C(t.Muted, todos.EmptyHint))
	} else if group {
		lines = append(lines, groupLines(v.Rows)...)
	} else {
		lines = append(lines, flatLines(v.Rows, nil)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

// flatLines numbers rows by their position in the full list; pos maps a row
// index to that position when rows is a subset.
func flatLines(rows []todos.Row, pos []int) []string {
	t := ui.Current()
	out := make([]string, 0, len(rows))
	for i, r := range rows {
		n := i + 1
		if pos != nil {
			n = pos[i] + 1
		}
		box, color := t.BoxUnchecked, t.Muted
		if r.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", n)), ui.C(color, box), ui.Truncate(r.Text, 80), ui.Dim(shortID(r.ID))))
	}
	return out
}

func groupLines(rows []todos.Row) []string {
	var pend, done []todos.Row
	var pendPos, donePos []int
	for i, r := range rows {
		if r.Completed {
			done, donePos = append(done, r), append(donePos, i)
		} else {
			pend, pendPos = append(pend, r), append(pendPos, i)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, pendPos)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, donePos)...)
	}
	return lines
}
