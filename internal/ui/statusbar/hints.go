package statusbar

import "github.com/riordanpawley/taskflow/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: tasks  n: new  enter: edit  m: move  /: search  ?: help  q: quit"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: clear"
	case types.ModeGrab:
		return "h/l: choose column  Enter: drop  Esc: cancel"
	default:
		return ""
	}
}
