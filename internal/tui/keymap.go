package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/hersh/gotris/internal/config"
)

// KeyMap holds the bindings for every in-game action.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	Hold      key.Binding
	Pause     key.Binding
	Quit      key.Binding
	Start     key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	return KeyMap{
		Left:      binding(cfg.Left, "left"),
		Right:     binding(cfg.Right, "right"),
		SoftDrop:  binding(cfg.SoftDrop, "soft drop"),
		HardDrop:  binding(cfg.HardDrop, "hard drop"),
		RotateCW:  binding(cfg.RotateCW, "rotate"),
		RotateCCW: binding(cfg.RotateCCW, "rotate back"),
		Hold:      binding(cfg.Hold, "hold"),
		Pause:     binding(cfg.Pause, "pause"),
		Quit:      binding(cfg.Quit, "quit"),
		Start:     binding(cfg.Start, "start"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys), desc),
	)
}

// keyLabel shows at most two keys, with the space bar spelled out.
func keyLabel(keys []string) string {
	labels := make([]string, 0, 2)
	for _, k := range keys {
		if len(labels) == 2 {
			break
		}
		if k == " " {
			k = "space"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, "/")
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.HardDrop, k.Hold, k.Pause}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCCW, k.Hold},
		{k.Pause, k.Quit},
	}
}
