package cmd

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// newHuhEscBackKeyMap keeps default Huh bindings and adds esc as a quit/back key.
// q is left alone so it can be typed into language and account inputs.
func newHuhEscBackKeyMap() *huh.KeyMap {
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "back"),
	)
	return keyMap
}
