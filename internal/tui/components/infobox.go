// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/styles"
)

// keySeparator joins the keys that share one info box row.
const keySeparator = ", "

// InfoBox shows the bindings reachable from a pending key sequence.
type InfoBox struct {
	info keymap.Info
}

// NewInfoBox creates an info box for info.
func NewInfoBox(info keymap.Info) *InfoBox {
	return &InfoBox{info: info}
}

// View renders the info box.
func (b *InfoBox) View() string {
	keyWidth := 0
	for _, e := range b.info.Entries {
		keyWidth = max(keyWidth, lipgloss.Width(strings.Join(e.Keys, keySeparator)))
	}

	lines := make([]string, 0, len(b.info.Entries)+1)
	if b.info.Title != "" {
		lines = append(lines, styles.InfoBoxTitle.Render(b.info.Title))
	}
	for _, e := range b.info.Entries {
		lines = append(lines, formatKeyDesc(strings.Join(e.Keys, keySeparator), e.Desc, keyWidth))
	}

	return styles.InfoBoxStyle.Render(strings.Join(lines, "\n"))
}

// Overlay renders the info box as a layer over the bottom-right corner of
// the background. Boxes larger than the area are clipped by the compositor.
func (b *InfoBox) Overlay(background string, width, height int) string {
	box := b.View()

	bgLayer := lipgloss.NewLayer(background)
	boxLayer := lipgloss.NewLayer(box)

	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	boxLayer.X(max(width-boxW, 0)).Y(max(height-boxH, 0)).Z(1)

	compositor := lipgloss.NewCompositor(bgLayer, boxLayer)
	return compositor.Render()
}

// formatKeyDesc formats a key-description pair with consistent alignment.
func formatKeyDesc(key, desc string, keyWidth int) string {
	// Pad key to fixed width for alignment using display width (handles Unicode)
	padding := strings.Repeat(" ", keyWidth-lipgloss.Width(key)+2)
	return styles.InfoBoxKeyStyle.Render(key+padding) + styles.InfoBoxDescStyle.Render(desc)
}
