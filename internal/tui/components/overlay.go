package components

import lipgloss "charm.land/lipgloss/v2"

// Center composites modal over background, centered in a width x height
// screen. An empty modal returns background unchanged.
func Center(background, modal string, width, height int) string {
	if modal == "" {
		return background
	}

	layer := lipgloss.NewLayer(modal).
		X(max((width-lipgloss.Width(modal))/2, 0)).
		Y(max((height-lipgloss.Height(modal))/2, 0)).
		Z(1)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
