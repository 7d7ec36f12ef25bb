package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme is a light palette with a red accent matching the selection overlay.
type Theme struct{}

func NewTheme() fyne.Theme {
	return &Theme{}
}

func (t *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNameBackground:
		if dark {
			return color.NRGBA{R: 28, G: 28, B: 30, A: 255}
		}
		return color.NRGBA{R: 248, G: 248, B: 246, A: 255}
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return color.NRGBA{R: 214, G: 48, B: 49, A: 255}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 214, G: 48, B: 49, A: 64}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameInnerPadding {
		return 6
	}
	return theme.DefaultTheme().Size(name)
}
