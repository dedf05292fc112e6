package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// contactsTheme is the default Fyne theme pinned to one variant, so the
// user's choice wins over the OS setting.
type contactsTheme struct {
	variant fyne.ThemeVariant
}

var _ fyne.Theme = contactsTheme{}

func newContactsTheme(dark bool) contactsTheme {
	if dark {
		return contactsTheme{variant: theme.VariantDark}
	}
	return contactsTheme{variant: theme.VariantLight}
}

func (t contactsTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, t.variant)
}

func (t contactsTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t contactsTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t contactsTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// avatarPalette holds config.AvatarPaletteSize badge colours.
var avatarPalette = [config.AvatarPaletteSize]color.NRGBA{
	{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF},
	{R: 0xD8, G: 0x1B, B: 0x60, A: 0xFF},
	{R: 0x8E, G: 0x24, B: 0xAA, A: 0xFF},
	{R: 0x5E, G: 0x35, B: 0xB1, A: 0xFF},
	{R: 0x39, G: 0x49, B: 0xAB, A: 0xFF},
	{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF},
	{R: 0x00, G: 0x89, B: 0x7B, A: 0xFF},
	{R: 0x43, G: 0xA0, B: 0x47, A: 0xFF},
	{R: 0xF4, G: 0x51, B: 0x1E, A: 0xFF},
	{R: 0x6D, G: 0x4C, B: 0x41, A: 0xFF},
}

func avatarColor(name string) color.Color {
	return avatarPalette[contacts.AvatarIndex(name, len(avatarPalette))]
}

// applyTheme installs the theme matching app.darkMode.
func (app *ContactsApp) applyTheme() {
	app.App.Settings().SetTheme(newContactsTheme(app.darkMode))
	if app.themeButton != nil {
		app.themeButton.SetText(app.themeButtonText())
	}
}

// toggleTheme flips between light and dark and persists the choice.
func (app *ContactsApp) toggleTheme() {
	app.darkMode = !app.darkMode
	contacts.SaveDarkMode(app.Preferences, app.darkMode)
	app.applyTheme()

	slog.Info(config.MsgThemeChanged,
		config.LogKeyDarkMode, app.darkMode,
		config.LogKeyComponent, config.CompUI)
}

// themeButtonText names the mode the button switches to.
func (app *ContactsApp) themeButtonText() string {
	if app.darkMode {
		return app.GetMsg(config.TKeyBtnLightMode)
	}
	return app.GetMsg(config.TKeyBtnDarkMode)
}
