package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
	portEntry  *widget.Entry
}

// ShowSettingsWindow displays the configuration window.
func (app *ContactsApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.LogMsgSetFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.LogMsgSetOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	saveAction := func() {
		// Only the port blocks saving; everything else is free text.
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from preferences and the keyring.
func (app *ContactsApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.SetPlaceHolder(config.PlaceholderURL)

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.portEntry = widget.NewEntry()
	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.portEntry.Validator = app.validatePort

	return sw
}

// validatePort accepts a decimal TCP port between config.MinPort and config.MaxPort.
func (app *ContactsApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the import source selection UI.
func (app *ContactsApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	setVisibility := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	}
	setVisibility(sw.modeSelect.Selected)

	sw.modeSelect.OnChanged = func(mode string) {
		setVisibility(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the form. A new port takes effect on the next start.
func (app *ContactsApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavingSettings, config.LogKeyComponent, config.CompUISet)

	modeMap := map[string]string{
		app.GetMsg(config.TKeyModeCardDAV): config.SourceModeWeb,
		app.GetMsg(config.TKeyModeLocal):   config.SourceModeLocal,
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, modeMap[sw.modeSelect.Selected])
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	if sw.portEntry.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
	}

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringWrite, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.UpdateLocalizer()
	app.relabelMainWindow()
}

// relabelMainWindow rebuilds the main window content in the current language.
func (app *ContactsApp) relabelMainWindow() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildMainContent())
	if app.searchTerm != "" {
		app.searchEntry.SetText(app.searchTerm)
	}
	app.refreshView()
}
