package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/server"
	"github.com/zalando/go-keyring"
)

// ContactsApp encapsulates the UI state, preferences, and the wiring between
// the contact store, the feed server and the importer.
type ContactsApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store    *contacts.Store
	Server   *server.ContactsServer
	Importer *contacts.Importer

	SupportedLanguages []string

	// View state. Only touched from the Fyne event goroutine.
	searchTerm string
	darkMode   bool
	rows       []listRow

	settingsWindow fyne.Window

	searchEntry *widget.Entry
	countLabel  *widget.Label
	emptyLabel  *widget.Label
	themeButton *widget.Button
	list        *widget.List
}

// NewContactsApp constructs the application and wires dependencies.
func NewContactsApp(a fyne.App, ctx context.Context, store *contacts.Store, srv *server.ContactsServer, importer *contacts.Importer) *ContactsApp {
	a.SetIcon(theme.AccountIcon())

	return &ContactsApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              store,
		Server:             srv,
		Importer:           importer,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the feed server and blocks in the UI loop.
func (app *ContactsApp) Run() {
	app.SetupI18n()

	app.darkMode = contacts.LoadDarkMode(app.Preferences)
	app.applyTheme()

	app.Store.OnChange(app.handleStoreChange)
	app.publish(app.Store.Contacts())

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.ShowMainWindow()
	app.App.Run()
}

// handleStoreChange runs after every store save. The store may call it from
// a background goroutine, so widget updates are marshalled with fyne.Do.
func (app *ContactsApp) handleStoreChange(snapshot []contacts.Contact) {
	app.publish(snapshot)
	fyne.Do(app.refreshView)
}

// publish pushes the collection to the local vCard feed.
func (app *ContactsApp) publish(list []contacts.Contact) {
	if app.Server == nil {
		return
	}
	if err := app.Server.Publish(list); err != nil {
		slog.Error(config.ErrVCardEncode,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
	}
}

// loadImportConfig assembles the importer configuration from preferences and the keyring.
func (app *ContactsApp) loadImportConfig() contacts.ImportConfig {
	cfg := contacts.ImportConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeWeb),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

// runImport reads the configured source in the background and merges the
// result into the store on the UI goroutine.
func (app *ContactsApp) runImport() {
	cfg := app.loadImportConfig()

	go func() {
		candidates, err := app.Importer.Run(app.Ctx, cfg)
		fyne.Do(func() {
			app.finishImport(candidates, err)
		})
	}()
}

// importFrom decodes a vCard stream chosen by the user and merges it.
func (app *ContactsApp) importFrom(r io.Reader) contacts.ImportReport {
	candidates, err := contacts.DecodeVCards(app.Ctx, r)
	if err != nil {
		err = fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}
	return app.finishImport(candidates, err)
}

// finishImport merges candidates into the store and reports the outcome.
func (app *ContactsApp) finishImport(candidates []contacts.Candidate, err error) contacts.ImportReport {
	if err != nil {
		slog.Error(config.ErrImportFailed,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		app.showMessage(app.GetMsg(config.TKeyImportFailed))
		return contacts.ImportReport{}
	}

	report := app.Store.Import(candidates)
	app.showMessage(app.localize(config.TKeyImportResult, map[string]interface{}{
		"Added":   report.Added,
		"Skipped": report.Skipped,
	}, nil))
	return report
}

// exportTo writes every stored contact to w as vCards.
func (app *ContactsApp) exportTo(w io.Writer) error {
	list := app.Store.Contacts()
	if err := contacts.EncodeVCards(w, list); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportFailed, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyCount, len(list),
		config.LogKeyComponent, config.CompUI)
	app.showMessage(app.localize(config.TKeyExportDone, map[string]interface{}{"Count": len(list)}, len(list)))
	return nil
}

// showMessage informs the user in the main window, or via a system
// notification when no window is open.
func (app *ContactsApp) showMessage(msg string) {
	if app.Window != nil {
		dialog.ShowInformation(config.AppName, msg, app.Window)
		return
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName, msg))
}
