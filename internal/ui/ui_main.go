package ui

import (
	"image/color"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// listRow is one line of the flattened grouped list: either a group header
// or a contact.
type listRow struct {
	Header  string
	Contact *contacts.Contact
}

// flattenGroups turns grouped contacts into list rows, each group preceded
// by its header.
func flattenGroups(groups []contacts.Group) []listRow {
	rows := make([]listRow, 0, len(groups)+contacts.Count(groups))
	for _, g := range groups {
		rows = append(rows, listRow{Header: g.Label})
		for i := range g.Contacts {
			rows = append(rows, listRow{Contact: &g.Contacts[i]})
		}
	}
	return rows
}

// ShowMainWindow opens the contact list, or focuses it if already open.
func (app *ContactsApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenWin, config.LogKeyComponent, config.CompUI)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetContent(app.buildMainContent())
	w.SetMaster()
	w.SetOnClosed(func() {
		app.Window = nil
		app.list = nil
		app.countLabel = nil
		app.emptyLabel = nil
		app.themeButton = nil
		app.searchEntry = nil
	})

	app.refreshView()
	w.Show()
}

// buildMainContent assembles the header bar and the grouped list.
func (app *ContactsApp) buildMainContent() fyne.CanvasObject {
	app.searchEntry = widget.NewEntry()
	app.searchEntry.SetPlaceHolder(app.GetMsg(config.TKeySearchHint))
	app.searchEntry.OnChanged = app.setSearchTerm

	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.showContactForm(nil)
	})
	addBtn.Importance = widget.HighImportance

	app.themeButton = widget.NewButtonWithIcon(app.themeButtonText(), theme.ColorPaletteIcon(), app.toggleTheme)

	var importBtn *widget.Button
	importBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.DownloadIcon(), func() {
		menu := fyne.NewMenu("",
			fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSource), app.runImport),
			fyne.NewMenuItem(app.GetMsg(config.TKeyBtnImportFile), app.showImportFileDialog),
		)
		pos := app.App.Driver().AbsolutePositionForObject(importBtn)
		widget.ShowPopUpMenuAtPosition(menu, app.Window.Canvas(), pos.AddXY(0, importBtn.Size().Height))
	})

	exportBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.UploadIcon(), app.showExportDialog)
	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	actions := container.NewHBox(addBtn, app.themeButton, importBtn, exportBtn, settingsBtn)
	header := container.NewBorder(nil, nil, nil, actions, app.searchEntry)

	app.countLabel = widget.NewLabel("")
	app.countLabel.TextStyle = fyne.TextStyle{Italic: true}

	app.emptyLabel = widget.NewLabel("")
	app.emptyLabel.Alignment = fyne.TextAlignCenter
	app.emptyLabel.Hide()

	app.list = widget.NewList(
		func() int {
			return len(app.rows)
		},
		func() fyne.CanvasObject {
			return newContactRow()
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(app.rows) {
				return
			}
			app.bindRow(o.(*contactRow), app.rows[id])
		},
	)
	app.list.OnSelected = func(id widget.ListItemID) {
		app.list.UnselectAll()
		if id < len(app.rows) && app.rows[id].Contact != nil {
			c := *app.rows[id].Contact
			app.showContactForm(&c)
		}
	}

	top := container.NewVBox(header, app.countLabel)
	return container.NewBorder(top, nil, nil, nil, container.NewStack(app.list, container.NewCenter(app.emptyLabel)))
}

// setSearchTerm recomputes the view for a new filter.
func (app *ContactsApp) setSearchTerm(term string) {
	app.searchTerm = term
	app.refreshView()
}

// refreshView rebuilds the grouped rows from the store and updates the
// widgets that show them. It is safe to call before the window exists.
func (app *ContactsApp) refreshView() {
	all := app.Store.Contacts()
	groups := contacts.BuildView(all, app.searchTerm)
	app.rows = flattenGroups(groups)
	visible := contacts.Count(groups)

	slog.Debug(config.LogMsgViewBuilt,
		config.LogKeyGroups, len(groups),
		config.LogKeyCount, visible,
		config.LogKeyTerm, app.searchTerm,
		config.LogKeyComponent, config.CompUI)

	if app.countLabel != nil {
		app.countLabel.SetText(app.countText(visible))
	}
	if app.emptyLabel != nil {
		if visible == 0 {
			app.emptyLabel.SetText(app.emptyText(len(all)))
			app.emptyLabel.Show()
		} else {
			app.emptyLabel.Hide()
		}
	}
	if app.list != nil {
		app.list.Refresh()
	}
}

// emptyText distinguishes an empty address book from a search with no hits.
func (app *ContactsApp) emptyText(total int) string {
	if total > 0 {
		return app.GetMsg(config.TKeyNoMatches)
	}
	return app.GetMsg(config.TKeyEmptyTitle) + "\n" + app.GetMsg(config.TKeyEmptyHint)
}

// bindRow fills a recycled row widget.
func (app *ContactsApp) bindRow(r *contactRow, row listRow) {
	if row.Contact == nil {
		r.showHeader(row.Header)
		return
	}

	c := *row.Contact
	r.showContact(c)
	r.favBtn.OnTapped = func() { app.Store.ToggleFavorite(c.ID) }
	r.editBtn.OnTapped = func() { app.showContactForm(&c) }
	r.delBtn.OnTapped = func() { app.confirmDelete(c) }
}

// confirmDelete asks before removing c from the store.
func (app *ContactsApp) confirmDelete(c contacts.Contact) {
	msg := app.localize(config.TKeyDlgDelMsg, map[string]interface{}{"Name": c.Name}, nil)
	dialog.ShowConfirm(app.GetMsg(config.TKeyDlgDelTitle), msg, func(ok bool) {
		if ok {
			app.Store.Delete(c.ID)
		}
	}, app.Window)
}

func (app *ContactsApp) showExportDialog() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if wc == nil {
			return
		}
		defer func() { _ = wc.Close() }()

		if err := app.exportTo(wc); err != nil {
			slog.Error(config.ErrExportFailed,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.SetFileName(config.ExportFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

func (app *ContactsApp) showImportFileDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if rc == nil {
			return
		}
		defer func() { _ = rc.Close() }()
		app.importFrom(rc)
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// -----------------------------------------------------------------------------
// Row Widget
// -----------------------------------------------------------------------------

// contactRow renders either a group header or a contact with its actions.
// widget.List recycles rows, so both shapes live in one widget.
type contactRow struct {
	widget.BaseWidget

	header  *widget.Label
	badgeBg *canvas.Circle
	badge   *canvas.Text
	name    *widget.Label
	detail  *widget.Label
	favBtn  *widget.Button
	editBtn *widget.Button
	delBtn  *widget.Button
	body    *fyne.Container
}

func newContactRow() *contactRow {
	r := &contactRow{
		header:  widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		badgeBg: canvas.NewCircle(color.Transparent),
		badge:   canvas.NewText("", color.White),
		name:    widget.NewLabel(config.ListPlaceholder),
		detail:  widget.NewLabel(""),
		favBtn:  widget.NewButton(config.FavoriteOff, nil),
		editBtn: widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
		delBtn:  widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	r.badge.Alignment = fyne.TextAlignCenter
	r.badge.TextStyle = fyne.TextStyle{Bold: true}
	r.name.TextStyle = fyne.TextStyle{Bold: true}
	r.detail.Truncation = fyne.TextTruncateEllipsis
	r.delBtn.Importance = widget.DangerImportance

	avatar := container.NewGridWrap(fyne.NewSquareSize(config.AvatarSize),
		container.NewStack(r.badgeBg, container.NewCenter(r.badge)))
	info := container.NewBorder(nil, nil, r.name, nil, r.detail)
	actions := container.NewHBox(r.favBtn, r.editBtn, r.delBtn)
	r.body = container.NewBorder(nil, nil, container.NewCenter(avatar), actions, info)

	r.ExtendBaseWidget(r)
	return r
}

func (r *contactRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(r.header, r.body))
}

func (r *contactRow) showHeader(label string) {
	r.header.SetText(label)
	r.header.Show()
	r.body.Hide()
}

func (r *contactRow) showContact(c contacts.Contact) {
	r.header.Hide()

	r.badge.Text = contacts.Initials(c.Name)
	r.badge.Refresh()
	r.badgeBg.FillColor = avatarColor(c.Name)
	r.badgeBg.Refresh()

	name := c.Name
	star := config.FavoriteOff
	if c.IsFavorite {
		name += " " + config.FavoriteOn
		star = config.FavoriteOn
	}
	r.name.SetText(name)
	r.detail.SetText(strings.Join([]string{c.Email, c.Phone}, "  ·  "))
	r.favBtn.SetText(star)
	r.favBtn.Importance = widget.LowImportance
	if c.IsFavorite {
		r.favBtn.Importance = widget.WarningImportance
	}
	r.favBtn.Refresh()

	r.body.Show()
}
