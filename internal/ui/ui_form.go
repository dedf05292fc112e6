package ui

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// contactForm backs the add and edit dialogs.
type contactForm struct {
	app *ContactsApp

	// editing is nil when adding a new contact.
	editing *contacts.Contact

	name     *widget.Entry
	email    *widget.Entry
	phone    *PhoneEntry
	favorite *widget.Check

	errLabels map[string]*widget.Label
}

// newContactForm builds the form widgets, pre-filled from existing when set.
func (app *ContactsApp) newContactForm(existing *contacts.Contact) *contactForm {
	f := &contactForm{
		app:      app,
		editing:  existing,
		name:     widget.NewEntry(),
		email:    widget.NewEntry(),
		phone:    NewPhoneEntry(),
		favorite: widget.NewCheck(app.GetMsg(config.TKeyLblFavorite), nil),
		errLabels: map[string]*widget.Label{
			config.FieldName:  newErrorLabel(),
			config.FieldEmail: newErrorLabel(),
			config.FieldPhone: newErrorLabel(),
		},
	}

	f.name.SetPlaceHolder(app.GetMsg(config.TKeyHintName))
	f.email.SetPlaceHolder(config.PlaceholderEmail)
	f.phone.SetPlaceHolder(config.PlaceholderPhone)

	if existing != nil {
		f.name.SetText(existing.Name)
		f.email.SetText(existing.Email)
		f.phone.SetText(existing.Phone)
		f.favorite.SetChecked(existing.IsFavorite)
	}

	// Editing a field clears its message; the others stay until the next submit.
	f.name.OnChanged = func(string) { f.clearError(config.FieldName) }
	f.email.OnChanged = func(string) { f.clearError(config.FieldEmail) }
	f.phone.OnChanged = func(string) { f.clearError(config.FieldPhone) }

	return f
}

func newErrorLabel() *widget.Label {
	l := widget.NewLabel("")
	l.Importance = widget.DangerImportance
	l.Wrapping = fyne.TextWrapWord
	l.Hide()
	return l
}

// content lays the fields out with their error labels underneath.
func (f *contactForm) content() fyne.CanvasObject {
	field := func(labelKey, hintKey, fieldName string, entry fyne.CanvasObject) *widget.FormItem {
		item := widget.NewFormItem(f.app.GetMsg(labelKey), container.NewVBox(entry, f.errLabels[fieldName]))
		item.HintText = f.app.GetMsg(hintKey)
		return item
	}

	form := widget.NewForm(
		field(config.TKeyLblName, config.TKeyHintName, config.FieldName, f.name),
		field(config.TKeyLblEmail, config.TKeyHintEmail, config.FieldEmail, f.email),
		field(config.TKeyLblPhone, config.TKeyHintPhone, config.FieldPhone, f.phone),
		widget.NewFormItem("", f.favorite),
	)

	if f.editing != nil {
		return form
	}
	subtitle := widget.NewLabel(f.app.GetMsg(config.TKeyDlgAddSubtitle))
	subtitle.Wrapping = fyne.TextWrapWord
	return container.NewVBox(subtitle, form)
}

func (f *contactForm) candidate() contacts.Candidate {
	return contacts.Candidate{
		Name:       f.name.Text,
		Email:      f.email.Text,
		Phone:      f.phone.Text,
		IsFavorite: f.favorite.Checked,
	}
}

// showErrors replaces all field messages with errs.
func (f *contactForm) showErrors(errs contacts.ValidationErrors) {
	for field, label := range f.errLabels {
		msg, failed := errs[field]
		if !failed {
			label.SetText("")
			label.Hide()
			continue
		}
		label.SetText(f.app.validationText(msg))
		label.Show()
	}
}

func (f *contactForm) clearError(field string) {
	if label, ok := f.errLabels[field]; ok && label.Visible() {
		label.SetText("")
		label.Hide()
	}
}

// submit saves the form through the store. It reports false, leaving the
// dialog open, when validation or the store rejected the input.
func (f *contactForm) submit() bool {
	cand := f.candidate()

	var err error
	if f.editing == nil {
		_, err = f.app.Store.Add(cand)
	} else {
		updated := *f.editing
		updated.Name = cand.Name
		updated.Email = cand.Email
		updated.Phone = cand.Phone
		updated.IsFavorite = cand.IsFavorite
		err = f.app.Store.Update(updated)
	}

	var verr *contacts.ValidationError
	switch {
	case err == nil:
		return true
	case errors.As(err, &verr):
		slog.Debug(config.LogMsgFormError,
			config.LogKeyReason, verr.Error(),
			config.LogKeyComponent, config.CompUI)
		f.showErrors(verr.Fields)
		return false
	default:
		slog.Error(config.LogMsgFormError,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		if f.app.Window != nil {
			dialog.ShowError(err, f.app.Window)
		}
		return false
	}
}

// showContactForm opens the add dialog, or the edit dialog when existing is set.
func (app *ContactsApp) showContactForm(existing *contacts.Contact) {
	if app.Window == nil {
		return
	}

	titleKey := config.TKeyDlgAddTitle
	if existing != nil {
		titleKey = config.TKeyDlgEditTitle
		slog.Debug(config.LogMsgFormOpen, config.LogKeyID, existing.ID, config.LogKeyComponent, config.CompUI)
	} else {
		slog.Debug(config.LogMsgFormOpen, config.LogKeyComponent, config.CompUI)
	}

	f := app.newContactForm(existing)
	d := dialog.NewCustomWithoutButtons(app.GetMsg(titleKey), f.content(), app.Window)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if f.submit() {
			d.Hide()
		}
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), d.Hide)

	d.SetButtons([]fyne.CanvasObject{btnCancel, btnSave})
	d.Show()
	d.Resize(fyne.NewSize(config.FormDialogWidth, d.MinSize().Height))
	app.Window.Canvas().Focus(f.name)
}
