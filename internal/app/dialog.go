package app

import (
	"github.com/sqweek/dialog"

	"github.com/Faultbox/hologram/internal/report"
)

// DialogReporter logs a report and shows it in a native message box.
type DialogReporter struct {
	title string
	log   *report.LogReporter
	show  func(title, text string)
}

// NewDialogReporter returns a reporter whose message boxes carry title.
func NewDialogReporter(title string) *DialogReporter {
	return &DialogReporter{
		title: title,
		log:   report.NewLogReporter(),
		show:  showError,
	}
}

// ReportError logs the error and opens the message box without waiting
// for it to be dismissed.
func (r *DialogReporter) ReportError(category report.Category, cause string) {
	r.log.ReportError(category, cause)
	go r.show(r.title, report.Message(category, cause))
}

func showError(title, text string) {
	dialog.Message("%s", text).Title(title).Error()
}

// pickModel asks for an OBJ file with a native file chooser.
func pickModel() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open Model").
		Load()
}
