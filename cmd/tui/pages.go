package main

import (
	"fmt"
	"strconv"

	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-quake-client/cmd/tui/formatting"
	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const (
	labelLatitude  = "Latitude"
	labelLongitude = "Longitude"
	labelRadius    = "Radius (km)"
	labelHours     = "Hours back"
	labelMinMag    = "Min magnitude"
)

const resultsHelpControls = "[yellow]↑/↓[white] select  [yellow]j[white] raw JSON  [yellow]Tab[white] toggle focus  [yellow]Esc[white] back to search  [yellow]Ctrl+C[white] quit"

func (t *TUI) setupPages() {
	t.setupFormPage()
	t.setupResultsPage()
}

func (t *TUI) setupFormPage() {
	t.form = tview.NewForm().
		AddInputField(labelLatitude, "", 12, tview.InputFieldFloat, nil).
		AddInputField(labelLongitude, "", 12, tview.InputFieldFloat, nil).
		AddInputField(labelRadius, "500", 12, tview.InputFieldFloat, nil).
		AddInputField(labelHours, "24", 12, tview.InputFieldFloat, nil).
		AddInputField(labelMinMag, strconv.FormatFloat(t.defaultMag, 'f', -1, 64), 12, tview.InputFieldFloat, nil).
		AddButton("Search", t.onSearch).
		AddButton("Quit", t.Stop)
	t.form.SetBorder(true).SetTitle("Earthquake Search")

	t.status = tview.NewTextView().SetDynamicColors(true)
	t.status.SetBorder(true).SetTitle("Status")
	t.setStatus("Leave latitude/longitude blank to search by time only.")

	help := formatting.MakeHelpText("[yellow]Tab[white] next field  [yellow]Enter[white] activate  [yellow]Ctrl+C[white] quit")
	page := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.form, 0, 1, true).
		AddItem(t.status, 3, 0, false).
		AddItem(help, 3, 0, false)

	t.pages.AddPage(formPageID, page, true, true)
}

func (t *TUI) setupResultsPage() {
	t.results = tview.NewList()
	t.results.SetBorder(true).SetTitle("Events")
	t.results.SetWrapAround(false)

	t.detail = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true).SetScrollable(true)
	t.detail.SetBorder(true).SetTitle("Event Details")

	t.results.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		t.showDetail(index)
	})

	content := tview.NewFlex().
		AddItem(t.results, 0, 1, true).
		AddItem(t.detail, 0, 2, false)

	page := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(formatting.MakeHelpText(resultsHelpControls), 3, 0, false)

	t.pages.AddPage(resultsPageID, page, true, false)
}

func (t *TUI) setStatus(text string) {
	t.status.SetText(text)
}

func (t *TUI) formText(label string) string {
	if field, ok := t.form.GetFormItemByLabel(label).(*tview.InputField); ok {
		return field.GetText()
	}
	return ""
}

// showResults must run on the UI goroutine.
func (t *TUI) showResults(res *quake.QueryResult) {
	t.features = res.Features
	t.resultTitle = formatting.FormatResultTitle(res)

	t.results.Clear()
	for _, f := range t.features {
		mainText, secondaryText := formatting.FormatFeatureListItem(f)
		t.results.AddItem(mainText, secondaryText, 0, nil)
	}
	t.results.SetTitle(t.resultTitle)

	if len(t.features) == 0 {
		t.detail.SetText("No events matched the search.")
	} else {
		t.results.SetCurrentItem(0)
		t.showDetail(0)
	}

	t.setStatus(fmt.Sprintf("[green]%s", tview.Escape(t.resultTitle)))
	t.pages.SwitchToPage(resultsPageID)
	t.app.SetFocus(t.results)
}

func (t *TUI) showDetail(index int) {
	if index < 0 || index >= len(t.features) {
		t.detail.Clear()
		return
	}
	t.detail.SetText(formatting.FormatFeatureDetail(t.features[index]))
	t.detail.ScrollToBeginning()
}
