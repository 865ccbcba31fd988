package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-quake-client/cmd/tui/formatting"
	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const jsonPageID = "jsonView"

// jsonViewer shows the raw JSON of one event on a transient page.
type jsonViewer struct {
	tui   *TUI
	view  *tview.TextView
	id    string
	data  []byte
	title string
}

func newJSONViewer(t *TUI) *jsonViewer {
	v := &jsonViewer{tui: t}
	v.view = tview.NewTextView().
		SetDynamicColors(false).
		SetScrollable(true).
		SetWordWrap(false)
	v.view.SetBorder(true)
	v.view.SetInputCapture(v.handleInput)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.view, 0, 1, true).
		AddItem(formatting.MakeHelpText("[yellow]Esc[white] close  |  [yellow]s[white] save JSON  |  [yellow]Ctrl+C[white] quit"), 3, 0, false)
	t.pages.AddPage(jsonPageID, layout, true, false)
	return v
}

// Show must run on the UI goroutine.
func (v *jsonViewer) Show(f quake.Feature) error {
	encoded, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("render JSON: %w", err)
	}
	v.id = f.ID
	v.data = encoded
	v.title = fmt.Sprintf("Event %s", f.ID)

	v.view.SetTitle(v.title)
	v.view.SetText(string(encoded))
	v.view.ScrollToBeginning()
	v.tui.pages.SwitchToPage(jsonPageID)
	v.tui.app.SetFocus(v.view)
	return nil
}

func (v *jsonViewer) Close() {
	v.data = nil
	v.tui.pages.SwitchToPage(resultsPageID)
	v.tui.app.SetFocus(v.tui.results)
}

func (v *jsonViewer) Save() {
	if len(v.data) == 0 {
		return
	}
	filename := formatting.EventJSONFilename(v.id, time.Now())
	if err := os.WriteFile(filename, v.data, 0o644); err != nil {
		v.view.SetTitle(fmt.Sprintf("%s - save failed: %v", v.title, err))
		return
	}
	v.view.SetTitle(fmt.Sprintf("%s - saved to %s", v.title, filename))
}

func (v *jsonViewer) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		v.Close()
		return nil
	case tcell.KeyRune:
		if r := event.Rune(); r == 's' || r == 'S' {
			v.Save()
			return nil
		}
	}
	return event
}
