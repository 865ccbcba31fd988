package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (t *TUI) onInputCapture(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		t.Stop()
		return nil
	}

	currentPage, _ := t.pages.GetFrontPage()
	if currentPage != resultsPageID {
		return event
	}

	switch event.Key() {
	case tcell.KeyEscape:
		t.pages.SwitchToPage(formPageID)
		t.app.SetFocus(t.form)
		return nil
	case tcell.KeyRune:
		if r := event.Rune(); r == 'j' || r == 'J' {
			t.showSelectedJSON()
			return nil
		}
	case tcell.KeyTab:
		if t.results.HasFocus() {
			t.app.SetFocus(t.detail)
		} else {
			t.app.SetFocus(t.results)
		}
		return nil
	}
	return event
}

// onSearch runs on the UI goroutine; the query itself runs in the background.
func (t *TUI) onSearch() {
	req, err := parseSearchForm(searchForm{
		Latitude:     t.formText(labelLatitude),
		Longitude:    t.formText(labelLongitude),
		RadiusKm:     t.formText(labelRadius),
		HoursBack:    t.formText(labelHours),
		MinMagnitude: t.formText(labelMinMag),
	})
	if err != nil {
		t.setStatus(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
		return
	}

	ctx := t.startSearch()
	t.setStatus(fmt.Sprintf("[yellow]Searching %s...", tview.Escape(req.String())))

	go func() {
		res, err := req.run(ctx, t.client, time.Now())
		if ctx.Err() != nil {
			return
		}
		t.app.QueueUpdateDraw(func() {
			if err != nil {
				t.setStatus(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
				return
			}
			t.showResults(res)
		})
	}()
}

func (t *TUI) showSelectedJSON() {
	index := t.results.GetCurrentItem()
	if index < 0 || index >= len(t.features) {
		return
	}
	if err := t.jsonViewer.Show(t.features[index]); err != nil {
		t.detail.SetText(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
	}
}
