package main

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const (
	formPageID    = "form"
	resultsPageID = "results"
)

type TUI struct {
	app     *tview.Application
	pages   *tview.Pages
	form    *tview.Form
	status  *tview.TextView
	results *tview.List
	detail  *tview.TextView

	jsonViewer *jsonViewer

	client      querier
	defaultMag  float64
	features    []quake.Feature
	resultTitle string

	baseCtx    context.Context
	baseCancel context.CancelFunc
	stopOnce   sync.Once

	searchMu     sync.Mutex
	searchCancel context.CancelFunc
}

// configureStyles sets the tview global styles for the TUI.
// Note: This modifies global state in tview.Styles.
func configureStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorDarkSlateGray
	tview.Styles.MoreContrastBackgroundColor = tcell.ColorGreen
	tview.Styles.BorderColor = tcell.ColorWhite
	tview.Styles.TitleColor = tcell.ColorWhite
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorYellow
	tview.Styles.TertiaryTextColor = tcell.ColorGreen
}

// NewTUI creates a new TUI instance. The provided context controls the
// lifetime of background queries; pass nil to use context.Background().
func NewTUI(ctx context.Context, client querier, defaultMag float64) *TUI {
	if ctx == nil {
		ctx = context.Background()
	}
	baseCtx, baseCancel := context.WithCancel(ctx)

	configureStyles()

	tui := &TUI{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		client:     client,
		defaultMag: defaultMag,
		baseCtx:    baseCtx,
		baseCancel: baseCancel,
	}

	tui.setupPages()
	tui.jsonViewer = newJSONViewer(tui)
	tui.app.SetInputCapture(tui.onInputCapture)

	return tui
}

// Run starts the TUI event loop. It blocks until the application exits
// and returns any error that occurred.
func (t *TUI) Run() error {
	return t.app.SetRoot(t.pages, true).SetFocus(t.form).Run()
}

func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		t.cancelSearch()
		if t.baseCancel != nil {
			t.baseCancel()
		}
		t.app.Stop()
	})
}

func (t *TUI) cancelSearch() {
	t.searchMu.Lock()
	defer t.searchMu.Unlock()
	if t.searchCancel != nil {
		t.searchCancel()
		t.searchCancel = nil
	}
}

// startSearch cancels any running query and returns a context for a new one.
func (t *TUI) startSearch() context.Context {
	t.searchMu.Lock()
	defer t.searchMu.Unlock()
	if t.searchCancel != nil {
		t.searchCancel()
	}
	ctx, cancel := context.WithCancel(t.baseCtx)
	t.searchCancel = cancel
	return ctx
}
