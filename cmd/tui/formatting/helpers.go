package formatting

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rivo/tview"
)

func formatFloat(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}

func writeField(builder *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	builder.WriteString(fmt.Sprintf("[yellow]%s: [white]%s\n", key, tview.Escape(value)))
}

// formatExtra renders additional properties sorted by key.
func formatExtra(properties map[string]any) string {
	var builder strings.Builder
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("[yellow]  %-20s[white]", tview.Escape(key+":")))
		jsonBytes, err := json.Marshal(properties[key])
		if err != nil {
			builder.WriteString(" Error marshalling value\n")
			continue
		}
		builder.WriteString(fmt.Sprintf(" %s\n", tview.Escape(string(jsonBytes))))
	}
	return builder.String()
}

func MakeHelpText(text string) *tview.TextView {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetTextAlign(tview.AlignCenter).
		SetText(text)
	view.SetBorder(true).SetTitle("Controls")
	return view
}

func Slugify(input string) string {
	var builder strings.Builder
	for _, r := range input {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			builder.WriteRune(unicode.ToLower(r))
		case r == '-', r == '_':
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			builder.WriteRune('-')
		}
	}
	return strings.Trim(builder.String(), "-_")
}

// EventJSONFilename names the file an event's JSON is saved to.
func EventJSONFilename(id string, now time.Time) string {
	slug := Slugify(id)
	if slug == "" {
		slug = "event"
	}
	return fmt.Sprintf("%s_%s.json", slug, now.Format("20060102_150405"))
}
