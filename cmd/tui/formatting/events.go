package formatting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

// FormatResultTitle returns the list title for a query result.
func FormatResultTitle(res *quake.QueryResult) string {
	title := strings.TrimSpace(res.Metadata.Title)
	if title == "" {
		title = "Events"
	}
	return fmt.Sprintf("%s (%d)", title, len(res.Features))
}

// FormatFeatureListItem returns the main and secondary list text for an event.
func FormatFeatureListItem(f quake.Feature) (string, string) {
	mag := "M?"
	if m, ok := f.Properties.Magnitude(); ok {
		mag = "M" + strconv.FormatFloat(m, 'f', 1, 64)
	}

	place := strings.TrimSpace(f.Properties.Place)
	if place == "" {
		place = f.ID
	}

	secondary := f.ID
	if f.Properties.Time != 0 {
		secondary = f.Properties.EventTime().Format(time.RFC3339)
	}
	return tview.Escape(mag + " " + place), tview.Escape(secondary)
}

func FormatFeatureDetail(f quake.Feature) string {
	var builder strings.Builder
	p := f.Properties

	title := p.Title
	if title == "" {
		title = f.ID
	}
	builder.WriteString(fmt.Sprintf("[green]%s[white]\n\n", tview.Escape(title)))

	writeField(&builder, "ID", f.ID)
	if m, ok := p.Magnitude(); ok {
		writeField(&builder, "Magnitude", strings.TrimSpace(formatFloat(m, 2)+" "+p.MagType))
	}
	writeField(&builder, "Place", p.Place)
	if p.Time != 0 {
		writeField(&builder, "Time", p.EventTime().Format(time.RFC3339))
	}
	if p.Updated != 0 {
		writeField(&builder, "Updated", p.UpdatedAt().Format(time.RFC3339))
	}
	if lon, lat, depth, ok := f.Geometry.Point(); ok {
		writeField(&builder, "Location", fmt.Sprintf("%s, %s", formatFloat(lat, 4), formatFloat(lon, 4)))
		writeField(&builder, "Depth", formatFloat(depth, 2)+" km")
	}
	writeField(&builder, "Status", p.Status)
	if p.Alert != nil {
		writeField(&builder, "Alert", *p.Alert)
	}
	if p.Tsunami != 0 {
		writeField(&builder, "Tsunami", "yes")
	}
	if p.Felt != nil {
		writeField(&builder, "Felt reports", strconv.Itoa(*p.Felt))
	}
	writeField(&builder, "Network", p.Net)
	writeField(&builder, "URL", p.URL)

	if len(p.AdditionalFields) > 0 {
		builder.WriteString("[yellow]Other properties:[white]\n")
		builder.WriteString(formatExtra(p.AdditionalFields))
	}
	return builder.String()
}
