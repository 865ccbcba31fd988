package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

func printJSON(w io.Writer, res *quake.QueryResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printSummary writes a header and one tab-aligned line per event.
func printSummary(w io.Writer, res *quake.QueryResult) error {
	title := res.Metadata.Title
	if title == "" {
		title = "Earthquakes"
	}
	if _, err := fmt.Fprintf(w, "%s: %d events\n", title, len(res.Features)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range res.Features {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			formatEventTime(f.Properties),
			formatMagnitude(f.Properties),
			formatDepth(f.Geometry),
			f.ID,
			f.Properties.Place,
		)
	}
	return tw.Flush()
}

func formatEventTime(p quake.Properties) string {
	if p.Time == 0 {
		return "-"
	}
	return p.EventTime().Format(time.RFC3339)
}

func formatMagnitude(p quake.Properties) string {
	mag, ok := p.Magnitude()
	if !ok {
		return "M?"
	}
	s := "M" + strconv.FormatFloat(mag, 'f', 1, 64)
	if p.MagType != "" {
		s += " " + p.MagType
	}
	return s
}

func formatDepth(g quake.Geometry) string {
	_, _, depth, ok := g.Point()
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(depth, 'f', 1, 64) + " km"
}
