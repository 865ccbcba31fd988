package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

const minMagFlag = "min-mag"

func newMinMagFlag() cli.Flag {
	return &cli.FloatFlag{
		Name:    minMagFlag,
		Aliases: []string{"m"},
		Usage:   "Minimum magnitude (default from config, else 0)",
	}
}

func newDateCommand() *cli.Command {
	return &cli.Command{
		Name:  "date",
		Usage: "Events between two times",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "Start time (RFC 3339 or 2006-01-02[T15:04:05], UTC)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "End time (default now)"},
			newMinMagFlag(),
		},
		Action: dateAction,
	}
}

func newRectCommand() *cli.Command {
	return &cli.Command{
		Name:  "rect",
		Usage: "Events inside a latitude/longitude rectangle",
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: "min-lat", Usage: "Southern latitude", Required: true},
			&cli.FloatFlag{Name: "min-lon", Usage: "Western longitude", Required: true},
			&cli.FloatFlag{Name: "max-lat", Usage: "Northern latitude", Required: true},
			&cli.FloatFlag{Name: "max-lon", Usage: "Eastern longitude", Required: true},
			newMinMagFlag(),
		},
		Action: rectAction,
	}
}

func newCircleCommand() *cli.Command {
	return &cli.Command{
		Name:  "circle",
		Usage: "Events within a radius of a point",
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: "lat", Usage: "Center latitude", Required: true},
			&cli.FloatFlag{Name: "lon", Usage: "Center longitude", Required: true},
			&cli.FloatFlag{Name: "radius", Usage: "Maximum radius (degrees, or km with --km)", Required: true},
			&cli.BoolFlag{Name: "km", Usage: "Interpret --radius in kilometers"},
			newMinMagFlag(),
		},
		Action: circleAction,
	}
}

func minMagnitude(cmd *cli.Command, s settings) float64 {
	if cmd.IsSet(minMagFlag) {
		return cmd.Float(minMagFlag)
	}
	return s.MinMagnitude
}

func dateAction(ctx context.Context, cmd *cli.Command) error {
	start, err := parseTime(cmd.String("start"))
	if err != nil {
		return err
	}
	end := time.Now().UTC()
	if cmd.IsSet("end") {
		if end, err = parseTime(cmd.String("end")); err != nil {
			return err
		}
	}

	return runQuery(ctx, cmd, func(ctx context.Context, q querier, minMag float64) (*quake.QueryResult, error) {
		return q.QueryByDate(ctx, start, end, minMag)
	})
}

func rectAction(ctx context.Context, cmd *cli.Command) error {
	minLat, minLon := cmd.Float("min-lat"), cmd.Float("min-lon")
	maxLat, maxLon := cmd.Float("max-lat"), cmd.Float("max-lon")

	return runQuery(ctx, cmd, func(ctx context.Context, q querier, minMag float64) (*quake.QueryResult, error) {
		return q.QueryByRectangle(ctx, minLat, minLon, maxLat, maxLon, minMag)
	})
}

func circleAction(ctx context.Context, cmd *cli.Command) error {
	lat, lon, radius := cmd.Float("lat"), cmd.Float("lon"), cmd.Float("radius")
	km := cmd.Bool("km")

	return runQuery(ctx, cmd, func(ctx context.Context, q querier, minMag float64) (*quake.QueryResult, error) {
		if km {
			return q.QueryByCircleKm(ctx, lat, lon, radius, minMag)
		}
		return q.QueryByCircleDegrees(ctx, lat, lon, radius, minMag)
	})
}

// querier is the subset of *client.Client used by the commands.
type querier interface {
	QueryByDate(ctx context.Context, start, end time.Time, minMagnitude float64) (*quake.QueryResult, error)
	QueryByRectangle(ctx context.Context, minLat, minLon, maxLat, maxLon, minMagnitude float64) (*quake.QueryResult, error)
	QueryByCircleDegrees(ctx context.Context, lat, lon, maxRadius, minMagnitude float64) (*quake.QueryResult, error)
	QueryByCircleKm(ctx context.Context, lat, lon, maxRadiusKm, minMagnitude float64) (*quake.QueryResult, error)
}

type queryFunc func(ctx context.Context, q querier, minMag float64) (*quake.QueryResult, error)

func runQuery(ctx context.Context, cmd *cli.Command, fn queryFunc) error {
	s, err := settingsFromCommand(cmd)
	if err != nil {
		return err
	}

	client, err := s.newClient()
	if err != nil {
		return errors.Wrap(err, "creating client")
	}
	minMag := minMagnitude(cmd, s)

	res, err := withRetries(ctx, newRetryBackOff(s.Retries), s.logger, func() (*quake.QueryResult, error) {
		return fn(ctx, client, minMag)
	})
	if err != nil {
		return err
	}
	s.logger.Infof("received %d events", len(res.Features))

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	if s.summary {
		return printSummary(out, res)
	}
	return printJSON(out, res)
}
