package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-quake-client/internal/config"
	quakeclient "github.com/robert-malhotra/go-quake-client/pkg/client"
)

const (
	configFlag   = "config"
	baseURLFlag  = "url"
	timeoutFlag  = "timeout"
	logLevelFlag = "log-level"
	retriesFlag  = "retries"
	summaryFlag  = "summary"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.config/quake/config.toml)",
		},
		&cli.StringFlag{
			Name:    baseURLFlag,
			Aliases: []string{"u"},
			Usage:   "Event service root URL",
		},
		&cli.DurationFlag{
			Name:    timeoutFlag,
			Aliases: []string{"t"},
			Usage:   "Per-query timeout (e.g. 30s, 1m); 0 disables it",
		},
		&cli.StringFlag{
			Name:    logLevelFlag,
			Aliases: []string{"l"},
			Usage:   "Log level (debug, info, warn, error)",
		},
		&cli.IntFlag{
			Name:    retriesFlag,
			Aliases: []string{"r"},
			Usage:   "Retry transient failures this many times",
		},
		&cli.BoolFlag{
			Name:    summaryFlag,
			Aliases: []string{"s"},
			Usage:   "Print one line per event instead of JSON",
		},
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "quake",
		Usage: "Query the FDSN earthquake event service",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			newDateCommand(),
			newRectCommand(),
			newCircleCommand(),
		},
	}
}

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// settings is the merged view of config file and flags for one invocation.
type settings struct {
	config.Config
	summary bool
	logger  logrus.FieldLogger
}

func settingsFromCommand(cmd *cli.Command) (settings, error) {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return settings{}, errors.Wrap(err, "loading config")
	}

	if cmd.IsSet(baseURLFlag) {
		cfg.BaseURL = cmd.String(baseURLFlag)
	}
	if cmd.IsSet(timeoutFlag) {
		cfg.Timeout = cmd.Duration(timeoutFlag)
	}
	if cmd.IsSet(logLevelFlag) {
		cfg.LogLevel = cmd.String(logLevelFlag)
	}
	if cmd.IsSet(retriesFlag) {
		retries := int(cmd.Int(retriesFlag))
		if retries < 0 {
			return settings{}, errors.Errorf("flag --%s must not be negative", retriesFlag)
		}
		cfg.Retries = retries
	}

	if err := setUpLogger(cmd.Root().ErrWriter, cfg.LogLevel); err != nil {
		return settings{}, err
	}

	return settings{
		Config:  cfg,
		summary: cmd.Bool(summaryFlag),
		logger:  logrus.WithField("cmd", cmd.Name),
	}, nil
}

func (s settings) newClient() (*quakeclient.Client, error) {
	opts := append(s.ClientOptions(), quakeclient.WithLogger(s.logger))
	return quakeclient.New(opts...)
}

func setUpLogger(out io.Writer, level string) error {
	if out == nil {
		out = os.Stderr
	}
	if level == "" {
		level = logrus.WarnLevel.String()
	}
	logrus.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	logrus.SetLevel(lvl)
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts RFC 3339 or a bare date/date-time, read as UTC.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid time %q: want RFC 3339, 2006-01-02T15:04:05 or 2006-01-02", s)
}
