package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/stigoleg/jiggler/internal/util"
)

// Run modes.
const (
	ModeTUI      = "tui"
	ModeTray     = "tray"
	ModeHeadless = "headless"
)

type cli struct {
	Version     kong.VersionFlag `short:"v" help:"Show version information."`
	Config      string           `help:"Configuration file path." type:"path" placeholder:"PATH"`
	Mode        string           `help:"Front end to run (${enum})." enum:"tui,tray,headless" default:"tui"`
	Duration    string           `short:"d" help:"Jiggle for a duration, then stop (e.g. \"2h30m\" or \"150\")."`
	Until       string           `short:"c" name:"clock" help:"Jiggle until a time of day (e.g. \"22:00\" or \"10:00PM\")."`
	LogFile     string           `help:"Log file path." default:"debug.log" placeholder:"PATH"`
	LogLevel    string           `help:"Log level (debug, info, warn, error)." default:"info"`
	MetricsAddr string           `help:"Serve Prometheus metrics on this address (e.g. \"127.0.0.1:9123\")." placeholder:"ADDR"`
}

// Flags is the parsed command line.
type Flags struct {
	ConfigPath  string
	Mode        string
	LogFile     string
	LogLevel    string
	MetricsAddr string

	// Duration is the --duration session length; zero when not given.
	Duration time.Duration
	// Clock is the --clock session end; zero when not given.
	Clock time.Time
}

// Timed reports whether a timed session was asked for.
func (f *Flags) Timed() bool {
	return f.Duration > 0 || !f.Clock.IsZero()
}

// SessionLength is how long a timed session started at now should run.
// For --clock it shrinks as now approaches the target and may be negative.
func (f *Flags) SessionLength(now time.Time) time.Duration {
	if !f.Clock.IsZero() {
		return f.Clock.Sub(now)
	}
	return f.Duration
}

// ParseFlags parses os.Args.
func ParseFlags(version string) (*Flags, error) {
	return ParseFlagsWithNow(version, time.Now())
}

// ParseFlagsWithNow is ParseFlags with an injectable current time.
func ParseFlagsWithNow(version string, now time.Time) (*Flags, error) {
	return parseArgs(version, os.Args[1:], now)
}

// Description is the one-line program description.
const Description = "Keeps a workstation from looking idle with an imperceptible, zero-drift pointer jiggle."

func newParser(c *cli, version string) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("jiggler"),
		kong.Description(Description),
		kong.UsageOnError(),
		kong.Vars{"version": "Jiggler Version: " + version},
	)
}

func parseArgs(version string, args []string, now time.Time) (*Flags, error) {
	var c cli
	parser, err := newParser(&c, version)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}

	if c.Duration != "" && c.Until != "" {
		return nil, errors.New("--duration and --clock cannot be used together")
	}

	flags := &Flags{
		ConfigPath:  c.Config,
		Mode:        c.Mode,
		LogFile:     c.LogFile,
		LogLevel:    c.LogLevel,
		MetricsAddr: c.MetricsAddr,
	}

	if c.Duration != "" {
		d, err := util.SessionFor(c.Duration)
		if err != nil {
			return nil, err
		}
		flags.Duration = d
	}

	if c.Until != "" {
		target, err := util.SessionUntil(c.Until, now)
		if err != nil {
			return nil, err
		}
		flags.Clock = target
	}

	if flags.ConfigPath == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("no --config given: %w", err)
		}
		flags.ConfigPath = path
	}

	return flags, nil
}

// FlagDoc describes one command line flag for generated documentation.
type FlagDoc struct {
	Short string
	Long  string
	Arg   string
	Help  string
}

// DescribeFlags lists the command line flags, help included, in the order
// they are declared.
func DescribeFlags() ([]FlagDoc, error) {
	parser, err := newParser(&cli{}, "")
	if err != nil {
		return nil, err
	}

	var docs []FlagDoc
	for _, f := range parser.Model.Node.Flags {
		if f.Hidden {
			continue
		}
		doc := FlagDoc{Long: "--" + f.Name, Help: f.Help}
		if f.Short != 0 {
			doc.Short = "-" + string(f.Short)
		}
		if !f.IsBool() {
			doc.Arg = "<" + strings.Trim(f.FormatPlaceHolder(), `"`) + ">"
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
