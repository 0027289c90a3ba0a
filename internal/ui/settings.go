package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/stigoleg/jiggler/internal/config"
)

// settingsForm holds the editable values bound to the huh form.
type settingsForm struct {
	Interval      string
	MovePixels    string
	IdleThreshold string
	Jitter        string
	StartOnLaunch bool
	IdleAware     bool
	SafeMode      bool

	isFirstRun bool
}

func newSettingsForm(cfg config.Configuration) *settingsForm {
	return &settingsForm{
		Interval:      strconv.Itoa(cfg.IntervalSeconds),
		MovePixels:    strconv.Itoa(cfg.MovePixels),
		IdleThreshold: strconv.Itoa(cfg.IdleThresholdSeconds),
		Jitter:        strconv.Itoa(cfg.JitterPercent),
		StartOnLaunch: cfg.StartOnLaunch,
		IdleAware:     cfg.IdleAware,
		SafeMode:      cfg.SafeMode,
		isFirstRun:    cfg.IsFirstRun,
	}
}

// Configuration converts the form values. Every numeric field must parse
// and be within its bounds.
func (fm *settingsForm) Configuration() (config.Configuration, error) {
	cfg := config.Configuration{
		StartOnLaunch: fm.StartOnLaunch,
		IdleAware:     fm.IdleAware,
		SafeMode:      fm.SafeMode,
		IsFirstRun:    fm.isFirstRun,
	}

	fields := []struct {
		name   string
		value  string
		lo, hi int
		dst    *int
	}{
		{"interval", fm.Interval, config.MinIntervalSeconds, config.MaxIntervalSeconds, &cfg.IntervalSeconds},
		{"move pixels", fm.MovePixels, config.MinMovePixels, config.MaxMovePixels, &cfg.MovePixels},
		{"idle threshold", fm.IdleThreshold, config.MinIdleThresholdSeconds, config.MaxIdleThresholdSeconds, &cfg.IdleThresholdSeconds},
		{"jitter", fm.Jitter, config.MinJitterPercent, config.MaxJitterPercent, &cfg.JitterPercent},
	}
	for _, f := range fields {
		v, err := intInRange(f.lo, f.hi)(f.value)
		if err != nil {
			return config.Configuration{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return cfg, nil
}

// intInRange parses a whole number and checks it against [lo, hi].
func intInRange(lo, hi int) func(string) (int, error) {
	return func(s string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("must be a whole number")
		}
		if v < lo || v > hi {
			return 0, fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return v, nil
	}
}

func validateRange(lo, hi int) func(string) error {
	parse := intInRange(lo, hi)
	return func(s string) error {
		_, err := parse(s)
		return err
	}
}

// newSettingsHuhForm builds the settings editor bound to fm.
func newSettingsHuhForm(fm *settingsForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Interval (seconds)").
				Description(fmt.Sprintf("%d-%d", config.MinIntervalSeconds, config.MaxIntervalSeconds)).
				Value(&fm.Interval).
				Validate(validateRange(config.MinIntervalSeconds, config.MaxIntervalSeconds)),
			huh.NewInput().
				Title("Move distance (pixels)").
				Description(fmt.Sprintf("%d-%d", config.MinMovePixels, config.MaxMovePixels)).
				Value(&fm.MovePixels).
				Validate(validateRange(config.MinMovePixels, config.MaxMovePixels)),
			huh.NewConfirm().
				Title("Start jiggling on launch").
				Value(&fm.StartOnLaunch),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Only jiggle when idle").
				Value(&fm.IdleAware),
			huh.NewInput().
				Title("Idle threshold (seconds)").
				Description(fmt.Sprintf("%d-%d", config.MinIdleThresholdSeconds, config.MaxIdleThresholdSeconds)).
				Value(&fm.IdleThreshold).
				Validate(validateRange(config.MinIdleThresholdSeconds, config.MaxIdleThresholdSeconds)),
			huh.NewConfirm().
				Title("Safe mode").
				Description("Randomize interval and movement").
				Value(&fm.SafeMode),
			huh.NewInput().
				Title("Jitter (percent)").
				Description(fmt.Sprintf("%d-%d, applies in safe mode", config.MinJitterPercent, config.MaxJitterPercent)).
				Value(&fm.Jitter).
				Validate(validateRange(config.MinJitterPercent, config.MaxJitterPercent)),
		),
	).WithTheme(huh.ThemeDracula())
}
