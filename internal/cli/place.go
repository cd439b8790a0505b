package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stairtour/internal/config"
	"stairtour/internal/placement"
)

// terminalSize reports the size of the controlling terminal in cells.
var terminalSize = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Default viewports when none is given.
var (
	defaultPixelViewport = placement.Size{Width: 1280, Height: 800}
	defaultCellViewport  = placement.Size{Width: 80, Height: 24}
)

func newPlaceCommand(app *App) *cobra.Command {
	var (
		target   string
		viewport string
		units    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where a step tooltip goes",
		Long: `Compute where a step tooltip goes for a target and viewport.

The target is "top,left,width,height". Without a target the tooltip is
centered. With --units cells the terminal parameters are used and the
viewport defaults to the current terminal size.`,
		Example: `  stairtour place --target 100,500,200,40 --viewport 1280x800
  stairtour place --units cells --target 0,20,86,3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, size, err := placementSetup(app.Config, units, viewport)
			if err != nil {
				app.Printer.Error(err)
				return NewExitError(1)
			}

			var rect *placement.Rect
			if target != "" {
				r, err := parseRect(target)
				if err != nil {
					app.Printer.Error(err)
					return NewExitError(1)
				}
				rect = &r
			}

			pos := engine.Place(rect, size)
			spotlight := placement.Spotlight(rect)

			if asJSON {
				if err := app.Printer.JSON(map[string]any{
					"viewport":  size,
					"target":    rect,
					"tooltip":   pos,
					"spotlight": spotlight,
				}); err != nil {
					app.Printer.Error(err)
					return NewExitError(1)
				}
				return nil
			}
			app.Printer.Placement(rect, size, pos, spotlight)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target rectangle as top,left,width,height")
	cmd.Flags().StringVar(&viewport, "viewport", "", "viewport as WIDTHxHEIGHT")
	cmd.Flags().StringVar(&units, "units", "px", "geometry units: px or cells")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func placementSetup(cfg *config.Config, units, viewport string) (placement.Engine, placement.Size, error) {
	var (
		params placement.Engine
		size   placement.Size
	)

	switch units {
	case "px":
		params = engineFrom(cfg.Placement)
		size = defaultPixelViewport
	case "cells":
		params = engineFrom(cfg.Terminal)
		size = defaultCellViewport
		if w, h, err := terminalSize(); err == nil && w > 0 && h > 0 {
			size = placement.Size{Width: float64(w), Height: float64(h)}
		}
	default:
		return params, size, fmt.Errorf("unknown units %q (want px or cells)", units)
	}

	if viewport != "" {
		s, err := parseSize(viewport)
		if err != nil {
			return params, size, err
		}
		size = s
	}
	return params, size, nil
}

func engineFrom(p config.PlacementConfig) placement.Engine {
	return placement.Engine{
		Padding: p.Padding,
		Tooltip: placement.Size{Width: p.TooltipWidth, Height: p.TooltipHeight},
	}
}

func parseRect(s string) (placement.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return placement.Rect{}, fmt.Errorf("invalid target %q: want top,left,width,height", s)
	}
	vals, err := parseFloats(parts)
	if err != nil {
		return placement.Rect{}, fmt.Errorf("invalid target %q: %w", s, err)
	}
	if vals[2] < 0 || vals[3] < 0 {
		return placement.Rect{}, fmt.Errorf("invalid target %q: negative size", s)
	}
	return placement.Rect{Top: vals[0], Left: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func parseSize(s string) (placement.Size, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return placement.Size{}, fmt.Errorf("invalid viewport %q: want WIDTHxHEIGHT", s)
	}
	vals, err := parseFloats(parts)
	if err != nil {
		return placement.Size{}, fmt.Errorf("invalid viewport %q: %w", s, err)
	}
	if vals[0] <= 0 || vals[1] <= 0 {
		return placement.Size{}, fmt.Errorf("invalid viewport %q: must be positive", s)
	}
	return placement.Size{Width: vals[0], Height: vals[1]}, nil
}

func parseFloats(parts []string) ([]float64, error) {
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
