package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/spaghettifunk/pageflip/engine"
	"github.com/spaghettifunk/pageflip/engine/easing"
	"github.com/spaghettifunk/pageflip/engine/renderer/software"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	stateStyles = map[string]lipgloss.Style{
		"end-after-forward":  lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		"end-after-backward": lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"end-after-restore":  lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	}
	boxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func withFrames(app *engine.ApplicationConfig) {
	app.FixedStep = true
	app.MaxFrames = maxFrames
	app.WatchAssets = false
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	n := max(every, 1)
	written := 0
	sink := func(frame uint64, img image.Image) error {
		if frame%uint64(n) != 0 {
			return nil
		}
		written++
		return gg.SavePNG(filepath.Join(outDir, fmt.Sprintf("frame-%05d.png", frame)), img)
	}

	book, e, err := newBook("pageflip-render", script, true, software.New(software.WithFrameSink(sink)), withFrames)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	fmt.Printf("wrote %d frames to %s, %d flips, ended at page %d\n", written, outDir, len(book.History()), book.PageNo())
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	book, e, err := newBook("pageflip-trace", script, true, software.New(), withFrames)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	runErr := e.Run(ctx)
	frames := e.FrameNumber()
	fps, frameTime := e.Metrics().Frame()
	if err := e.Shutdown(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	var rows []string
	rows = append(rows, headerStyle.Render(fmt.Sprintf("%-8s %-20s %-6s %s", "frame", "state", "page", "spread")))
	for _, r := range book.History() {
		state := r.State.String()
		style, ok := stateStyles[state]
		if !ok {
			style = valueStyle
		}
		rows = append(rows, fmt.Sprintf("%-8d %s %-6d %v", r.Frame, style.Width(20).Render(state), r.PageNo, r.Spread))
	}
	rows = append(rows, "",
		labelStyle.Render("frames")+valueStyle.Render(fmt.Sprintf("%d", frames)),
		labelStyle.Render("fps")+valueStyle.Render(fmt.Sprintf("%.1f", fps)),
		labelStyle.Render("frame ms")+valueStyle.Render(fmt.Sprintf("%.2f", frameTime)),
		labelStyle.Render("page")+valueStyle.Render(fmt.Sprintf("%d", book.PageNo())),
	)
	fmt.Println(boxStyle.Render(strings.Join(rows, "\n")))
	return nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	names := easing.Names()
	if len(args) == 1 {
		names = args
	}
	for _, name := range names {
		interp, err := easing.ByName(name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(easing.Sample(interp, samples),
			asciigraph.Height(10),
			asciigraph.Width(samples),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}
