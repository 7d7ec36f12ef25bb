// Command roi-analyze runs the selection and filter stages without a window:
// the drag is replayed against a virtual display surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"roi-edge-analyzer/internal/analysis"
	"roi-edge-analyzer/internal/config"
	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/opencv/memory"
	"roi-edge-analyzer/internal/pipeline"
	"roi-edge-analyzer/internal/render"
	"roi-edge-analyzer/internal/roi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "roi-analyze:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file")
	in := flag.String("in", "", "source image (defaults to the configured source)")
	surface := flag.String("surface", "500x500", "display surface size WxH")
	drag := flag.String("drag", "", "gesture in display coordinates x1,y1:x2,y2 (origin bottom-left)")
	out := flag.String("out", "", "ROI export path (defaults to the configured export path)")
	figure := flag.Bool("figure", false, "write the analysis figure")
	timeout := flag.Duration("timeout", time.Minute, "processing timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if *in != "" {
		cfg.SourcePath = *in
	}
	if *out != "" {
		cfg.ExportPath = *out
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	size, err := roi.ParseSize(*surface)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))
	memMgr := memory.NewManager(log, memory.DefaultBudget)
	coord := pipeline.NewCoordinator(memMgr, log, pipeline.Options{
		ExportPath:  cfg.ExportPath,
		JPEGQuality: cfg.JPEGQuality,
		CannyLow:    cfg.CannyLow,
		CannyHigh:   cfg.CannyHigh,
	})
	defer coord.Shutdown()

	src, err := coord.LoadImage(cfg.SourcePath)
	if err != nil {
		return err
	}

	if *drag != "" {
		start, end, err := roi.ParseDrag(*drag)
		if err != nil {
			return err
		}
		if err := replay(coord.Selector(), src, size, start, end); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(coord.Context(), *timeout)
	defer cancel()

	a, err := coord.Analyze(ctx)
	if err != nil {
		return err
	}
	printResult(a)

	if *figure {
		fig := render.Figure(render.Input{
			Source:    src.Image,
			ROI:       a.ROI.Image,
			Processed: a.Processed,
			Edges:     a.Edges,
			Result:    a.Result,
		})
		if err := coord.SaveFigureToPath(cfg.FigurePath, fig); err != nil {
			return err
		}
		fmt.Println("figure:", cfg.FigurePath)
	}
	return nil
}

func replay(sel *roi.Selector, src *pipeline.ImageData, size roi.Size, start, end roi.Point) error {
	sel.SetSource(src.Image)
	sel.SetSurface(size)

	if !sel.GestureStart(start) {
		return fmt.Errorf("drag start %v is outside the image on a %vx%v surface", start, size.W, size.H)
	}
	sel.GestureMove(end)
	r, ok := sel.GestureEnd(end)
	if !ok {
		return fmt.Errorf("gesture did not complete")
	}

	exported, err := sel.Export()
	if err != nil {
		return err
	}
	if exported == nil {
		return fmt.Errorf("nothing to export")
	}
	fmt.Printf("roi: %s (%dx%d)\n", r, r.Width(), r.Height())
	return nil
}

func printResult(a *pipeline.Analysis) {
	fmt.Printf("roi size: %dx%d\n", a.ROI.Width, a.ROI.Height)
	fmt.Printf("edges: %d (%d crossings on column %d)\n", a.Result.Count, a.Result.Hits, a.Result.Column)
	printStats(a.Stats)
	fmt.Printf("elapsed: %s\n", a.Elapsed.Round(time.Millisecond))
}

func printStats(s analysis.Stats) {
	fmt.Printf("intensity: mean %.1f sd %.1f min %d max %d fill %.3f\n", s.Mean, s.StdDev, s.Min, s.Max, s.Fill)
}
