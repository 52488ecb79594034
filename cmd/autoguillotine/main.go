package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"autoguillotine/pkg/config"
	"autoguillotine/pkg/guillotine"
	"autoguillotine/pkg/imageio"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	threshold := flag.Float64("threshold", -1, "Minimum discontinuity magnitude to accept a cut (overrides config)")
	minSize := flag.Int("min-size", -1, "Minimum region width/height eligible for cutting (overrides config)")
	format := flag.String("format", "", "Output image format, png or jpeg (overrides config)")
	sequential := flag.Bool("sequential", false, "Disable fork-join processing of split halves")
	verbose := flag.Bool("verbose", false, "Enable debug logging of every cut decision")
	flag.Parse()

	logger := initLogger(*verbose)

	// Validate inputs
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] image...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load configuration and apply flag overrides
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if *threshold >= 0 {
		cfg.Splitting.Threshold = *threshold
	}
	if *minSize >= 0 {
		cfg.Splitting.MinSize = *minSize
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *sequential {
		cfg.Processing.Parallel = false
	}
	if cfg.Output.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	splitter := guillotine.NewSplitter(&guillotine.Params{
		Threshold: cfg.Splitting.Threshold,
		MinSize:   cfg.Splitting.MinSize,
		Parallel:  cfg.Processing.Parallel,
		Logger:    logger,
	})

	for _, path := range flag.Args() {
		if err := processImage(path, cfg, splitter, logger); err != nil {
			logger.Fatalf("Failed to process %s: %v", path, err)
		}
	}
}

// processImage runs the guillotine on one input file and writes the
// resulting sub-images to a directory named after the file stem.
func processImage(path string, cfg *config.Config, splitter *guillotine.Splitter, logger *logrus.Logger) error {
	img, err := imageio.Load(path)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"input":  path,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Info("Splitting image")

	startTime := time.Now()
	regions, err := splitter.Split(img)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"regions": len(regions),
		"elapsed": time.Since(startTime).Round(time.Millisecond),
	}).Info("Splitting finished")

	outDir := imageio.OutputDir(path)
	if err := imageio.EnsureDir(outDir); err != nil {
		return err
	}

	ext := "png"
	if cfg.Output.Format == "jpeg" || cfg.Output.Format == "jpg" {
		ext = "jpg"
	}

	for i, region := range regions {
		outPath := filepath.Join(outDir, fmt.Sprintf("%d.%s", i, ext))
		logger.WithField("output", outPath).Info("Saving sub-image")
		if err := imageio.Save(outPath, region.Image); err != nil {
			return err
		}
	}

	return nil
}

// initLogger configures logging for the application
func initLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
