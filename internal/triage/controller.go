// Package triage drives the per-image workflow: analyze a scanned document,
// open its resolved destination in the browser, ask the user what happened,
// and file the image into a disposition folder.
package triage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"

	"github.com/lehigh-university-libraries/scantriage/internal/extract"
	"github.com/lehigh-university-libraries/scantriage/internal/imaging"
	"github.com/lehigh-university-libraries/scantriage/internal/resolve"
	"github.com/lehigh-university-libraries/scantriage/internal/vision"
)

// Disposition directories, created on demand relative to the working
// directory.
const (
	DeletionDir   = "for_deletion"
	InspectionDir = "manual_inspection"
)

// Outcome is the terminal state of one processed image.
type Outcome int

const (
	// OutcomeDeletion means the user confirmed the download and the image
	// was filed for deletion.
	OutcomeDeletion Outcome = iota
	// OutcomeInspection means the user declined and the image was filed
	// for manual review.
	OutcomeInspection
	// OutcomeAutoInspection means analysis failed or found nothing, and
	// the image was filed for review without prompting.
	OutcomeAutoInspection
	// OutcomeQuit means the user ended the run at the prompt.
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeletion:
		return "for_deletion"
	case OutcomeInspection:
		return "manual_inspection"
	case OutcomeAutoInspection:
		return "manual_inspection (auto)"
	case OutcomeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result records what happened to one image.
type Result struct {
	Image       string
	Meta        extract.Metadata
	Destination string
	Outcome     Outcome
	Err         error
}

// AnalyzeFunc runs the full analysis pipeline for one image path and
// returns the extracted metadata.
type AnalyzeFunc func(ctx context.Context, imagePath string) (extract.Metadata, error)

// NewAnalyzer composes encoder, vision provider, and extractor into an
// AnalyzeFunc.
func NewAnalyzer(provider vision.Provider, config vision.Config) AnalyzeFunc {
	return func(ctx context.Context, imagePath string) (extract.Metadata, error) {
		pngData, err := imaging.EncodePNG(imagePath)
		if err != nil {
			return extract.Metadata{}, err
		}

		description, err := provider.DescribeImage(ctx, config, pngData)
		if err != nil {
			return extract.Metadata{}, err
		}

		slog.Debug("Model description received", "image", filepath.Base(imagePath), "length", len(description))
		return extract.Extract(description), nil
	}
}

// Controller runs the triage workflow for single images. The blocking
// collaborators (browser open, console input/output) are injected so other
// front ends can substitute non-blocking equivalents without touching the
// extraction or resolution logic.
type Controller struct {
	Analyze AnalyzeFunc
	OpenURL func(string) error
	In      io.Reader
	Out     io.Writer

	// AllowQuit enables the quit answer at the prompt; only the batch
	// runner sets it.
	AllowQuit bool

	reader *bufio.Reader
}

// NewController returns a Controller wired to the default browser and the
// process console.
func NewController(analyze AnalyzeFunc) *Controller {
	return &Controller{
		Analyze: analyze,
		OpenURL: browser.OpenURL,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Process runs one image through the full workflow and reports its outcome.
// Analysis failures never propagate: the image is routed to manual
// inspection and the caller can move on to the next one.
func (c *Controller) Process(ctx context.Context, imagePath string) Result {
	result := Result{Image: imagePath}

	meta, err := c.Analyze(ctx, imagePath)
	if err != nil {
		slog.Error("Analysis failed", "image", filepath.Base(imagePath), "err", err)
		fmt.Fprintf(c.Out, "\nAn unexpected error occurred while processing %s: %v\n", filepath.Base(imagePath), err)
		fmt.Fprintln(c.Out, "Moving file to 'manual_inspection' for safety.")
		result.Err = err
		result.Outcome = OutcomeAutoInspection
		c.moveTo(imagePath, InspectionDir)
		return result
	}
	result.Meta = meta

	fmt.Fprintln(c.Out, "\n--- Analysis Results ---")
	fmt.Fprintf(c.Out, "Title: %s\n", meta.Title)
	fmt.Fprintf(c.Out, "DOI: %s\n", meta.DOI)
	fmt.Fprintln(c.Out, "----------------------")

	destination, ok := resolve.Destination(meta)
	if !ok {
		fmt.Fprintln(c.Out, "\nCould not find a valid title or DOI. Moving to manual inspection.")
		result.Outcome = OutcomeAutoInspection
		if c.moveTo(imagePath, InspectionDir) {
			fmt.Fprintf(c.Out, "Moved '%s' to '%s/'.\n", filepath.Base(imagePath), InspectionDir)
		}
		return result
	}
	result.Destination = destination

	if meta.HasDOI() {
		fmt.Fprintln(c.Out, "\nFound DOI. Opening link in your browser...")
	} else {
		fmt.Fprintln(c.Out, "\nNo DOI found. Searching for the title on Google...")
	}
	if err := c.OpenURL(destination); err != nil {
		// Best effort: the user can still follow the printed URL.
		slog.Warn("Failed to open browser", "url", destination, "err", err)
		fmt.Fprintf(c.Out, "Could not open the browser: %v\nOpen it yourself: %s\n", err, destination)
	}

	result.Outcome = c.promptForOutcome(imagePath)
	return result
}

// promptForOutcome asks the user what happened and files the image
// accordingly. Invalid answers re-prompt; quit is honored only when
// AllowQuit is set.
func (c *Controller) promptForOutcome(imagePath string) Outcome {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}

	options := "yes/no"
	if c.AllowQuit {
		options = "yes/no/quit"
	}

	for {
		fmt.Fprintf(c.Out, "\n>>> Were you successful in downloading the PDF? (%s): ", options)

		line, err := c.reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))

		switch answer {
		case "yes":
			if c.moveTo(imagePath, DeletionDir) {
				fmt.Fprintf(c.Out, "\nSuccess. Moved '%s' to '%s/'.\n", filepath.Base(imagePath), DeletionDir)
			}
			return OutcomeDeletion
		case "no":
			if c.moveTo(imagePath, InspectionDir) {
				fmt.Fprintf(c.Out, "\nUnderstood. Moved '%s' to '%s/' for review.\n", filepath.Base(imagePath), InspectionDir)
			}
			return OutcomeInspection
		case "quit":
			if c.AllowQuit {
				fmt.Fprintln(c.Out, "\nQuit command received. Exiting.")
				return OutcomeQuit
			}
		}

		if err != nil {
			// Console is gone (EOF or read failure); there is no way to
			// collect an answer, so end the run instead of spinning.
			slog.Error("Failed to read answer", "err", err)
			return OutcomeQuit
		}

		fmt.Fprintf(c.Out, "Invalid input. Please enter '%s'.\n", strings.ReplaceAll(options, "/", "', '"))
	}
}

// moveTo files the image into dir, creating it if needed. A failed move is
// reported and leaves the file in place; the cycle still ends.
func (c *Controller) moveTo(imagePath, dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("Failed to create disposition directory", "dir", dir, "err", err)
		fmt.Fprintf(c.Out, "\nError moving file: %v\n", err)
		return false
	}

	target := filepath.Join(dir, filepath.Base(imagePath))
	if err := os.Rename(imagePath, target); err != nil {
		slog.Error("Failed to move file", "image", imagePath, "target", target, "err", err)
		fmt.Fprintf(c.Out, "\nError moving file: %v\n", err)
		return false
	}

	return true
}
