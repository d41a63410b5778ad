package triage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Recognized image extensions, matched case-insensitively against directory
// entry names.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// ScanImages lists the image files in dir, in directory-listing order.
// Subdirectories and files without a recognized extension are skipped.
func ScanImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	return paths, nil
}

// Runner drives the Controller over a sequence of images, one at a time.
type Runner struct {
	Controller *Controller
	Out        io.Writer
}

// NewRunner returns a Runner that reports progress on stdout. Quit is
// enabled on the controller: a batch is the only place it makes sense.
func NewRunner(controller *Controller) *Runner {
	controller.AllowQuit = true
	return &Runner{
		Controller: controller,
		Out:        os.Stdout,
	}
}

// Run processes every image in paths sequentially. It stops early when the
// user quits at a prompt or the context is canceled, and returns the
// results collected so far.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	total := len(paths)
	fmt.Fprintf(r.Out, "Found %d images to process.\n", total)

	var results []Result
	for i, imagePath := range paths {
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.Out, "\nRun interrupted.")
			return results
		default:
		}

		fmt.Fprintf(r.Out, "\n================== PROCESSING IMAGE %d of %d (%s) ==================\n",
			i+1, total, filepath.Base(imagePath))

		result := r.Controller.Process(ctx, imagePath)
		results = append(results, result)

		if result.Outcome == OutcomeQuit {
			return results
		}
	}

	fmt.Fprintln(r.Out, "\n================== ALL IMAGES PROCESSED ==================")
	return results
}
