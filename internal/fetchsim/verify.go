// Package fetchsim stands in for the out-of-scope package-fetching
// collaborator: it checksums already-materialized package blobs with a
// worker pool and reports progress, the way the corpus verifies
// downloaded archives before installation. The resolver core never
// depends on it.
package fetchsim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

// Blob is a materialized package file with its expected checksum.
type Blob struct {
	Path             string
	ExpectedSHA256Hex string
}

// Result is the outcome of checking one Blob.
type Result struct {
	Path     string
	OK       bool
	Duration time.Duration
	Error    error
}

// VerifyChecksums checks every blob's SHA-256 digest in parallel across
// workers goroutines, reporting progress on stderr, and returns one
// Result per input blob in the same order.
func VerifyChecksums(blobs []Blob, workers int) []Result {
	log := telemetry.Logger()
	if workers < 1 {
		workers = 1
	}

	total := len(blobs)
	results := make([]Result, total)
	jobs := make(chan int, total)
	var wg sync.WaitGroup

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionSpinnerType(10),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				blob := blobs[idx]
				bar.Describe("verifying " + filepath.Base(blob.Path))

				start := time.Now()
				err := verifyOne(blob)
				results[idx] = Result{Path: blob.Path, OK: err == nil, Duration: time.Since(start), Error: err}
				if err != nil {
					log.Errorf("checksum verification failed for %s: %v", blob.Path, err)
				}
				if err := bar.Add(1); err != nil {
					log.Errorf("failed to update progress bar: %v", err)
				}
			}
		}()
	}

	for i := range blobs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if err := bar.Finish(); err != nil {
		log.Errorf("failed to finish progress bar: %v", err)
	}

	return results
}

func verifyOne(blob Blob) error {
	f, err := os.Open(blob.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", blob.Path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hashing %s: %w", blob.Path, err)
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if actual != blob.ExpectedSHA256Hex {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", blob.Path, blob.ExpectedSHA256Hex, actual)
	}
	return nil
}
