package cli

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	accessible "github.com/coursekit/accessible"
	"github.com/coursekit/accessible/internal/config"
)

// Worker bounds for batch mode.
const (
	minWorkers     = 1
	maxAutoWorkers = 8
)

// runBatch processes every eligible file under dir with a bounded worker
// group and reports per-file results.
func runBatch(ctx context.Context, params *runParams, dir string, workers int, common commonFlags, env *Environment) error {
	files, err := discoverFiles(params.tool, dir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no eligible %s files found in %s", params.tool.SourceExt, dir)
	}

	results := processBatch(ctx, params, files, workers, env)

	failed := printResults(results, common.quiet, common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// discoverFiles walks dir and returns the sources the tool can process.
func discoverFiles(tool Tool, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := eligible(tool, path)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// eligible applies the batch selection rules: .shn sources except old
// copies and backups; .tex sources that are full documents.
func eligible(tool Tool, path string) (bool, error) {
	name := filepath.Base(path)
	if filepath.Ext(name) != tool.SourceExt {
		return false, nil
	}
	if tool.Kind == accessible.KindSHN {
		if strings.HasPrefix(name, "old") || strings.Contains(name, "backup") {
			return false, nil
		}
		return true, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return false, err
	}
	return bytes.Contains(data, []byte(`\documentclass`)), nil
}

// processBatch fans files out to a bounded worker group. Results keep the
// discovery order regardless of completion order.
func processBatch(ctx context.Context, params *runParams, files []string, workers int, env *Environment) []processResult {
	concurrency := resolveWorkers(workers)
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]processResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = processResult{Path: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = processFile(ctx, params, files[idx], env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// resolveWorkers turns the configured worker count into a concrete
// concurrency. Zero means auto: half the usable CPUs, within bounds.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	w := runtime.GOMAXPROCS(0) / 2
	if w < minWorkers {
		return minWorkers
	}
	if w > maxAutoWorkers {
		return maxAutoWorkers
	}
	return w
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// printResults outputs batch results using the environment writers.
// Returns the number of failures.
func printResults(results []processResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Path, r.Err)
			continue
		}
		succeeded++
		printOutcome(r, quiet, verbose, env)
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
