// Package preflight runs the orchestrator's pre-run checks: available disk
// space and target-directory writability. Narrowed from the teacher's
// open-ended named-check registry down to exactly the two checks
// spec.md §4.E requires before any file is created.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diskcheck/diskcheck/pkg/diskerr"
)

// Result is the outcome of a single check.
type Result struct {
	Name     string
	Healthy  bool
	Message  string
	Duration time.Duration
}

// CheckFunction evaluates a single precondition.
type CheckFunction func() error

// Checker runs a fixed set of named checks and reports the first failure.
type Checker struct {
	checks []namedCheck
}

type namedCheck struct {
	name string
	fn   CheckFunction
}

// New builds a Checker for targetPath with the standard space-and-
// writability checks. requiredBytes is the backing file size the run
// will need.
func New(targetPath string, requiredBytes int64, availableBytes func(path string) (int64, error)) *Checker {
	c := &Checker{}
	c.checks = []namedCheck{
		{"directory-writable", func() error { return checkWritable(targetPath) }},
		{"available-space", func() error { return checkSpace(targetPath, requiredBytes, availableBytes) }},
	}
	return c
}

// Run executes every check in order, stopping and returning the results
// gathered so far at the first failure.
func (c *Checker) Run() ([]Result, error) {
	results := make([]Result, 0, len(c.checks))
	for _, check := range c.checks {
		start := time.Now()
		err := check.fn()
		result := Result{
			Name:     check.name,
			Healthy:  err == nil,
			Duration: time.Since(start),
		}
		if err != nil {
			result.Message = err.Error()
			results = append(results, result)
			return results, err
		}
		result.Message = "ok"
		results = append(results, result)
	}
	return results, nil
}

func checkWritable(targetPath string) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		return diskerr.Configuration(fmt.Sprintf("target_path %q: %v", targetPath, err))
	}
	if !info.IsDir() {
		return diskerr.Configuration(fmt.Sprintf("target_path %q is not a directory", targetPath))
	}

	probe := filepath.Join(targetPath, ".diskcheck-preflight")
	f, err := os.Create(probe)
	if err != nil {
		return diskerr.PermissionDenied(targetPath, err)
	}
	f.Close()
	os.Remove(probe)
	return nil
}

func checkSpace(targetPath string, requiredBytes int64, availableBytes func(path string) (int64, error)) error {
	if availableBytes == nil {
		return nil
	}
	available, err := availableBytes(targetPath)
	if err != nil {
		return diskerr.Platform("querying available space", err)
	}
	if requiredBytes > available {
		return diskerr.InsufficientSpace(requiredBytes, available)
	}
	return nil
}
