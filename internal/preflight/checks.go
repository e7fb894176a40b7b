package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"pptfix/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the environment checks for a conversion run.
func RunAll(inputDir, outputDir string) []Result {
	results := make([]Result, 0, 4)

	for _, status := range deps.CheckBinaries(deps.Requirements()) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	results = append(results, CheckDirectoryAccess("Input directory", inputDir, unix.R_OK|unix.X_OK))
	results = append(results, CheckDirectoryAccess("Output directory", outputDir, unix.R_OK|unix.W_OK|unix.X_OK))
	results = append(results, CheckFreeSpace("Output free space", outputDir))
	return results
}

// AllPassed reports whether every check in the set succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckDirectoryAccess verifies that the directory exists and grants the
// requested access bits.
func CheckDirectoryAccess(name, path string, mode uint32) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// minFreeBytes is the floor below which an encode run is refused; re-encoded
// outputs are usually smaller than their sources, but a nearly full disk
// still fails mid-batch.
const minFreeBytes = 512 << 20

// CheckFreeSpace verifies the output filesystem has headroom for new files.
func CheckFreeSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%d MiB available", free>>20)
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " (below 512 MiB floor)"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
