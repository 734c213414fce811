// Package main provides a performance benchmarking tool for the git-coauthor CLI.
// It measures how long the exec and go-git backends take to read the current
// commit and to scan the whole history for an alias, running each test
// multiple times, treating the first successful run as cold and averaging the
// rest as warm, and generating CSV output for performance analysis.
//
// Every benchmarked command is read-only: the history scan looks for an alias
// that no commit matches, so it visits every commit and then fails.
//
// Prerequisites:
// - git-coauthor binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const binaryName = "git-coauthor"

// missingAlias matches no author in any of the test repositories.
const missingAlias = "zz-benchmark-nobody"

// BenchmarkResult holds the result of one command on one repository for both backends.
type BenchmarkResult struct {
	Repository string
	Command    string
	ExecCold   string
	ExecWarm   string
	GoGitCold  string
	GoGitWarm  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
}

// benchCommand is one read-only git-coauthor invocation and how to tell it worked.
type benchCommand struct {
	Name        string
	Description string
	Args        []string
	// ExpectError marks commands that succeed by failing with ExpectOutput.
	ExpectError  bool
	ExpectOutput string
}

var benchCommands = []benchCommand{
	{
		Name:        "list",
		Description: "list coauthors of HEAD",
		Args:        []string{"list", "--output", "json"},
		// An empty trailer set is still a JSON object.
		ExpectOutput: `"new_hash"`,
	},
	{
		Name:         "scan",
		Description:  "full history scan for an unknown alias",
		Args:         []string{"add", missingAlias},
		ExpectError:  true,
		ExpectOutput: "coauthor not found: " + missingAlias,
	},
}

func main() {
	// Parse command line arguments
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:  repoBase,
		Timeout:   5 * time.Minute,
		Runs:      4,
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the git-coauthor binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath(binaryName); err != nil {
		return fmt.Errorf("%s binary not found in PATH", binaryName)
	}

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark commands across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per backend\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, command := range benchCommands {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, command))
		}
	}

	return results
}

// runBenchmarkSuite runs a command against both git backends
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath string, command benchCommand) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command.Description, repo)

	runPhase := func(backend string) (cold, warm string) {
		fmt.Printf("  %s backend (%d runs)\n", backend, config.Runs)
		times := runBenchmark(config, repoPath, backend, command)
		if len(times) == 0 {
			return "TIMEOUT", "TIMEOUT"
		}
		cold = fmt.Sprintf("%.3fs", times[0])
		if len(times) == 1 {
			return cold, "N/A"
		}
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	execCold, execWarm := runPhase("exec")
	goGitCold, goGitWarm := runPhase("gogit")

	fmt.Printf("  exec: cold %s, warm %s; gogit: cold %s, warm %s\n", execCold, execWarm, goGitCold, goGitWarm)

	return BenchmarkResult{
		Repository: repo,
		Command:    command.Name,
		ExecCold:   execCold,
		ExecWarm:   execWarm,
		GoGitCold:  goGitCold,
		GoGitWarm:  goGitWarm,
	}
}

// runBenchmark executes a git-coauthor command several times and returns the
// durations of the successful runs in seconds
func runBenchmark(config BenchmarkConfig, repoPath, backend string, command benchCommand) []float64 {
	args := append([]string{"--git-backend", backend, "--journal-backend", "none", "--color", "no"}, command.Args...)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, binaryName, args...)
		cmd.Dir = repoPath
		output, err := cmd.CombinedOutput()
		elapsed := time.Since(start).Seconds()
		timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)
		cancel()

		if !timedOut && isSuccess(output, err, command) {
			times = append(times, elapsed)
		}
	}
	return times
}

// isSuccess checks if a run ended the way the command is expected to end
func isSuccess(output []byte, err error, command benchCommand) bool {
	if (err != nil) != command.ExpectError {
		return false
	}
	return strings.Contains(string(output), command.ExpectOutput)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/coauthor_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "cmd", "exec_cold", "exec_warm", "gogit_cold", "gogit_warm"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, r := range results {
		if err := writer.Write([]string{r.Repository, r.Command, r.ExecCold, r.ExecWarm, r.GoGitCold, r.GoGitWarm}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range benchCommands {
		fmt.Printf("%s:\n", command.Description)
		for _, r := range results {
			if r.Command == command.Name {
				fmt.Printf("  %-12s: exec %s / %s, gogit %s / %s\n", r.Repository, r.ExecCold, r.ExecWarm, r.GoGitCold, r.GoGitWarm)
			}
		}
	}
}
