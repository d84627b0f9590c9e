// ABOUTME: Command-line runner for the retrieval quality benchmarks
// ABOUTME: Runs scenarios offline and reports hit rate and MRR per scenario

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jacob/career-chatbot/benchmarks/retrieval"
)

func main() {
	var (
		scenarioID = flag.String("scenario", "", "Run a specific scenario by ID (default: all)")
		outputPath = flag.String("output", "", "Export results to JSON file")
		verbose    = flag.Bool("verbose", false, "Print per-query results")
	)
	flag.Parse()

	fmt.Println("Retrieval Benchmark")
	fmt.Println("===================")
	fmt.Println()

	runner := retrieval.NewRunner(*verbose)

	var results []retrieval.Result
	var err error

	if *scenarioID != "" {
		scenario, ok := findScenario(*scenarioID)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown scenario: %s\n", *scenarioID)
			fmt.Fprintln(os.Stderr, "Available scenarios:")
			for _, s := range retrieval.AllScenarios() {
				fmt.Fprintf(os.Stderr, "  %s - %s\n", s.ID, s.Name)
			}
			os.Exit(1)
		}
		result, runErr := runner.RunScenario(scenario)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Scenario %s failed to run: %v\n", scenario.ID, runErr)
			os.Exit(1)
		}
		results = append(results, result)
	} else {
		results, err = runner.RunAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Benchmark run failed: %v\n", err)
			os.Exit(1)
		}
	}

	passed, failed := 0, 0
	for _, result := range results {
		fmt.Printf("[%s] %s\n", result.Status, result.ScenarioName)
		fmt.Printf("  Hit rate: %.2f  MRR: %.2f\n", result.HitRate, result.MRR)
		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("Scenarios: %d passed, %d failed\n", passed, failed)

	if *outputPath != "" {
		if err := runner.ExportResults(results, *outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", *outputPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func findScenario(id string) (retrieval.Scenario, bool) {
	for _, s := range retrieval.AllScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return retrieval.Scenario{}, false
}
