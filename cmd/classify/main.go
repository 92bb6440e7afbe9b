// Command classify resolves entity names against the country authority.
// Names come from the command line or from a CSV column, and each one is
// reported as a country (with canonical name, ISO code and region), an
// aggregate, or unrecognized.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"ecopanel/internal/country"
	"ecopanel/internal/dataset"
	"ecopanel/internal/frame"
)

func main() {
	csvFile := flag.String("file", "", "classify the distinct values of a CSV column instead of arguments")
	column := flag.String("column", "country", "entity column when -file is used")
	safe := flag.Bool("safe", false, "disable fuzzy matching")
	flag.Parse()

	if err := run(*csvFile, *column, *safe, flag.Args()); err != nil {
		slog.Error("classify failed", "error", err)
		os.Exit(1)
	}
}

func run(csvFile, column string, safe bool, args []string) error {
	names := args
	if csvFile != "" {
		loaded, err := namesFromCSV(csvFile, column)
		if err != nil {
			return err
		}
		names = loaded
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to classify: pass names as arguments or use -file")
	}

	authority, err := country.NewAuthority()
	if err != nil {
		return err
	}
	classifier := country.NewClassifier(authority)
	opts := country.Options{Safe: safe}

	countries, aggregates, unrecognized := 0, 0, 0
	for _, name := range names {
		result := classifier.ClassifyWithOptions(name, opts)
		switch result.Kind {
		case country.KindCountry:
			countries++
			fmt.Printf("%-40s country      %s", name, result.Name)
			if result.Alpha3 != "" {
				fmt.Printf(" [%s]", result.Alpha3)
			}
			if result.Region != "" {
				fmt.Printf(" (%s)", result.Region)
			}
			fmt.Println()
		case country.KindAggregate:
			aggregates++
			fmt.Printf("%-40s aggregate\n", name)
		default:
			unrecognized++
			fmt.Printf("%-40s unrecognized\n", name)
		}
	}

	fmt.Printf("\n%d names: %d countries, %d aggregates, %d unrecognized\n",
		len(names), countries, aggregates, unrecognized)
	return nil
}

// namesFromCSV loads the distinct values of one column.
func namesFromCSV(path, column string) ([]string, error) {
	df, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if !frame.HasColumn(df, column) {
		return nil, fmt.Errorf("%s has no column %q", path, column)
	}

	seen := map[string]struct{}{}
	var names []string
	for _, name := range frame.StringColumn(df, column) {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
