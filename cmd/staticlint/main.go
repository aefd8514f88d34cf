// Command staticlint runs the project's multichecker: a selection of
// go/analysis passes plus the forbiddencalls analyzer.
//
// Usage:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"

	"github.com/Naman-Bagoria17/shortify/cmd/staticlint/forbiddencalls"
)

func main() {
	analyzers := []*analysis.Analyzer{
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		forbiddencalls.Analyzer,
	}

	multichecker.Main(analyzers...)
}
