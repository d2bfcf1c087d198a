// Package main запускает multichecker проекта.
//
// Набор анализаторов:
//   - проходы go/analysis/passes: shadow, structtag, nilness, printf, errorsas, lostcancel
//   - все SA-анализаторы staticcheck
//   - S1000 (упрощения) и U1000 (неиспользуемый код)
//   - bodyclose: тело http.Response должно закрываться
//   - mainguard: нет os.Exit в main.main и нет глобальных логгеров zap
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/Totarae/shortlinks/cmd/staticlint/mainguard"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/unused"
)

// simpleChecks — проверки группы simple, которые включены в набор.
var simpleChecks = map[string]bool{
	"S1000": true,
}

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		errorsas.Analyzer,
		lostcancel.Analyzer,
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if simpleChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}

	return append(list, unused.Analyzer.Analyzer, bodyclose.Analyzer, mainguard.NewAnalyzer())
}
