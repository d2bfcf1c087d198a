// Package mainguard содержит анализатор, который следит за точкой входа:
// os.Exit нельзя вызывать прямо в main.main, а логгер передаётся явно,
// без глобальных zap.L, zap.S и zap.ReplaceGlobals.
package mainguard

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "mainguard",
	Doc:      "запрещает os.Exit в функции main пакета main и глобальные логгеры zap",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// NewAnalyzer возвращает анализатор mainguard.
func NewAnalyzer() *analysis.Analyzer {
	return Analyzer
}

var globalLoggers = map[string]bool{
	"go.uber.org/zap.L":              true,
	"go.uber.org/zap.S":              true,
	"go.uber.org/zap.ReplaceGlobals": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodes := []ast.Node{(*ast.FuncDecl)(nil), (*ast.SelectorExpr)(nil)}
	insp.Preorder(nodes, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.FuncDecl:
			if pass.Pkg.Name() == "main" && n.Name.Name == "main" && n.Recv == nil && n.Body != nil {
				checkExit(pass, n.Body)
			}
		case *ast.SelectorExpr:
			if name := funcName(pass, n); globalLoggers[name] {
				pass.Reportf(n.Pos(), "глобальный логгер %s запрещён, передавайте *zap.Logger явно", name)
			}
		}
	})
	return nil, nil
}

func checkExit(pass *analysis.Pass, body *ast.BlockStmt) {
	ast.Inspect(body, func(n ast.Node) bool {
		// Вложенные функции main не выполняет напрямую.
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if sel, ok := call.Fun.(*ast.SelectorExpr); ok && funcName(pass, sel) == "os.Exit" {
			pass.Reportf(call.Pos(), "вызов os.Exit в функции main запрещён")
		}
		return true
	})
}

func funcName(pass *analysis.Pass, sel *ast.SelectorExpr) string {
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok {
		return ""
	}
	return fn.FullName()
}
