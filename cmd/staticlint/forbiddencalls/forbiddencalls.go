package forbiddencalls

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "forbiddencalls"
	analyzerDoc  = "reports panic, os.Exit and log.Fatal outside main, and fmt printing instead of structured logging"
)

// Analyzer enforces the project's exit and logging policy: process
// termination stays in main, and output goes through zerolog rather than
// fmt printing.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// fmtPrinters are the fmt functions that write to stdout directly.
var fmtPrinters = map[string]bool{
	"Print":   true,
	"Println": true,
	"Printf":  true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(node ast.Node) {
		checkCall(pass, node.(*ast.CallExpr))
	})

	return nil, nil
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr) {
	switch fn := callExpr.Fun.(type) {
	case *ast.Ident:
		if fn.Name == "panic" {
			pass.Reportf(callExpr.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		checkSelectorExpr(pass, fn, callExpr)
	}
}

func checkSelectorExpr(pass *analysis.Pass, selectorExpr *ast.SelectorExpr, callExpr *ast.CallExpr) {
	ident, ok := selectorExpr.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return
	}

	obj := pass.TypesInfo.Uses[ident]
	pkgName, ok := obj.(*types.PkgName)
	if !ok {
		return
	}

	fn := selectorExpr.Sel.Name
	switch pkgName.Imported().Path() {
	case "log":
		if fn == "Fatal" && !isInMainFunction(pass, callExpr) {
			pass.Reportf(callExpr.Pos(), "log.Fatal is forbidden outside main function")
		}
	case "os":
		if fn == "Exit" && !isInMainFunction(pass, callExpr) {
			pass.Reportf(callExpr.Pos(), "os.Exit is forbidden outside main function")
		}
	case "fmt":
		if fmtPrinters[fn] {
			pass.Reportf(callExpr.Pos(), "fmt.%s is forbidden, use zerolog", fn)
		}
	}
}

func isInMainFunction(pass *analysis.Pass, node ast.Node) bool {
	for _, f := range pass.Files {
		for _, decl := range f.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Name.Name != "main" {
				continue
			}
			if isNodeInsideFunc(node, funcDecl) {
				return true
			}
		}
	}
	return false
}

func isNodeInsideFunc(target ast.Node, funcDecl *ast.FuncDecl) bool {
	found := false
	ast.Inspect(funcDecl.Body, func(n ast.Node) bool {
		if n == target {
			found = true
			return false
		}
		return true
	})
	return found
}
