// Package driver runs the compilation pipeline: lex, parse, analyse and,
// on success, emit C. The pipeline is strictly sequential and every stage
// reports into one shared diagnostic bag, so the output order is
// deterministic for any input.
package driver

import (
	"bytes"

	"co/internal/ast"
	"co/internal/backend/cgen"
	"co/internal/diag"
	"co/internal/hir"
	"co/internal/lexer"
	"co/internal/locale"
	"co/internal/parser"
	"co/internal/sema"
	"co/internal/source"
)

// Options configure one compilation.
type Options struct {
	Locale         locale.Locale
	MaxDiagnostics int
	EmitC          bool
}

// Result carries everything a caller may want from a compilation.
type Result struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	Program *hir.Program
	CSource []byte
	// Internal is a compiler bug surfaced by the backend (missing native
	// mapping, cyclic layout); it maps to exit code 2.
	Internal error
}

// ExitCode folds the result into the process status: 0 clean, 1 user
// errors, 2 internal errors.
func (r *Result) ExitCode() int {
	if r.Internal != nil {
		return 2
	}
	if r.Bag.HasErrors() {
		return 1
	}
	return 0
}

// Compile runs the pipeline over one source file.
func Compile(path string, opts Options) (*Result, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileFile(fs, fileID, opts), nil
}

func compileFile(fs *source.FileSet, fileID source.FileID, opts Options) *Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	msgs := locale.NewCatalog(opts.Locale)

	file := fs.Get(fileID)
	toks := lexer.New(file, reporter, msgs).Tokenize()

	strings := source.NewInterner()
	builder := ast.NewBuilder(strings)
	parser.New(toks, builder, reporter, msgs).ParseFile()

	prog := sema.Analyze(builder, sema.Options{
		Reporter: reporter,
		Messages: msgs,
	})

	bag.Sort()
	res := &Result{
		FileSet: fs,
		Bag:     bag,
		Program: prog,
	}
	if opts.EmitC && !bag.HasErrors() {
		var out bytes.Buffer
		if err := cgen.Process(prog, &out); err != nil {
			res.Internal = err
			return res
		}
		res.CSource = out.Bytes()
	}
	return res
}
