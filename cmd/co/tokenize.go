package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"co/internal/diag"
	"co/internal/diagfmt"
	"co/internal/lexer"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:          "tokenize <input.co>",
	Short:        "Dump the token stream of a CO source file",
	Args:         cobra.ExactArgs(1),
	RunE:         tokenizeExecution,
	SilenceUsage: true,
}

func tokenizeExecution(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	localeFlag, _ := cmd.Flags().GetString("locale")
	maxDiag, _ := cmd.Flags().GetInt("max-diagnostics")
	if maxDiag <= 0 {
		maxDiag = 100
	}
	bag := diag.NewBag(maxDiag)
	msgs := locale.NewCatalog(locale.Detect(localeFlag))
	toks := lexer.New(fs.Get(fileID), &diag.BagReporter{Bag: bag}, msgs).Tokenize()

	for _, tok := range toks {
		pos := fs.Position(tok.Span.File, tok.Span.Start)
		if tok.Text != "" {
			fmt.Printf("%s\t%s\t%q\n", pos, tok.Kind, tok.Text)
		} else {
			fmt.Printf("%s\t%s\n", pos, tok.Kind)
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{Color: colorEnabled(cmd)})
	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
