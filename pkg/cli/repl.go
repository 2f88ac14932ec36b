package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/interp"
)

const (
	replPrompt      = "sparv> "
	replHistoryFile = ".sparv_history"
)

func runREPL() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	rep := newReporter()
	ip := interp.New(interp.Options{
		Out:        func(line string) { fmt.Println(line) },
		ScanErr:    rep.report,
		ParseErr:   rep.report,
		ResolveErr: rep.report,
		TypeErr:    rep.report,
		RuntimeErr: rep.report,
		ReplMode:   true,
	})

	fmt.Printf("sparv %s (session %s)\n", config.Version, ip.ID())
	fmt.Println("Ctrl+C cancels the line, Ctrl+D exits.")

	for {
		line, err := ln.Prompt(replPrompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		rep.reset()
		result := ip.Eval(line)
		if result != nil && result != evaluator.NIL && result != evaluator.VOID && rep.count == 0 {
			fmt.Println(result.Inspect())
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return replHistoryFile
	}
	return filepath.Join(home, replHistoryFile)
}
