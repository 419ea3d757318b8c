package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/ostnam/velox/pkg/ast"
	"github.com/ostnam/velox/pkg/config"
	"github.com/ostnam/velox/pkg/parser"
	"github.com/ostnam/velox/pkg/scanner"
	"github.com/ostnam/velox/pkg/velox"
)

const prompt = "velox > "

// Run the file at the given path as a velox program.
// Returns the process exit code.
func runFile(path string, cfg config.Config, stdout, stderr io.Writer) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "velox: %v\n", err)
		return 1
	}
	session := velox.NewSession(cfg.Runtime(stdout))
	if !run(session, string(content), path, cfg.Debug, stdout, stderr) {
		return 1
	}
	return 0
}

// Runs the REPL
func runRepl(cfg config.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warnf("reading history %s: %v", histPath, err)
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warnf("saving history: %v", err)
				return
			}
			defer f.Close()
			if _, err := ln.WriteHistory(f); err != nil {
				log.Warnf("saving history %s: %v", histPath, err)
			}
		}()
	}

	session := velox.NewSession(cfg.Runtime(os.Stdout))
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil { // on ctrl-D, err is EOF
			if !errors.Is(err, io.EOF) {
				log.Errf("reading input: %v", err)
			}
			fmt.Print("\n")
			return 0
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(line)
		if trimmed == ":quit" {
			return 0
		}
		run(session, line, "", cfg.Debug, os.Stdout, os.Stderr)
	}
}

// Evaluates src in the session, reporting any error on stderr.
// Return value is whether the evaluation returned successfully.
func run(session *velox.Session, src string, name string, debug bool, stdout, stderr io.Writer) bool {
	report := func(err error) bool {
		fmt.Fprint(stderr, velox.FormatDiagnostic(src, name, velox.Diagnose(err)))
		return false
	}

	toks, err := scanner.ScanString(src)
	if err != nil {
		return report(err)
	}
	if debug {
		fmt.Fprintln(stdout, "Tokens scanned:")
		for _, tok := range toks {
			fmt.Fprintf(stdout, "  %d:%d %s\n", tok.Line, tok.Column, tok)
		}
	}

	stmts, err := parser.Parse(toks)
	if err != nil {
		return report(err)
	}
	if debug {
		fmt.Fprintln(stdout, "\nAST parsed:")
		ast.FprintProgram(stdout, stmts)
		fmt.Fprintln(stdout)
	}

	res := session.Exec(stmts)
	if !res.Success {
		fmt.Fprint(stderr, velox.FormatDiagnostic(src, name, res.Err))
		return false
	}
	return true
}

func loadConfig(fs *flag.FlagSet, path string, maxLoop, maxDepth int, logLevel string, debug bool) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
		log.Infof("loaded config %s", path)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-loop":
			cfg.MaxLoopIterations = maxLoop
		case "max-depth":
			cfg.MaxCallDepth = maxDepth
		case "loglevel":
			cfg.LogLevel = logLevel
		case "debug":
			cfg.Debug = debug
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	fs := flag.NewFlagSet("velox", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: velox [flags] [SOURCE_FILE_PATH]")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "YAML configuration file")
	maxLoop := fs.Int("max-loop", 0, "maximum iterations of a single while loop, 0 for no limit")
	maxDepth := fs.Int("max-depth", 0, "maximum function call depth, 0 for the default of 10000, negative for no limit")
	logLevel := fs.String("loglevel", "info", "log level (debug, verbose, info, warning, error)")
	debug := fs.Bool("debug", false, "print tokens and AST before running")
	fs.Parse(os.Args[1:])

	cfg, err := loadConfig(fs, *configPath, *maxLoop, *maxDepth, *logLevel, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "velox: %v\n", err)
		os.Exit(1)
	}
	lvl, err := log.ValidateLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "velox: %v\n", err)
		os.Exit(1)
	}
	log.SetLogLevel(lvl)

	args := fs.Args()
	switch len(args) {
	case 0:
		os.Exit(runRepl(cfg))
	case 1:
		os.Exit(runFile(args[0], cfg, os.Stdout, os.Stderr))
	default:
		fs.Usage()
		os.Exit(64)
	}
}
