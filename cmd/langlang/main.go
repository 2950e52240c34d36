/*
langlang is a console utility compiling grammar description to a standalone Go program or JSON file.
Usage is

	langlang [-j] [-p <name>] [-e <rule>] [-o <name>] [-c <file>] [-run | -ast | -w] [<file>]

-j flag instructs langlang to output JSON file instead of Go source;

-o <name> defines output file name, default is the name of input file with .go or .json suffix;

-p <name> defines Go package name, default is main; only package main gets the main function;

-e <rule> defines entry rule, default is the return statement rule or the first rule;

-c <file> names CUE configuration file, command line flags override its values;

-run parses standard input with the compiled grammar and writes the result as JSON
to standard output instead of writing output file;

-ast writes syntax tree of the grammar description to standard output;

-w watches grammar file and recompiles it on every change;

-log-debug, -log-json <file>, -journal control logging;

<file> defines grammar definition file parsable by langdef.Parse().

Exit code is 2 on usage error and 3 on any other error.
With -run exit code is 0 if input is parsed successfully and 1 otherwise.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/apccurtiss/langlang/config"
	"github.com/apccurtiss/langlang/internal/logs"
)

const (
	usageExitCode = 2
	errorExitCode = 3
)

var (
	generateJson, runStdin, dumpAst, watch, logDebug, journal bool
	outFileName, packageName, entryName, configFileName, logJSON string
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  langlang [-j] [-p <name>] [-e <rule>] [-o <name>] [-c <file>] [-run | -ast | -w] [<file>]")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tgrammar definition file name, may be set in configuration file")
	}

	flag.BoolVar(&generateJson, "j", false, "output JSON instead of Go")
	flag.StringVar(&outFileName, "o", "", "output file name, default is the name of input file with .go or .json suffix")
	flag.StringVar(&packageName, "p", "", "Go package name, default is main")
	flag.StringVar(&entryName, "e", "", "entry rule name")
	flag.StringVar(&configFileName, "c", "", "CUE configuration file")
	flag.BoolVar(&runStdin, "run", false, "parse standard input instead of writing output file")
	flag.BoolVar(&dumpAst, "ast", false, "write grammar syntax tree to standard output")
	flag.BoolVar(&watch, "w", false, "recompile on grammar file change")
	flag.BoolVar(&logDebug, "log-debug", false, "set log level to debug")
	flag.StringVar(&logJSON, "log-json", "", "append JSON log to file")
	flag.BoolVar(&journal, "journal", false, "send log to systemd journal")
	flag.Parse()

	os.Exit(run())
}

func run() int {
	cfg := &config.Config{}
	if configFileName != "" {
		var e error
		cfg, e = config.Load(configFileName)
		if e != nil {
			fmt.Fprintln(os.Stderr, e.Error())
			return errorExitCode
		}
	}

	flags := config.Config{
		Grammar: flag.Arg(0),
		Output:  outFileName,
		Package: packageName,
		Entry:   entryName,
		Watch:   watch,
	}
	if generateJson {
		flags.Format = "json"
	}
	cfg.Override(flags)

	if cfg.Grammar == "" || flag.NArg() > 1 || (runStdin && dumpAst) || (cfg.Watch && (runStdin || dumpAst)) {
		flag.Usage()
		return usageExitCode
	}

	level := new(slog.LevelVar)
	if logDebug {
		level.Set(slog.LevelDebug)
	}
	logger, closeLog, e := logs.New(logs.Options{Level: level, JSONFile: logJSON, Journal: journal})
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		return errorExitCode
	}
	defer closeLog()

	p, e := newProject(cfg, logger)
	if e != nil {
		logger.Error("cannot start", "error", e)
		return errorExitCode
	}

	switch {
	case dumpAst:
		e = p.dumpAst(os.Stdout)
	case runStdin:
		var code int
		code, e = p.runStdin(os.Stdin, os.Stdout, os.Stderr)
		if e == nil {
			return code
		}
	case cfg.Watch:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		e = p.watch(ctx)
	default:
		e = p.build()
	}

	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		return errorExitCode
	}
	return 0
}
