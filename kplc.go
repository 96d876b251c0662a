package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/isaacev/kplc/config"
	"github.com/isaacev/kplc/feedback"
	"github.com/isaacev/kplc/frontend"
	"github.com/peterh/liner"
	"github.com/urfave/cli"
)

const (
	exitIOError = 1
	exitFatal   = 2

	historyFile = ".kplc_history"
)

var configPath string
var noColor bool
var logLevel string
var echoTokens bool
var showSymbols bool

// session carries the settings shared by every command of one run
type session struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

// newSession loads the configuration file and applies the command line
// overrides on top of it
func newSession(out, errOut io.Writer) (*session, error) {
	var cfg config.Config
	var err error

	if configPath == "" {
		cfg, err = config.LoadOptional(config.DefaultFile)
	} else {
		cfg, err = config.Load(configPath)
	}

	if err != nil {
		return nil, err
	}

	if noColor {
		cfg.Output.Color = false
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})

	return &session{
		cfg:    cfg,
		logger: slog.New(handler).With("run", uuid.New().String()),
		out:    out,
		errOut: errOut,
	}, nil
}

// stage is one command's work on a single source
type stage func(reader *frontend.Reader, sink feedback.Sink) (feedback.Message, error)

// printer writes every diagnostic it receives
func (s *session) printer() feedback.Sink {
	return feedback.SinkFunc(func(msg feedback.Message) {
		fmt.Fprintln(s.errOut, msg.Make(s.cfg.Output.Color))
	})
}

// run hands a source to "do". Each diagnostic is printed as soon as the line
// it points at has been read in full
func (s *session) run(reader *frontend.Reader, do stage) (feedback.Message, error) {
	held := &feedback.Deferred{Next: s.printer()}
	reader.OnLine = held.Release

	msg, err := do(reader, held)

	reader.FinishLine()
	held.Flush()

	return msg, err
}

// scan writes the token dump of one source
func (s *session) scan(reader *frontend.Reader, sink feedback.Sink) (feedback.Message, error) {
	scanner := frontend.NewScanner(reader)
	scanner.MaxIdentLen = s.cfg.Scanner.MaxIdentLen

	return frontend.DumpTokens(scanner, s.out, sink)
}

// parser returns the stage that validates one source, with name resolution
// when "semantics" is set
func (s *session) parser(semantics bool) stage {
	return func(reader *frontend.Reader, sink feedback.Sink) (feedback.Message, error) {
		opts := frontend.Options{
			MaxIdentLen: s.cfg.Scanner.MaxIdentLen,
			Semantics:   semantics,
			Logger:      s.logger,
		}

		if s.cfg.Output.Echo {
			opts.Echo = func(tok frontend.Token) {
				fmt.Fprintln(s.out, frontend.FormatToken(tok))
			}
		}

		prog, msg := frontend.Parse(reader, sink, opts)

		if msg == nil && semantics && showSymbols {
			if _, err := fmt.Fprintln(s.out, frontend.StringifyScopes(prog)); err != nil {
				return nil, err
			}
		}

		return msg, nil
	}
}

// runFile opens a source file and hands it to "do"
func (s *session) runFile(path string, do stage) (feedback.Message, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not find '%s': %w", path, err)
	}

	if ext := filepath.Ext(abs); ext != ".kpl" {
		s.logger.Warn("unexpected source extension", "file", abs, "ext", ext)
	}

	reader, err := frontend.OpenReader(abs)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	s.logger.Info("processing file", "file", abs)

	msg, err := s.run(reader, do)
	if err != nil {
		return msg, fmt.Errorf("%s: %w", path, err)
	}

	if err := reader.Err(); err != nil {
		return msg, fmt.Errorf("read %s: %w", path, err)
	}

	return msg, nil
}

// runFiles applies "do" to every file and converts the outcome into the
// process exit status. I/O problems take precedence over diagnostics
func (s *session) runFiles(paths []string, do stage) error {
	if len(paths) == 0 {
		return cli.NewExitError("no input files", exitIOError)
	}

	status := 0

	for _, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintf(s.out, "# %s\n", path)
		}

		msg, err := s.runFile(path, do)

		switch {
		case err != nil:
			fmt.Fprintln(s.errOut, err)
			status = exitIOError
		case msg != nil && msg.Fatal() && status == 0:
			status = exitFatal
		}
	}

	if status != 0 {
		return cli.NewExitError("", status)
	}

	return nil
}

// repl dumps the tokens of every line typed. Lines are also collected so
// that ":check" can validate everything entered since the last ":reset"
func (s *session) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var program strings.Builder

	for {
		line, err := ln.Prompt("kpl> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.out)
			return nil
		}

		if err != nil {
			return fmt.Errorf("read prompt: %w", err)
		}

		ln.AppendHistory(line)

		if done := s.replLine(&program, line); done {
			return nil
		}
	}
}

// replLine handles one line of REPL input and returns true once the user
// asked to quit
func (s *session) replLine(program *strings.Builder, line string) (done bool) {
	switch strings.TrimSpace(line) {
	case "":
		return false
	case ":quit":
		return true
	case ":reset":
		program.Reset()
		return false
	case ":check":
		reader := frontend.NewReader("<repl>", strings.NewReader(program.String()))
		if msg, _ := s.run(reader, s.parser(true)); msg == nil {
			fmt.Fprintln(s.out, "ok")
		}

		return false
	}

	program.WriteString(line)
	program.WriteByte('\n')

	if _, err := s.run(frontend.NewReader("<repl>", strings.NewReader(line)), s.scan); err != nil {
		fmt.Fprintln(s.errOut, err)
	}

	return false
}

func main() {
	var sess *session

	app := cli.NewApp()
	app.Name = "kplc"
	app.Usage = "scan, parse and check KPL programs"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config",
			Usage:       "load settings from a TOML or YAML file (default: ./" + config.DefaultFile + " if present)",
			Destination: &configPath,
		},
		cli.BoolFlag{
			Name:        "no-color",
			Usage:       "hide colors in error messages",
			Destination: &noColor,
		},
		cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			Destination: &logLevel,
		},
	}

	app.Before = func(c *cli.Context) (err error) {
		if sess, err = newSession(os.Stdout, os.Stderr); err != nil {
			return cli.NewExitError(err.Error(), exitIOError)
		}

		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:    "scan",
			Aliases: []string{"s"},
			Usage:   "Print the token stream of file(s)",
			Action: func(c *cli.Context) error {
				return sess.runFiles(c.Args(), sess.scan)
			},
		},
		{
			Name:    "parse",
			Aliases: []string{"p"},
			Usage:   "Check the syntax of file(s)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:        "echo",
					Usage:       "print every token the parser accepts",
					Destination: &echoTokens,
				},
			},
			Action: func(c *cli.Context) error {
				if echoTokens {
					sess.cfg.Output.Echo = true
				}

				return sess.runFiles(c.Args(), sess.parser(false))
			},
		},
		{
			Name:    "check",
			Aliases: []string{"c"},
			Usage:   "Check the syntax and name usage of file(s)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:        "symbols",
					Usage:       "print the scope tree of every valid program",
					Destination: &showSymbols,
				},
			},
			Action: func(c *cli.Context) error {
				return sess.runFiles(c.Args(), sess.parser(true))
			},
		},
		{
			Name:  "repl",
			Usage: "Print the tokens of each line typed",
			Action: func(c *cli.Context) error {
				if err := sess.repl(); err != nil {
					return cli.NewExitError(err.Error(), exitIOError)
				}

				return nil
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}

	app.Run(os.Args)
}
