package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"turingregex/internal/export"
	"turingregex/internal/interpreter"
	"turingregex/internal/log"
	"turingregex/internal/regexlib"
	"turingregex/internal/server"
	"turingregex/internal/turing"
)

// requestFlags override the configured compilation settings.
var requestFlags = []cli.Flag{
	&cli.StringFlag{Name: "alphabet", Aliases: []string{"a"}, Usage: "Input alphabet `EXPR` (abc, a-c, ^x)"},
	&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "One of match, contains, find"},
	&cli.StringFlag{Name: "accept", Usage: "Accept state `NAME` (default: <prefix>_accept)"},
	&cli.StringFlag{Name: "reject", Usage: "Reject state `NAME`; requires an alphabet"},
	&cli.StringFlag{Name: "prefix", Usage: "Prefix of generated state names"},
}

var (
	compileCommand = &cli.Command{
		Name:      "compile",
		Usage:     "Compile a pattern and print the program",
		ArgsUsage: "PATTERN",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: " + strings.Join(export.Formats, ", ")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to `FILE` instead of stdout"},
		}, requestFlags...),
		Action: compileCmd,
	}

	runCommand = &cli.Command{
		Name:      "run",
		Usage:     "Run a compiled pattern, or a text table, on each input",
		ArgsUsage: "PATTERN INPUT...",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "table", Aliases: []string{"t"}, Usage: "Load the program from a text table `FILE`; every argument is then an input"},
			&cli.IntFlag{Name: "max-steps", Usage: "Step ceiling per run"},
			&cli.BoolFlag{Name: "trace", Usage: "Print every step to stderr"},
		}, requestFlags...),
		Action: runCmd,
	}

	dotCommand = &cli.Command{
		Name:      "dot",
		Usage:     "Print the automaton of a pattern as Graphviz DOT, or render it",
		ArgsUsage: "PATTERN",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{Name: "nfa", Usage: "Show the NFA instead of the minimized DFA"},
			&cli.BoolFlag{Name: "raw", Usage: "Show the DFA before minimization"},
			&cli.StringFlag{Name: "render", Usage: "Render to an image `FORMAT` (svg, png, jpg)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to `FILE` instead of stdout"},
		}, requestFlags...),
		Action: dotCmd,
	}

	serveCommand = &cli.Command{
		Name:  "serve",
		Usage: "Serve the compiler over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "Listen address `ADDR`"},
		},
		Action: serveCmd,
	}

	alphabetCommand = &cli.Command{
		Name:      "alphabet",
		Usage:     "Print the symbols an alphabet expression resolves to",
		ArgsUsage: "EXPR",
		Action:    alphabetCmd,
	}
)

func request(c *cli.Context, pattern string) (turing.Request, error) {
	conf := *cfg
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"alphabet", &conf.Alphabet},
		{"mode", &conf.Mode},
		{"accept", &conf.Accept},
		{"reject", &conf.Reject},
		{"prefix", &conf.Prefix},
	} {
		if c.IsSet(f.name) {
			*f.dst = c.String(f.name)
		}
	}
	return conf.Request(pattern)
}

func output(c *cli.Context) (io.Writer, func() error, error) {
	path := c.String("output")
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func compileCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("compile expects exactly one PATTERN", 2)
	}
	req, err := request(c, c.Args().First())
	if err != nil {
		return err
	}
	res, err := turing.Compile(req)
	if err != nil {
		return err
	}
	format := cfg.Format
	if c.IsSet("format") {
		format = c.String("format")
	}
	w, closeOut, err := output(c)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, res); err != nil {
		closeOut()
		return err
	}
	log.Info().Int("dfa_states", len(res.DFA.States)).Int("states", len(res.Program.States)).Msg("compiled")
	return closeOut()
}

func runCmd(c *cli.Context) error {
	args := c.Args().Slice()
	var prog *turing.Program
	if path := c.String("table"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if prog, err = interpreter.Load(string(data)); err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return cli.Exit("run expects a PATTERN or --table", 2)
		}
		req, err := request(c, args[0])
		if err != nil {
			return err
		}
		res, err := turing.Compile(req)
		if err != nil {
			return err
		}
		prog, args = res.Program, args[1:]
	}

	limit := cfg.MaxSteps
	if c.IsSet("max-steps") {
		limit = c.Int("max-steps")
	}
	m := interpreter.New(prog)
	if c.Bool("trace") {
		m.Trace = os.Stderr
	}
	for _, in := range args {
		res, err := m.Run(in, limit)
		if err != nil {
			return fmt.Errorf("input %q: %w", in, err)
		}
		verdict := "reject"
		if res.Accepted {
			verdict = "accept"
		}
		fmt.Printf("%s\t%s\tstate=%s steps=%d tape=%q head=%d\n", in, verdict, res.State, res.Steps, res.Tape, res.Head)
	}
	return nil
}

func dotCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("dot expects exactly one PATTERN", 2)
	}
	req, err := request(c, c.Args().First())
	if err != nil {
		return err
	}
	res, err := turing.Compile(req)
	if err != nil {
		return err
	}
	var graph any = res.DFA
	switch {
	case c.Bool("nfa"):
		graph = res.Regex.NFA()
	case c.Bool("raw"):
		graph = res.Regex.RawDFA()
	}

	w, closeOut, err := output(c)
	if err != nil {
		return err
	}
	var src strings.Builder
	if err := export.WriteDOT(&src, graph); err != nil {
		closeOut()
		return err
	}
	if format := c.String("render"); format != "" {
		err = export.Render(c.Context, []byte(src.String()), format, w)
	} else {
		_, err = io.WriteString(w, src.String())
	}
	if err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func serveCmd(c *cli.Context) error {
	conf := *cfg
	if c.IsSet("listen") {
		conf.ListenAddr = c.String("listen")
	}
	srv := server.New(&conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()
	return srv.Start()
}

func alphabetCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("alphabet expects exactly one EXPR", 2)
	}
	alpha, err := regexlib.ExpandAlphabet(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%d symbols\n", regexlib.FormatAlphabet(alpha), len(alpha))
	return nil
}
