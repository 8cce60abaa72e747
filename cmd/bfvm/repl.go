package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/deepnoodle-ai/bfvm"
	"github.com/deepnoodle-ai/bfvm/bytecode"
	"github.com/deepnoodle-ai/bfvm/compiler"
	"github.com/deepnoodle-ai/bfvm/dis"
	"github.com/deepnoodle-ai/bfvm/errors"
	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	"github.com/hokaccha/go-prettyjson"
	"github.com/rs/zerolog"
)

const helpText = `Each line is a program run on a fresh tape. Instructions:
  >  <   move the cursor right / left
  +  -   increment / decrement the current cell
  .  ,   write / read the current cell
  [  ]   loop while the current cell is nonzero

Commands:
  :help            show this message
  :dis <program>   show the instructions and jump targets of a program
  :check <program> report every bracket and character problem
  :stats <program> show statistics for a program
  :quit            exit (Ctrl-D also exits)
`

type repl struct {
	cfg       config
	logger    zerolog.Logger
	lines     lineReader
	input     func() io.Reader
	stdout    io.Writer
	stderr    io.Writer
	out       *outputTracker
	formatter *errors.Formatter
	save      func(string)

	// eofNewline ends the pending prompt line before saying goodbye.
	eofNewline bool
}

func runRepl(cfg config) error {
	r := newRepl(cfg, os.Stdout, os.Stderr)
	r.logger = newLogger(cfg)

	if !isTerminalIO() {
		stdin := bufio.NewReader(os.Stdin)
		r.lines = &plainLines{r: stdin, w: os.Stdout, prompt: cfg.Prompt}
		r.input = func() io.Reader { return stdin }
		r.eofNewline = true
		return r.loop()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 cfg.Prompt,
		HistoryFile:            cfg.HistoryFile,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	lines := &readlineLines{rl: rl, prompt: cfg.Prompt}
	r.lines = lines
	r.input = func() io.Reader { return &lineInput{next: lines.readInput} }
	if cfg.HistoryFile != "" {
		r.save = func(line string) {
			if err := rl.SaveHistory(line); err != nil {
				r.logger.Debug().Err(err).Msg("saving history")
			}
		}
	}
	return r.loop()
}

func newRepl(cfg config, stdout, stderr io.Writer) *repl {
	return &repl{
		cfg:       cfg,
		logger:    zerolog.Nop(),
		stdout:    stdout,
		stderr:    stderr,
		out:       &outputTracker{w: stdout},
		formatter: errors.NewFormatter(!color.NoColor),
		save:      func(string) {},
	}
}

func (r *repl) loop() error {
	for {
		line, err := r.lines.ReadLine()
		if errors.Is(err, errInterrupted) {
			continue
		}
		if err == io.EOF {
			if r.eofNewline {
				fmt.Fprintln(r.stdout)
			}
			fmt.Fprintln(r.stdout, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}
		if quit := r.handle(line); quit {
			fmt.Fprintln(r.stdout, "Bye.")
			return nil
		}
	}
}

// handle processes one submitted line and reports whether the session
// should end.
func (r *repl) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line != "" {
		r.save(line)
	}
	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}
	r.execute(line)
	return false
}

func (r *repl) execute(program string) {
	runID := uuid.Must(uuid.NewV4())
	logger := r.logger.With().Str("run", runID.String()).Logger()
	opts := []bfvm.Option{
		bfvm.WithInput(r.input()),
		bfvm.WithOutput(r.out),
		bfvm.WithLogger(logger),
	}
	if r.cfg.StepLimit > 0 {
		opts = append(opts, bfvm.WithStepLimit(r.cfg.StepLimit))
	}
	r.out.reset()
	err := bfvm.Eval(program, opts...)
	if r.out.needsNewline() {
		fmt.Fprintln(r.stdout)
	}
	if err != nil {
		r.printError(err)
	}
}

func (r *repl) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case ":help", ":h":
		fmt.Fprint(r.stdout, helpText)
	case ":quit", ":q", ":exit":
		return true
	case ":dis":
		if code, ok := r.compile(arg); ok {
			dis.Print(dis.Disassemble(code), r.stdout)
		}
	case ":check":
		r.check(arg)
	case ":stats":
		if code, ok := r.compile(arg); ok {
			r.printStats(code.Stats())
		}
	default:
		fmt.Fprintln(r.stderr, red(fmt.Sprintf("unknown command %s (type :help for a list)", name)))
	}
	return false
}

func (r *repl) compile(program string) (*bytecode.Code, bool) {
	code, err := compiler.Compile(program)
	if err != nil {
		r.printError(err)
		return nil, false
	}
	return code, true
}

func (r *repl) check(program string) {
	problems := compiler.Problems(program)
	if len(problems) == 0 {
		fmt.Fprintln(r.stdout, "ok")
		return
	}
	formatted := make([]*errors.FormattedError, 0, len(problems))
	for _, p := range problems {
		formatted = append(formatted, p.ToFormatted())
	}
	fmt.Fprint(r.stderr, r.formatter.FormatMultiple(formatted))
}

func (r *repl) printStats(stats bytecode.Stats) {
	var data []byte
	var err error
	if r.formatter.UseColor {
		data, err = prettyjson.Marshal(stats)
	} else {
		data, err = json.MarshalIndent(stats, "", "  ")
	}
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintln(r.stdout, string(data))
}

func (r *repl) printError(err error) {
	fmt.Fprint(r.stderr, r.formatter.FormatError(err))
}
