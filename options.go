package bfvm

import (
	"io"

	"github.com/deepnoodle-ai/bfvm/vm"
	"github.com/rs/zerolog"
)

// Option configures a compilation or execution.
type Option func(*options)

type options struct {
	input     io.Reader
	output    io.Writer
	observers []vm.Observer
	stepLimit int64
	logger    zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.input != nil {
		opts = append(opts, vm.WithInput(o.input))
	}
	if o.output != nil {
		opts = append(opts, vm.WithOutput(o.output))
	}
	observers := o.observers
	if o.stepLimit > 0 {
		observers = append([]vm.Observer{vm.StepLimit(o.stepLimit)}, observers...)
	}
	switch len(observers) {
	case 0:
	case 1:
		opts = append(opts, vm.WithObserver(observers[0]))
	default:
		opts = append(opts, vm.WithObserver(newChain(observers)))
	}
	return opts
}

// WithInput sets the reader consumed by the input instruction.
// Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput sets the writer the output instruction writes to.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithObserver adds an observer for VM execution events. This option is
// additive; observers are called in the order supplied and execution halts
// as soon as any of them returns false.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, observer)
	}
}

// WithStepLimit halts execution with errors.ErrHalted once the given number
// of instructions has executed. Zero means no limit.
func WithStepLimit(limit int64) Option {
	return func(o *options) {
		o.stepLimit = limit
	}
}

// WithLogger sets the logger that receives compile and run events.
// Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// chain fans step events out to several observers. The chain itself
// observes every step and forwards each event only to the members whose
// own configuration asks for it.
type chain struct {
	observers []vm.Observer
	configs   []vm.ObserverConfig
}

func newChain(observers []vm.Observer) *chain {
	c := &chain{
		observers: observers,
		configs:   make([]vm.ObserverConfig, len(observers)),
	}
	for i, observer := range observers {
		c.configs[i] = vm.NormalizeConfig(observer.Config())
	}
	return c
}

func (c *chain) Config() vm.ObserverConfig {
	return vm.ObserverConfig{StepMode: vm.StepAll}
}

func (c *chain) OnStep(event vm.StepEvent) bool {
	for i, observer := range c.observers {
		if !wantsStep(c.configs[i], event.Steps) {
			continue
		}
		if !observer.OnStep(event) {
			return false
		}
	}
	return true
}

func wantsStep(cfg vm.ObserverConfig, steps int64) bool {
	switch cfg.StepMode {
	case vm.StepNone:
		return false
	case vm.StepSampled:
		return steps%int64(cfg.SampleInterval) == 0
	default:
		return true
	}
}
