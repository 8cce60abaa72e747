package vm

import (
	"io"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/bfvm/compiler"
	"github.com/deepnoodle-ai/bfvm/errors"
	"github.com/stretchr/testify/require"
)

// TestObserver is a test observer that records events.
type TestObserver struct {
	NoOpObserver
	Steps []StepEvent
}

func (o *TestObserver) OnStep(event StepEvent) bool {
	o.Steps = append(o.Steps, event)
	return true
}

func TestObserverOnStep(t *testing.T) {
	code, err := compiler.Compile("+>-")
	if err != nil {
		t.Fatal(err)
	}

	observer := &TestObserver{}
	err = Run(code, WithObserver(observer), WithOutput(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, observer.Steps, 3)
	require.Equal(t, "INCREMENT", observer.Steps[0].OpcodeName)
	require.Equal(t, 0, observer.Steps[0].IP)
	require.Equal(t, byte(0), observer.Steps[0].Cell)

	require.Equal(t, "MOVE_RIGHT", observer.Steps[1].OpcodeName)
	require.Equal(t, byte(1), observer.Steps[1].Cell)

	require.Equal(t, "DECREMENT", observer.Steps[2].OpcodeName)
	require.Equal(t, 1, observer.Steps[2].Cursor)
	require.Equal(t, int64(2), observer.Steps[2].Steps)
}

type haltingObserver struct {
	NoOpObserver
	at int
}

func (o *haltingObserver) OnStep(event StepEvent) bool {
	return event.IP != o.at
}

func TestObserverHalts(t *testing.T) {
	code, err := compiler.Compile("+.+.")
	require.Nil(t, err)
	var out strings.Builder
	err = Run(code, WithObserver(&haltingObserver{at: 2}), WithOutput(&out))
	require.ErrorIs(t, err, errors.ErrHalted)
	var hErr *errors.HaltedError
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, int64(2), hErr.Steps)
	require.Equal(t, 2, hErr.Loc.Offset)
	require.Equal(t, "\x01", out.String())
}

func TestStepLimit(t *testing.T) {
	// An infinite loop is bounded by the step limit.
	code, err := compiler.Compile("+[]")
	require.Nil(t, err)
	machine := New(code, WithObserver(StepLimit(100)), WithOutput(io.Discard))
	err = machine.Run()
	require.ErrorIs(t, err, errors.ErrHalted)
	require.Equal(t, int64(100), machine.Steps())
}

func TestStepLimitNotReached(t *testing.T) {
	code, err := compiler.Compile("+[-]")
	require.Nil(t, err)
	require.Nil(t, Run(code, WithObserver(StepLimit(100)), WithOutput(io.Discard)))
	require.Nil(t, Run(code, WithObserver(StepLimit(0)), WithOutput(io.Discard)))
}

type sampledObserver struct {
	TestObserver
	interval int
}

func (o *sampledObserver) Config() ObserverConfig {
	return ObserverConfig{StepMode: StepSampled, SampleInterval: o.interval}
}

func TestObserverSampled(t *testing.T) {
	code, err := compiler.Compile("++++++++++")
	require.Nil(t, err)
	observer := &sampledObserver{interval: 4}
	require.Nil(t, Run(code, WithObserver(observer), WithOutput(io.Discard)))
	require.Len(t, observer.Steps, 3) // steps 0, 4, 8
	require.Equal(t, int64(4), observer.Steps[1].Steps)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := NormalizeConfig(ObserverConfig{StepMode: StepSampled})
	require.Equal(t, 1, cfg.SampleInterval)
	cfg = NormalizeConfig(ObserverConfig{StepMode: StepAll})
	require.Equal(t, 0, cfg.SampleInterval)
}

type silentObserver struct{ TestObserver }

func (o *silentObserver) Config() ObserverConfig {
	return ObserverConfig{StepMode: StepNone}
}

func TestObserverStepNone(t *testing.T) {
	code, err := compiler.Compile("+++")
	require.Nil(t, err)
	observer := &silentObserver{}
	require.Nil(t, Run(code, WithObserver(observer), WithOutput(io.Discard)))
	require.Empty(t, observer.Steps)
}
