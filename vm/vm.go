// Package vm provides a VirtualMachine that executes compiled bfvm code.
package vm

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/deepnoodle-ai/bfvm/bytecode"
	"github.com/deepnoodle-ai/bfvm/errors"
	"github.com/deepnoodle-ai/bfvm/op"
	"github.com/deepnoodle-ai/bfvm/tape"
)

type VirtualMachine struct {
	ip       int   // instruction pointer
	steps    int64 // instructions executed in the current run
	code     *bytecode.Code
	tape     *tape.Tape
	input    io.Reader
	output   io.Writer
	observer Observer
	obsCfg   ObserverConfig
	running  bool
	runMutex sync.Mutex
	inBuf    [1]byte
	outBuf   [1]byte
}

// New creates a new Virtual Machine for the given code. Input defaults to
// os.Stdin and output to os.Stdout.
func New(code *bytecode.Code, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		code:   code,
		tape:   tape.New(),
		input:  os.Stdin,
		output: os.Stdout,
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.observer != nil {
		vm.obsCfg = NormalizeConfig(vm.observer.Config())
	}
	return vm
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run executes the code from instruction 0 on a fresh tape. It returns nil
// when the instruction pointer reaches the end of the code, or the first
// error encountered. Output already written is not rolled back.
func (vm *VirtualMachine) Run() (err error) {
	// Set up some guarantees:
	// 1. It is an error to call Run on a VM that is already running
	// 2. The running flag will always be set to false when Run returns
	// 3. Any panics are translated to errors
	if err := vm.start(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		vm.stop()
	}()
	vm.ip = 0
	vm.steps = 0
	vm.tape = tape.New()
	return vm.eval()
}

func (vm *VirtualMachine) eval() error {
	code := vm.code
	count := code.InstructionCount()
	for vm.ip < count {
		opcode := code.InstructionAt(vm.ip)

		if vm.observer != nil && vm.shouldObserve() {
			event := StepEvent{
				IP:         vm.ip,
				Opcode:     opcode,
				OpcodeName: opcode.String(),
				Cursor:     vm.tape.Cursor(),
				Cell:       vm.tape.Read(),
				Steps:      vm.steps,
			}
			if !vm.observer.OnStep(event) {
				return errors.NewHaltedError(vm.location(), vm.steps)
			}
		}

		next := vm.ip + 1

		switch opcode {
		case op.MoveRight:
			vm.tape.Advance()
		case op.MoveLeft:
			if err := vm.tape.Retreat(); err != nil {
				return errors.NewPointerUnderflowError(vm.location())
			}
		case op.Increment:
			vm.tape.Increment()
		case op.Decrement:
			vm.tape.Decrement()
		case op.Output:
			vm.outBuf[0] = vm.tape.Read()
			if _, err := vm.output.Write(vm.outBuf[:]); err != nil {
				return errors.NewIOError("write", vm.location(), err)
			}
		case op.Input:
			value, err := vm.readByte()
			if err != nil {
				return errors.NewIOError("read", vm.location(), err)
			}
			vm.tape.Write(value)
		case op.LoopOpen:
			if vm.tape.Read() == 0 {
				target, err := vm.jumpTarget(errors.UnclosedOpen)
				if err != nil {
					return err
				}
				next = target
			}
		case op.LoopClose:
			if vm.tape.Read() != 0 {
				target, err := vm.jumpTarget(errors.UnmatchedClose)
				if err != nil {
					return err
				}
				next = target
			}
		default:
			return errors.NewUnexpectedCharacterError(code.ByteAt(vm.ip), vm.location())
		}

		vm.steps++
		vm.ip = next
	}
	return nil
}

// readByte reads exactly one byte from the input. End of input yields 0.
func (vm *VirtualMachine) readByte() (byte, error) {
	if br, ok := vm.input.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err == io.EOF {
			return 0, nil
		}
		return b, err
	}
	_, err := io.ReadFull(vm.input, vm.inBuf[:])
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return vm.inBuf[0], nil
}

// jumpTarget looks up the branch target of the bracket at the instruction
// pointer. Compiled code always has one; hand-built code may not.
func (vm *VirtualMachine) jumpTarget(reason errors.BracketReason) (int, error) {
	target, ok := vm.code.Jumps().Target(vm.ip)
	if !ok {
		return 0, errors.NewUnbalancedBracketsError(vm.location(), reason)
	}
	return target, nil
}

func (vm *VirtualMachine) shouldObserve() bool {
	switch vm.obsCfg.StepMode {
	case StepNone:
		return false
	case StepSampled:
		return vm.steps%int64(vm.obsCfg.SampleInterval) == 0
	default:
		return true
	}
}

func (vm *VirtualMachine) location() errors.SourceLocation {
	return errors.SourceLocation{Offset: vm.ip, Source: vm.code.Source()}
}

// IP returns the instruction pointer.
func (vm *VirtualMachine) IP() int {
	return vm.ip
}

// Steps returns the number of instructions executed by the most recent run.
func (vm *VirtualMachine) Steps() int64 {
	return vm.steps
}

// Tape returns the tape of the most recent run.
func (vm *VirtualMachine) Tape() *tape.Tape {
	return vm.tape
}

// Code returns the code the VM executes.
func (vm *VirtualMachine) Code() *bytecode.Code {
	return vm.code
}
