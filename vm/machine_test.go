// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axlechain/axle/axle"
	"github.com/axlechain/axle/vm"
)

// stubSys is an in-memory capability set for machine tests.
type stubSys struct {
	args     []byte
	sender   uint32
	receiver uint32
	number   uint64
	ts       uint64
	producer uint32

	cells map[axle.Bytes32]axle.Bytes32
	logs  [][]byte
	ret   []byte
}

func newStubSys() *stubSys {
	return &stubSys{
		sender:   7,
		receiver: 8,
		number:   100,
		ts:       1000,
		producer: 3,
		cells:    make(map[axle.Bytes32]axle.Bytes32),
	}
}

func (s *stubSys) ArgsLen() uint64 { return uint64(len(s.args)) }
func (s *stubSys) ArgWord(i uint64) (w axle.Bytes32) {
	if start := i * 32; start < uint64(len(s.args)) {
		copy(w[:], s.args[start:])
	}
	return
}
func (s *stubSys) SenderID() uint32         { return s.sender }
func (s *stubSys) ReceiverID() uint32       { return s.receiver }
func (s *stubSys) BlockNumber() uint64      { return s.number }
func (s *stubSys) BlockTimestamp() uint64   { return s.ts }
func (s *stubSys) BlockProducerID() uint32  { return s.producer }
func (s *stubSys) LoadCell(k axle.Bytes32) (axle.Bytes32, error) {
	return s.cells[k], nil
}
func (s *stubSys) StoreCell(k, v axle.Bytes32) error {
	s.cells[k] = v
	return nil
}
func (s *stubSys) AccountScriptHash(id uint32) (axle.Bytes32, error) {
	return axle.Blake2b([]byte{byte(id)}), nil
}
func (s *stubSys) AccountCodeHash(id uint32) (axle.Bytes32, error) {
	return axle.Blake2b([]byte{byte(id), 0xcc}), nil
}
func (s *stubSys) CodeSize(axle.Bytes32) (uint64, error) { return 123, nil }
func (s *stubSys) EmitLog(data []byte) error {
	s.logs = append(s.logs, data)
	return nil
}
func (s *stubSys) SetReturnData(data []byte) error {
	s.ret = data
	return nil
}

func run(t *testing.T, program []byte, sys vm.Syscalls) (uint8, error) {
	t.Helper()
	return vm.New(program, sys, vm.Config{}).Run()
}

func word(v uint32) []byte {
	b := axle.Bytes32FromUint32(v)
	return b[:]
}

func TestArithmeticAndReturn(t *testing.T) {
	sys := newStubSys()
	// 5 - 3, returned as one word
	program := vm.NewAssembler().
		Push(3).Push(5).Op(vm.SUB).
		Push(1).Op(vm.RETURN).
		Op(vm.STOP).
		MustAssemble()

	code, err := run(t, program, sys)
	assert.Nil(t, err)
	assert.Equal(t, uint8(0), code)
	assert.Equal(t, word(2), sys.ret)
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		name    string
		ops     func(a *vm.Assembler)
		expects uint32
	}{
		{"lt true", func(a *vm.Assembler) { a.Push(5).Push(3).Op(vm.LT) }, 1},   // 3 < 5
		{"lt false", func(a *vm.Assembler) { a.Push(3).Push(5).Op(vm.LT) }, 0},  // 5 < 3
		{"gt true", func(a *vm.Assembler) { a.Push(3).Push(5).Op(vm.GT) }, 1},   // 5 > 3
		{"eq true", func(a *vm.Assembler) { a.Push(4).Push(4).Op(vm.EQ) }, 1},
		{"eq false", func(a *vm.Assembler) { a.Push(4).Push(5).Op(vm.EQ) }, 0},
		{"iszero", func(a *vm.Assembler) { a.Push(0).Op(vm.ISZERO) }, 1},
		{"and", func(a *vm.Assembler) { a.Push(0b1100).Push(0b1010).Op(vm.AND) }, 0b1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sys := newStubSys()
			a := vm.NewAssembler()
			tc.ops(a)
			a.Push(1).Op(vm.RETURN)

			_, err := run(t, a.MustAssemble(), sys)
			assert.Nil(t, err)
			assert.Equal(t, word(tc.expects), sys.ret)
		})
	}
}

func TestJumps(t *testing.T) {
	sys := newStubSys()
	// taken branch skips the failure exit
	program := vm.NewAssembler().
		Push(1).JumpI("ok").
		Push(9).Op(vm.EXIT).
		Label("ok").
		Op(vm.STOP).
		MustAssemble()
	code, err := run(t, program, sys)
	assert.Nil(t, err)
	assert.Equal(t, uint8(0), code)

	// untaken branch falls through
	program = vm.NewAssembler().
		Push(0).JumpI("ok").
		Push(9).Op(vm.EXIT).
		Label("ok").
		Op(vm.STOP).
		MustAssemble()
	code, err = run(t, program, sys)
	assert.Nil(t, err)
	assert.Equal(t, uint8(9), code)
}

func TestDupSwap(t *testing.T) {
	sys := newStubSys()
	// DUP2 copies the second word, SWAP1 reorders
	program := vm.NewAssembler().
		Push(1).Push(2).
		Op(vm.DUP2).  // [1 2 1]
		Op(vm.SWAP1). // [1 1 2]
		Push(3).Op(vm.RETURN).
		MustAssemble()
	_, err := run(t, program, sys)
	assert.Nil(t, err)
	assert.Equal(t, append(append(word(2), word(1)...), word(1)...), sys.ret)
}

func TestExitCode(t *testing.T) {
	sys := newStubSys()
	program := vm.NewAssembler().Push(5).Op(vm.EXIT).MustAssemble()
	code, err := run(t, program, sys)
	assert.Nil(t, err)
	assert.Equal(t, uint8(5), code)
}

func TestRunOffEndStops(t *testing.T) {
	sys := newStubSys()
	code, err := run(t, vm.NewAssembler().Push(1).MustAssemble(), sys)
	assert.Nil(t, err)
	assert.Equal(t, uint8(0), code)
}

func TestTraps(t *testing.T) {
	sys := newStubSys()

	_, err := run(t, []byte{byte(vm.ADD)}, sys)
	assert.ErrorIs(t, err, vm.ErrStackUnderflow)

	_, err = run(t, vm.NewAssembler().Push(3).Op(vm.JUMP).MustAssemble(), sys)
	assert.ErrorIs(t, err, vm.ErrBadJumpDest)

	_, err = run(t, []byte{byte(vm.PUSH2), 0x01}, sys)
	assert.ErrorIs(t, err, vm.ErrTruncatedPush)

	_, err = run(t, []byte{0x42}, sys)
	var invalid *vm.InvalidOpCodeError
	assert.ErrorAs(t, err, &invalid)

	// push immediates are not jump destinations
	program := append(vm.NewAssembler().Push(4).Op(vm.JUMP).MustAssemble(), byte(vm.PUSH1), byte(vm.JUMPDEST))
	_, err = run(t, program, sys)
	assert.ErrorIs(t, err, vm.ErrBadJumpDest)
}

func TestOutOfCycles(t *testing.T) {
	sys := newStubSys()
	program := vm.NewAssembler().Label("loop").Jump("loop").MustAssemble()
	_, err := vm.New(program, sys, vm.Config{CycleBudget: 100}).Run()
	assert.ErrorIs(t, err, vm.ErrOutOfCycles)
}

func TestSyscallOpcodes(t *testing.T) {
	sys := newStubSys()
	sys.args = append(word(11), word(22)...)

	// return sender, receiver, number, timestamp, producer, arglen, arg1
	program := vm.NewAssembler().
		Push(1).Op(vm.ARG).
		Op(vm.ARGLEN).
		Op(vm.PRODUCER).
		Op(vm.TIMESTAMP).
		Op(vm.NUMBER).
		Op(vm.RECEIVER).
		Op(vm.SENDER).
		Push(7).Op(vm.RETURN).
		MustAssemble()
	_, err := run(t, program, sys)
	assert.Nil(t, err)

	var want []byte
	for _, v := range []uint32{7, 8, 100, 1000, 3, 64, 22} {
		want = append(want, word(v)...)
	}
	assert.Equal(t, want, sys.ret)
}

func TestStoreLoadCell(t *testing.T) {
	sys := newStubSys()
	// store 9 at field key 1, load it back and return it
	program := vm.NewAssembler().
		Push(9).Push(1).Op(vm.STORECELL).
		Push(1).Op(vm.LOADCELL).
		Push(1).Op(vm.RETURN).
		MustAssemble()
	_, err := run(t, program, sys)
	assert.Nil(t, err)
	assert.Equal(t, word(9), sys.ret)
	assert.Equal(t, axle.Bytes32FromUint32(9), sys.cells[axle.Bytes32FromUint32(1)])
}

func TestEmitLog(t *testing.T) {
	sys := newStubSys()
	program := vm.NewAssembler().
		Push(2).Push(1).
		Push(2).Op(vm.LOG).
		MustAssemble()
	_, err := run(t, program, sys)
	assert.Nil(t, err)
	assert.Len(t, sys.logs, 1)
	assert.Equal(t, append(word(1), word(2)...), sys.logs[0])
}

func TestCyclesUsed(t *testing.T) {
	sys := newStubSys()
	m := vm.New(vm.NewAssembler().Push(1).Push(2).Op(vm.ADD).Op(vm.STOP).MustAssemble(), sys, vm.Config{})
	_, err := m.Run()
	assert.Nil(t, err)
	assert.Equal(t, uint64(4), m.CyclesUsed())
}

func TestAssemblerUndefinedLabel(t *testing.T) {
	_, err := vm.NewAssembler().Jump("nowhere").Assemble()
	assert.Error(t, err)
}
