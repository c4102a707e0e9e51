// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vm

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	stackLimit = 1024
	// max words a LOG or RETURN may pop
	maxDataWords = 16

	// DefaultCycleBudget bounds a run when the config leaves it zero.
	DefaultCycleBudget = 1 << 16
)

// Trap errors. A trap aborts the run; it is never recovered inside the
// machine and must be translated into a typed transaction error by the
// caller.
var (
	ErrStackUnderflow = errors.New("vm: stack underflow")
	ErrStackOverflow  = errors.New("vm: stack overflow")
	ErrBadJumpDest    = errors.New("vm: invalid jump destination")
	ErrOutOfCycles    = errors.New("vm: cycle budget exhausted")
	ErrBadAccountID   = errors.New("vm: word is not an account id")
	ErrTruncatedPush  = errors.New("vm: truncated push data")
)

// InvalidOpCodeError is the trap raised on an undefined instruction.
type InvalidOpCodeError struct {
	Op OpCode
	PC uint64
}

func (e *InvalidOpCodeError) Error() string {
	return errors.Errorf("vm: invalid %v at pc %d", e.Op, e.PC).Error()
}

// Config tunes one machine instance.
type Config struct {
	// CycleBudget bounds the number of executed instructions.
	CycleBudget uint64
}

// Machine is a sandboxed run-to-completion interpreter over a fixed
// instruction set. Account-specific behavior enters only as opaque program
// bytes plus the bound syscall capability set.
//
// A Machine executes exactly one program; it is not reused.
type Machine struct {
	program   []byte
	sys       Syscalls
	budget    uint64
	jumpdests map[uint64]bool

	stack  []uint256.Int
	pc     uint64
	cycles uint64
}

// New creates a machine with the program loaded and the capability set bound.
func New(program []byte, sys Syscalls, cfg Config) *Machine {
	budget := cfg.CycleBudget
	if budget == 0 {
		budget = DefaultCycleBudget
	}
	return &Machine{
		program:   program,
		sys:       sys,
		budget:    budget,
		jumpdests: scanJumpDests(program),
		stack:     make([]uint256.Int, 0, 64),
	}
}

// CyclesUsed returns the number of instructions executed so far.
func (m *Machine) CyclesUsed() uint64 {
	return m.cycles
}

// scanJumpDests collects JUMPDEST positions, skipping push immediates.
func scanJumpDests(program []byte) map[uint64]bool {
	dests := make(map[uint64]bool)
	for pc := 0; pc < len(program); pc++ {
		op := OpCode(program[pc])
		if op == JUMPDEST {
			dests[uint64(pc)] = true
		} else if op.IsPush() {
			pc += op.PushSize()
		}
	}
	return dests
}

// Run executes the loaded program to completion and returns its exit code.
// A zero exit code means success; the meaning of non-zero codes belongs to
// the program. Traps and syscall failures are returned as errors.
func (m *Machine) Run() (exitCode uint8, err error) {
	for {
		if m.budget == 0 {
			return 0, ErrOutOfCycles
		}
		m.budget--
		m.cycles++

		if m.pc >= uint64(len(m.program)) {
			// running off the end is a normal stop
			return 0, nil
		}
		op := OpCode(m.program[m.pc])

		switch {
		case op == STOP:
			return 0, nil

		case op == EXIT:
			code, err := m.pop()
			if err != nil {
				return 0, err
			}
			return uint8(code.Uint64() & 0xff), nil

		case op.IsPush():
			size := uint64(op.PushSize())
			start := m.pc + 1
			if start+size > uint64(len(m.program)) {
				return 0, ErrTruncatedPush
			}
			var w uint256.Int
			w.SetBytes(m.program[start : start+size])
			if err := m.push(&w); err != nil {
				return 0, err
			}
			m.pc += size + 1
			continue

		case op >= DUP1 && op <= DUP4:
			if err := m.dup(int(op-DUP1) + 1); err != nil {
				return 0, err
			}

		case op >= SWAP1 && op <= SWAP4:
			if err := m.swap(int(op-SWAP1) + 1); err != nil {
				return 0, err
			}

		case op == POP:
			if _, err := m.pop(); err != nil {
				return 0, err
			}

		case op == ADD, op == SUB, op == LT, op == GT, op == EQ, op == AND:
			x, err := m.pop()
			if err != nil {
				return 0, err
			}
			y, err := m.pop()
			if err != nil {
				return 0, err
			}
			var r uint256.Int
			switch op {
			case ADD:
				r.Add(&x, &y)
			case SUB:
				r.Sub(&x, &y)
			case LT:
				if x.Lt(&y) {
					r.SetOne()
				}
			case GT:
				if x.Gt(&y) {
					r.SetOne()
				}
			case EQ:
				if x.Eq(&y) {
					r.SetOne()
				}
			case AND:
				r.And(&x, &y)
			}
			if err := m.push(&r); err != nil {
				return 0, err
			}

		case op == ISZERO:
			x, err := m.pop()
			if err != nil {
				return 0, err
			}
			var r uint256.Int
			if x.IsZero() {
				r.SetOne()
			}
			if err := m.push(&r); err != nil {
				return 0, err
			}

		case op == JUMP:
			dest, err := m.pop()
			if err != nil {
				return 0, err
			}
			if !dest.IsUint64() || !m.jumpdests[dest.Uint64()] {
				return 0, ErrBadJumpDest
			}
			m.pc = dest.Uint64()
			continue

		case op == JUMPI:
			dest, err := m.pop()
			if err != nil {
				return 0, err
			}
			cond, err := m.pop()
			if err != nil {
				return 0, err
			}
			if !cond.IsZero() {
				if !dest.IsUint64() || !m.jumpdests[dest.Uint64()] {
					return 0, ErrBadJumpDest
				}
				m.pc = dest.Uint64()
				continue
			}

		case op == JUMPDEST:
			// no-op

		default:
			if done, err := m.syscall(op); err != nil {
				return 0, err
			} else if !done {
				return 0, &InvalidOpCodeError{Op: op, PC: m.pc}
			}
		}
		m.pc++
	}
}

// syscall dispatches the capability opcodes. It reports false for opcodes it
// does not know.
func (m *Machine) syscall(op OpCode) (bool, error) {
	switch op {
	case ARG:
		idx, err := m.pop()
		if err != nil {
			return true, err
		}
		var w uint256.Int
		if idx.IsUint64() {
			b := m.sys.ArgWord(idx.Uint64())
			w.SetBytes(b[:])
		}
		return true, m.push(&w)

	case ARGLEN:
		return true, m.pushUint64(m.sys.ArgsLen())

	case SENDER:
		return true, m.pushUint64(uint64(m.sys.SenderID()))

	case RECEIVER:
		return true, m.pushUint64(uint64(m.sys.ReceiverID()))

	case NUMBER:
		return true, m.pushUint64(m.sys.BlockNumber())

	case TIMESTAMP:
		return true, m.pushUint64(m.sys.BlockTimestamp())

	case PRODUCER:
		return true, m.pushUint64(uint64(m.sys.BlockProducerID()))

	case LOADCELL:
		key, err := m.pop()
		if err != nil {
			return true, err
		}
		v, err := m.sys.LoadCell(key.Bytes32())
		if err != nil {
			return true, err
		}
		var w uint256.Int
		w.SetBytes(v[:])
		return true, m.push(&w)

	case STORECELL:
		key, err := m.pop()
		if err != nil {
			return true, err
		}
		val, err := m.pop()
		if err != nil {
			return true, err
		}
		return true, m.sys.StoreCell(key.Bytes32(), val.Bytes32())

	case SCRIPTHASH, CODEHASH:
		id, err := m.popID()
		if err != nil {
			return true, err
		}
		var (
			h    [32]byte
			serr error
		)
		if op == SCRIPTHASH {
			h, serr = m.sys.AccountScriptHash(id)
		} else {
			h, serr = m.sys.AccountCodeHash(id)
		}
		if serr != nil {
			return true, serr
		}
		var w uint256.Int
		w.SetBytes(h[:])
		return true, m.push(&w)

	case CODESIZE:
		hash, err := m.pop()
		if err != nil {
			return true, err
		}
		size, err := m.sys.CodeSize(hash.Bytes32())
		if err != nil {
			return true, err
		}
		return true, m.pushUint64(size)

	case LOG:
		data, err := m.popData()
		if err != nil {
			return true, err
		}
		return true, m.sys.EmitLog(data)

	case RETURN:
		data, err := m.popData()
		if err != nil {
			return true, err
		}
		return true, m.sys.SetReturnData(data)
	}
	return false, nil
}

// popData pops a word count followed by that many words, concatenated
// big-endian.
func (m *Machine) popData() ([]byte, error) {
	count, err := m.pop()
	if err != nil {
		return nil, err
	}
	if !count.IsUint64() || count.Uint64() > maxDataWords {
		return nil, ErrStackUnderflow
	}
	n := count.Uint64()
	data := make([]byte, 0, n*32)
	for range n {
		w, err := m.pop()
		if err != nil {
			return nil, err
		}
		b := w.Bytes32()
		data = append(data, b[:]...)
	}
	return data, nil
}

func (m *Machine) popID() (uint32, error) {
	w, err := m.pop()
	if err != nil {
		return 0, err
	}
	if !w.IsUint64() || w.Uint64() > math.MaxUint32 {
		return 0, ErrBadAccountID
	}
	return uint32(w.Uint64()), nil
}

func (m *Machine) push(w *uint256.Int) error {
	if len(m.stack) >= stackLimit {
		return ErrStackOverflow
	}
	m.stack = append(m.stack, *w)
	return nil
}

func (m *Machine) pushUint64(v uint64) error {
	var w uint256.Int
	w.SetUint64(v)
	return m.push(&w)
}

func (m *Machine) pop() (uint256.Int, error) {
	if len(m.stack) == 0 {
		return uint256.Int{}, ErrStackUnderflow
	}
	w := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return w, nil
}

func (m *Machine) dup(n int) error {
	if len(m.stack) < n {
		return ErrStackUnderflow
	}
	w := m.stack[len(m.stack)-n]
	return m.push(&w)
}

func (m *Machine) swap(n int) error {
	if len(m.stack) < n+1 {
		return ErrStackUnderflow
	}
	top := len(m.stack) - 1
	m.stack[top], m.stack[top-n] = m.stack[top-n], m.stack[top]
	return nil
}
