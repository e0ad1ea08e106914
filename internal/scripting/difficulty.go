// Package scripting runs the optional Lua difficulty curve.
package scripting

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/engine"
)

// Difficulty evaluates invader_speed(level, dead) and fire_rate(level) from
// a Lua script. Any failure is logged and answered by the fallback curve.
// Single-goroutine access only (one engine tick loop).
type Difficulty struct {
	vm       *lua.LState
	fallback engine.Difficulty
	log      *zap.Logger
}

var _ engine.Difficulty = (*Difficulty)(nil)

// NewDifficulty loads the script at path.
func NewDifficulty(path string, fallback engine.Difficulty, log *zap.Logger) (*Difficulty, error) {
	d := newDifficulty(fallback, log)
	if err := d.vm.DoFile(path); err != nil {
		d.vm.Close()
		return nil, fmt.Errorf("load difficulty script %s: %w", path, err)
	}
	d.log.Debug("loaded lua script", zap.String("file", path))
	return d, nil
}

// NewDifficultyString loads the script from source text.
func NewDifficultyString(src string, fallback engine.Difficulty, log *zap.Logger) (*Difficulty, error) {
	d := newDifficulty(fallback, log)
	if err := d.vm.DoString(src); err != nil {
		d.vm.Close()
		return nil, fmt.Errorf("load difficulty script: %w", err)
	}
	return d, nil
}

func newDifficulty(fallback engine.Difficulty, log *zap.Logger) *Difficulty {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Difficulty{vm: vm, fallback: fallback, log: log}
}

// InvaderSpeed calls invader_speed(level, dead).
func (d *Difficulty) InvaderSpeed(level, dead int) float64 {
	if v, ok := d.callNumber("invader_speed", level, dead); ok {
		return v
	}
	return d.fallback.InvaderSpeed(level, dead)
}

// FireRate calls fire_rate(level). Results above 1 are clamped.
func (d *Difficulty) FireRate(level int) float64 {
	if v, ok := d.callNumber("fire_rate", level); ok {
		return math.Min(v, 1)
	}
	return d.fallback.FireRate(level)
}

// callNumber calls a global Lua function with int args and returns a
// non-negative finite number.
func (d *Difficulty) callNumber(name string, args ...int) (float64, bool) {
	fn := d.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		d.log.Error("lua function not found", zap.String("name", name))
		return 0, false
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := d.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		d.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := d.vm.Get(-1)
	d.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		d.log.Error("lua function returned a non-number",
			zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	v := float64(n)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		d.log.Error("lua function returned an invalid value",
			zap.String("func", name), zap.Float64("value", v))
		return 0, false
	}
	return v, true
}

// Close shuts down the Lua VM.
func (d *Difficulty) Close() {
	d.vm.Close()
}
