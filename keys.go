package throwsim

import (
	"fmt"
	"strings"
)

// ParamID names an adjustable scene parameter. Values index
// Scene.Parameters.
type ParamID uint8

const (
	ParamGravity ParamID = iota
	ParamDensity
	ParamShotPower
	ParamRadius
	ParamMass
	ParamRestitution
	// ParamResistance is derived from the force model and cannot be
	// adjusted.
	ParamResistance
)

// adjustableParams is the number of ParamIDs a key may target.
const adjustableParams = int(ParamResistance)

var paramNames = [...]string{
	ParamGravity:     "gravity",
	ParamDensity:     "density",
	ParamShotPower:   "shot_power",
	ParamRadius:      "radius",
	ParamMass:        "mass",
	ParamRestitution: "restitution",
	ParamResistance:  "resistance",
}

func (p ParamID) String() string {
	if int(p) < len(paramNames) {
		return paramNames[p]
	}
	return fmt.Sprintf("param(%d)", p)
}

// ParseParam returns the adjustable ParamID with the given name.
func ParseParam(name string) (ParamID, bool) {
	for i := 0; i < adjustableParams; i++ {
		if paramNames[i] == name {
			return ParamID(i), true
		}
	}
	return 0, false
}

// Lower bounds per parameter. Mass and radius stay positive so a shot always
// has finite speed and a visible body.
var paramMin = [adjustableParams]float64{
	ParamRadius: 1,
	ParamMass:   0.1,
}

// paramMax caps restitution so bounces never gain energy. Zero means
// unbounded.
var paramMax = [adjustableParams]float64{
	ParamRestitution: 1,
}

// Adjustment is what holding a key does: move Param up (Sign +1) or down
// (Sign -1).
type Adjustment struct {
	Param ParamID
	Sign  float64
}

func (a Adjustment) String() string {
	if a.Sign < 0 {
		return "-" + a.Param.String()
	}
	return "+" + a.Param.String()
}

// ParseAdjustment parses "+name" or "-name".
func ParseAdjustment(s string) (Adjustment, error) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return Adjustment{}, fmt.Errorf("throwsim: adjustment %q: want +param or -param", s)
	}
	id, ok := ParseParam(s[1:])
	if !ok {
		return Adjustment{}, fmt.Errorf("throwsim: adjustment %q: unknown parameter", s)
	}
	sign := 1.0
	if s[0] == '-' {
		sign = -1
	}
	return Adjustment{Param: id, Sign: sign}, nil
}

// KeyTable maps active keys to parameter adjustments.
type KeyTable map[Key]Adjustment

// DefaultKeyTable pairs each parameter with an upper key that raises it and
// the key below it that lowers it.
func DefaultKeyTable() KeyTable {
	return KeyTable{
		KeyQ: {ParamGravity, 1}, KeyA: {ParamGravity, -1},
		KeyW: {ParamDensity, 1}, KeyS: {ParamDensity, -1},
		KeyE: {ParamShotPower, 1}, KeyD: {ParamShotPower, -1},
		KeyR: {ParamRadius, 1}, KeyF: {ParamRadius, -1},
		KeyT: {ParamMass, 1}, KeyG: {ParamMass, -1},
		KeyY: {ParamRestitution, 1}, KeyH: {ParamRestitution, -1},
	}
}

// ParseKeyTable builds a table from key name to adjustment strings, as
// found in configuration. Only parameter keys may be bound.
func ParseKeyTable(bindings map[string]string) (KeyTable, error) {
	t := make(KeyTable, len(bindings))
	for name, adj := range bindings {
		k, ok := ParseKey(strings.ToLower(name))
		if !ok || !activeKeys[k] {
			return nil, fmt.Errorf("throwsim: key %q cannot be bound", name)
		}
		a, err := ParseAdjustment(adj)
		if err != nil {
			return nil, err
		}
		t[k] = a
	}
	return t, nil
}

// StepRates holds how fast each adjustable parameter changes per second
// while its key is held.
type StepRates [adjustableParams]float64

// DefaultStepRates returns the rates of DefaultConfig.
func DefaultStepRates() StepRates {
	return DefaultConfig().StepRates()
}

// Apply steps the parameter bound to key by its rate over dt. It reports
// whether key is bound.
func (t KeyTable) Apply(scene *Scene, key Key, rates StepRates, dt float64) bool {
	adj, ok := t[key]
	if !ok || int(adj.Param) >= adjustableParams {
		return false
	}
	param := scene.Parameters()[adj.Param].Param
	v := param.Value + adj.Sign*rates[adj.Param]*dt
	if lo := paramMin[adj.Param]; v < lo {
		v = lo
	}
	if hi := paramMax[adj.Param]; hi > 0 && v > hi {
		v = hi
	}
	param.Value = v
	return true
}
