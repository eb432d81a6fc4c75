package world

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Effect is one stat contribution.
type Effect struct {
	Stat  Stat `json:"type" yaml:"type"`
	Value int  `json:"val" yaml:"val"`
}

// Option is an item option: either a SimpleOption or a CompositeOption.
// The set of implementations is closed.
type Option interface {
	// Effects lists the stat contributions the option grants.
	Effects() []Effect
	isOption()
}

// SimpleOption grants a single stat.
type SimpleOption struct {
	Stat    Stat
	Value   int
	Special bool // drawn from the special pool (legendary bonus, special stone)
}

// CompositeOption grants several stats under one label and one slot.
type CompositeOption struct {
	Label string
	Parts []Effect
}

func (o SimpleOption) Effects() []Effect { return []Effect{{Stat: o.Stat, Value: o.Value}} }
func (SimpleOption) isOption()           {}

func (o CompositeOption) Effects() []Effect {
	out := make([]Effect, len(o.Parts))
	copy(out, o.Parts)
	return out
}
func (CompositeOption) isOption() {}

// Options is an item's option list.
type Options []Option

// Stats returns every underlying stat type held, composites included.
func (opts Options) Stats() []Stat {
	var out []Stat
	for _, o := range opts {
		for _, e := range o.Effects() {
			out = append(out, e.Stat)
		}
	}
	return out
}

// Has reports whether any option (or composite part) already grants s.
func (opts Options) Has(s Stat) bool {
	for _, held := range opts.Stats() {
		if held == s {
			return true
		}
	}
	return false
}

// Clone deep-copies the list, including composite parts.
func (opts Options) Clone() Options {
	if opts == nil {
		return nil
	}
	out := make(Options, len(opts))
	for i, o := range opts {
		switch v := o.(type) {
		case SimpleOption:
			out[i] = v
		case CompositeOption:
			parts := make([]Effect, len(v.Parts))
			copy(parts, v.Parts)
			out[i] = CompositeOption{Label: v.Label, Parts: parts}
		}
	}
	return out
}

// Describe renders an option for logs and inspection, e.g. "atk +12" or
// "Warrior's Heart [str +3, atk +8]".
func Describe(o Option) string {
	switch v := o.(type) {
	case SimpleOption:
		s := fmt.Sprintf("%s +%d", v.Stat, v.Value)
		if v.Special {
			s = "★" + s
		}
		return s
	case CompositeOption:
		parts := make([]string, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = fmt.Sprintf("%s +%d", p.Stat, p.Value)
		}
		return fmt.Sprintf("%s [%s]", v.Label, strings.Join(parts, ", "))
	}
	return "?"
}

// ---------- JSON ----------

type optionWire struct {
	Kind    string   `json:"kind"`
	Stat    *Stat    `json:"type,omitempty"`
	Value   int      `json:"val,omitempty"`
	Special bool     `json:"isSpecial,omitempty"`
	Label   string   `json:"label,omitempty"`
	Parts   []Effect `json:"compositeVals,omitempty"`
}

func (opts Options) MarshalJSON() ([]byte, error) {
	wire := make([]optionWire, 0, len(opts))
	for _, o := range opts {
		switch v := o.(type) {
		case SimpleOption:
			st := v.Stat
			wire = append(wire, optionWire{Kind: "simple", Stat: &st, Value: v.Value, Special: v.Special})
		case CompositeOption:
			wire = append(wire, optionWire{Kind: "composite", Label: v.Label, Parts: v.Parts})
		default:
			return nil, fmt.Errorf("unknown option %T", o)
		}
	}
	return json.Marshal(wire)
}

func (opts *Options) UnmarshalJSON(b []byte) error {
	var wire []optionWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	out := make(Options, 0, len(wire))
	for _, w := range wire {
		switch w.Kind {
		case "simple":
			if w.Stat == nil {
				return fmt.Errorf("simple option without type")
			}
			out = append(out, SimpleOption{Stat: *w.Stat, Value: w.Value, Special: w.Special})
		case "composite":
			out = append(out, CompositeOption{Label: w.Label, Parts: w.Parts})
		default:
			return fmt.Errorf("unknown option kind %q", w.Kind)
		}
	}
	*opts = out
	return nil
}
