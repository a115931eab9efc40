package clockface

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/rendering"
	"gopkg.in/yaml.v3"
)

// DefaultSize is the default pixel diameter of the clock face.
const DefaultSize = 250

// Config describes how a clock face looks and moves.
type Config struct {
	// Size is the pixel diameter of the square surface. Must be > 0.
	Size float64

	DialColor           rendering.Color
	DialBackgroundColor rendering.Color
	SecondHandColor     rendering.Color
	MinuteHandColor     rendering.Color
	HourHandColor       rendering.Color
	AlarmHandColor      rendering.Color
	AlarmHandTipColor   rendering.Color

	HideNumerals bool
	NumeralFont  string
	BrandFont    string
	BrandText    string
	BrandText2   string
	Numerals     Numerals

	// TickingMinutes makes the minute hand jump once per minute.
	TickingMinutes bool
	// SweepingSeconds makes the second hand move continuously instead of
	// jumping once per second.
	SweepingSeconds bool

	// Alarm enables the alarm hand and the alarm event when non-nil.
	Alarm *AlarmTime
	// AlarmRearmDaily re-arms the alarm when the displayed date changes.
	// By default an alarm fires once for the lifetime of the renderer.
	AlarmRearmDaily bool

	Offset TimeOffset

	// SecondHandMotion names an animation function ("sweep", "hard-tick",
	// "soft-tick") applied to the second hand. SecondHandPause adds a
	// PauseAtEnd(60, pause) stage before it.
	SecondHandMotion string
	SecondHandPause  float64
	// SecondMotion overrides SecondHandMotion and SecondHandPause when set.
	SecondMotion animation.Func
}

// DefaultConfig returns the configuration used when no attribute is set.
func DefaultConfig() Config {
	return Config{
		Size:                DefaultSize,
		DialColor:           rendering.MustParseColor("#000000"),
		DialBackgroundColor: rendering.MustParseColor("#FFFFFF"),
		SecondHandColor:     rendering.MustParseColor("#F3A829"),
		MinuteHandColor:     rendering.MustParseColor("#222222"),
		HourHandColor:       rendering.MustParseColor("#222222"),
		AlarmHandColor:      rendering.MustParseColor("#FFFFFF"),
		AlarmHandTipColor:   rendering.MustParseColor("#026729"),
		NumeralFont:         "arial",
		BrandFont:           "arial",
		Numerals:            DefaultNumerals(),
		Offset:              TimeOffset{Operator: "+"},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Numerals = slices.Clone(c.Numerals)
	if c.Alarm != nil {
		a := *c.Alarm
		c.Alarm = &a
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !(c.Size > 0) {
		return configError("size", fmt.Errorf("size must be greater than 0 (was %v)", c.Size))
	}
	if err := c.Offset.Validate(); err != nil {
		return configError("time-offset-operator", err)
	}
	if err := c.Numerals.Validate(); err != nil {
		return configError("numerals", err)
	}
	if _, err := c.secondMotion(); err != nil {
		return configError("second-hand-motion", err)
	}
	return nil
}

// secondMotion resolves the animation function for the second hand. It
// returns nil when the flag-driven behavior applies.
func (c Config) secondMotion() (animation.Func, error) {
	if c.SecondMotion != nil {
		return c.SecondMotion, nil
	}
	if c.SecondHandMotion == "" && c.SecondHandPause <= 0 {
		return nil, nil
	}
	base := animation.Func(animation.Sweep)
	if c.SecondHandMotion != "" {
		f, err := animation.ParseMotion(c.SecondHandMotion)
		if err != nil {
			return nil, err
		}
		base = f
	}
	pause, err := animation.PauseAtEnd(60, c.SecondHandPause)
	if err != nil {
		return nil, err
	}
	return animation.Compose(pause, base), nil
}

func configError(attribute string, err error) error {
	return &errors.ClockError{
		Op:        "clockface.Config.Validate",
		Kind:      errors.KindConfig,
		Attribute: attribute,
		Err:       err,
	}
}

// TimeOffset is a naive hour/minute shift applied to wall-clock time.
type TimeOffset struct {
	// Operator is "-" to subtract; anything else adds.
	Operator string
	Hours    float64
	Minutes  float64
}

// Duration returns the signed shift, truncated to whole minutes.
func (o TimeOffset) Duration() time.Duration {
	minutes := o.Hours*60 + o.Minutes
	// 1e-9 absorbs float error such as 0.7*60 landing just below 42.
	minutes = math.Trunc(minutes + math.Copysign(1e-9, minutes))
	d := time.Duration(minutes) * time.Minute
	if o.Operator == "-" {
		return -d
	}
	return d
}

// Apply shifts t by the offset. Seconds and sub-second fields are never
// changed.
func (o TimeOffset) Apply(t time.Time) time.Time {
	return t.Add(o.Duration())
}

// Validate accepts "+", "-" and the empty operator.
func (o TimeOffset) Validate() error {
	switch o.Operator {
	case "", "+", "-":
		return nil
	default:
		return fmt.Errorf("time offset operator must be + or - (was %q)", o.Operator)
	}
}

// Numeral labels the hour marker at Position (1..12).
type Numeral struct {
	Position int
	Label    string
}

// Numerals is the ordered list of dial labels.
type Numerals []Numeral

// DefaultNumerals labels every hour with its number.
func DefaultNumerals() Numerals {
	n := make(Numerals, 12)
	for i := range n {
		n[i] = Numeral{Position: i + 1, Label: strconv.Itoa(i + 1)}
	}
	return n
}

// Label returns the first label configured for position.
func (n Numerals) Label(position int) (string, bool) {
	for _, numeral := range n {
		if numeral.Position == position {
			return numeral.Label, true
		}
	}
	return "", false
}

// Validate checks that every position is within 1..12.
func (n Numerals) Validate() error {
	for _, numeral := range n {
		if numeral.Position < 1 || numeral.Position > 12 {
			return fmt.Errorf("numeral position must be in 1..12 (was %d)", numeral.Position)
		}
	}
	return nil
}

// String formats the numerals as a YAML flow sequence accepted by
// ParseNumerals.
func (n Numerals) String() string {
	parts := make([]string, len(n))
	for i, numeral := range n {
		parts[i] = fmt.Sprintf("{%d: %s}", numeral.Position, strconv.Quote(numeral.Label))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// UnmarshalYAML accepts a sequence of single-entry mappings
// ([{1: I}, {2: II}]) or a plain mapping ({1: I, 2: II}).
func (n *Numerals) UnmarshalYAML(value *yaml.Node) error {
	var out Numerals
	switch value.Kind {
	case yaml.SequenceNode:
		for _, item := range value.Content {
			if item.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: numeral must be a {position: label} mapping", item.Line)
			}
			entries, err := numeralPairs(item)
			if err != nil {
				return err
			}
			out = append(out, entries...)
		}
	case yaml.MappingNode:
		entries, err := numeralPairs(value)
		if err != nil {
			return err
		}
		out = entries
	default:
		return fmt.Errorf("line %d: numerals must be a list of {position: label} mappings", value.Line)
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*n = out
	return nil
}

func numeralPairs(node *yaml.Node) (Numerals, error) {
	var out Numerals
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		pos, err := strconv.Atoi(strings.TrimSpace(key.Value))
		if err != nil || key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: numeral position %q is not an integer", key.Line, key.Value)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: numeral label for %d must be a string or number", val.Line, pos)
		}
		out = append(out, Numeral{Position: pos, Label: val.Value})
	}
	return out, nil
}

// ParseNumerals parses a YAML or JSON numeral list. An empty string yields
// an empty list, which draws no labels.
func ParseNumerals(s string) (Numerals, error) {
	if strings.TrimSpace(s) == "" {
		return Numerals{}, nil
	}
	var n Numerals
	if err := yaml.Unmarshal([]byte(s), &n); err != nil {
		return nil, &errors.ClockError{
			Op:        "clockface.ParseNumerals",
			Kind:      errors.KindParsing,
			Attribute: "numerals",
			Err:       err,
		}
	}
	if n == nil {
		n = Numerals{}
	}
	return n, nil
}
