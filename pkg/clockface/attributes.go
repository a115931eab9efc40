package clockface

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/rendering"
)

// ErrUnknownAttribute is returned for attribute names the clock does not know.
var ErrUnknownAttribute = stderrors.New("unknown attribute")

type attribute struct {
	set func(c *Config, value string) error
	get func(c Config) string
}

func colorAttr(field func(c *Config) *rendering.Color) attribute {
	return attribute{
		set: func(c *Config, v string) error {
			col, err := rendering.ParseColor(v)
			if err != nil {
				return err
			}
			*field(c) = col
			return nil
		},
		get: func(c Config) string { return field(&c).String() },
	}
}

func stringAttr(field func(c *Config) *string) attribute {
	return attribute{
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
		get: func(c Config) string { return *field(&c) },
	}
}

func boolAttr(name string, field func(c *Config) *bool) attribute {
	return attribute{
		set: func(c *Config, v string) error {
			b, err := parseBool(name, v)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
		get: func(c Config) string { return strconv.FormatBool(*field(&c)) },
	}
}

func floatAttr(field func(c *Config) *float64) attribute {
	return attribute{
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return &errors.ParseError{DataType: "number", Got: v}
			}
			*field(c) = f
			return nil
		},
		get: func(c Config) string { return strconv.FormatFloat(*field(&c), 'g', -1, 64) },
	}
}

// parseBool follows HTML boolean attribute semantics: presence with an
// empty value or the attribute's own name means true.
func parseBool(name, v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, name) {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &errors.ParseError{DataType: "boolean", Got: v}
	}
	return b, nil
}

var attributes = map[string]attribute{
	"size": {
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return &errors.ParseError{DataType: "number", Got: v}
			}
			if !(f > 0) {
				return fmt.Errorf("size must be greater than 0 (was %v)", f)
			}
			c.Size = f
			return nil
		},
		get: func(c Config) string { return strconv.FormatFloat(c.Size, 'g', -1, 64) },
	},
	"dial-color":            colorAttr(func(c *Config) *rendering.Color { return &c.DialColor }),
	"dial-background-color": colorAttr(func(c *Config) *rendering.Color { return &c.DialBackgroundColor }),
	"second-hand-color":     colorAttr(func(c *Config) *rendering.Color { return &c.SecondHandColor }),
	"minute-hand-color":     colorAttr(func(c *Config) *rendering.Color { return &c.MinuteHandColor }),
	"hour-hand-color":       colorAttr(func(c *Config) *rendering.Color { return &c.HourHandColor }),
	"alarm-hand-color":      colorAttr(func(c *Config) *rendering.Color { return &c.AlarmHandColor }),
	"alarm-hand-tip-color":  colorAttr(func(c *Config) *rendering.Color { return &c.AlarmHandTipColor }),
	"hide-numerals":         boolAttr("hide-numerals", func(c *Config) *bool { return &c.HideNumerals }),
	"numeral-font":          stringAttr(func(c *Config) *string { return &c.NumeralFont }),
	"brand-font":            stringAttr(func(c *Config) *string { return &c.BrandFont }),
	"brand-text":            stringAttr(func(c *Config) *string { return &c.BrandText }),
	"brand-text2":           stringAttr(func(c *Config) *string { return &c.BrandText2 }),
	"numerals": {
		set: func(c *Config, v string) error {
			n, err := ParseNumerals(v)
			if err != nil {
				return err
			}
			c.Numerals = n
			return nil
		},
		get: func(c Config) string { return c.Numerals.String() },
	},
	"ticking-minutes":  boolAttr("ticking-minutes", func(c *Config) *bool { return &c.TickingMinutes }),
	"sweeping-seconds": boolAttr("sweeping-seconds", func(c *Config) *bool { return &c.SweepingSeconds }),
	"alarm-time": {
		set: func(c *Config, v string) error {
			if strings.TrimSpace(v) == "" {
				c.Alarm = nil
				return nil
			}
			a := ParseAlarmTime(v)
			c.Alarm = &a
			return nil
		},
		get: func(c Config) string {
			if c.Alarm == nil {
				return ""
			}
			return c.Alarm.String()
		},
	},
	"alarm-rearm-daily": boolAttr("alarm-rearm-daily", func(c *Config) *bool { return &c.AlarmRearmDaily }),
	"time-offset-operator": {
		set: func(c *Config, v string) error {
			o := TimeOffset{Operator: strings.TrimSpace(v)}
			if err := o.Validate(); err != nil {
				return err
			}
			c.Offset.Operator = o.Operator
			return nil
		},
		get: func(c Config) string { return c.Offset.Operator },
	},
	"time-offset-hours":   floatAttr(func(c *Config) *float64 { return &c.Offset.Hours }),
	"time-offset-minutes": floatAttr(func(c *Config) *float64 { return &c.Offset.Minutes }),
	"second-hand-motion": {
		set: func(c *Config, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := animation.ParseMotion(v); err != nil {
					return err
				}
			}
			c.SecondHandMotion = v
			return nil
		},
		get: func(c Config) string { return c.SecondHandMotion },
	},
	"second-hand-pause": floatAttr(func(c *Config) *float64 { return &c.SecondHandPause }),
}

// AttributeNames returns every supported attribute name in sorted order.
func AttributeNames() []string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetAttribute applies a string attribute value the way the HTML element
// form of the clock does. The config is left unchanged on error.
func (c *Config) SetAttribute(name, value string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	attr, ok := attributes[key]
	if !ok {
		return &errors.ClockError{
			Op:        "clockface.SetAttribute",
			Kind:      errors.KindConfig,
			Attribute: name,
			Err:       ErrUnknownAttribute,
		}
	}
	next := c.Clone()
	if err := attr.set(&next, value); err != nil {
		var ce *errors.ClockError
		if stderrors.As(err, &ce) {
			if ce.Attribute == "" {
				ce.Attribute = key
			}
			return ce
		}
		return &errors.ClockError{
			Op:        "clockface.SetAttribute",
			Kind:      errors.KindParsing,
			Attribute: key,
			Err:       err,
		}
	}
	*c = next
	return nil
}

// RemoveAttribute restores an attribute to its default value.
func (c *Config) RemoveAttribute(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	attr, ok := attributes[key]
	if !ok {
		return &errors.ClockError{
			Op:        "clockface.RemoveAttribute",
			Kind:      errors.KindConfig,
			Attribute: name,
			Err:       ErrUnknownAttribute,
		}
	}
	return attr.set(c, attr.get(DefaultConfig()))
}

// Attribute returns the string form of an attribute.
func (c Config) Attribute(name string) (string, bool) {
	attr, ok := attributes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", false
	}
	return attr.get(c), true
}

// Attributes returns every attribute in string form.
func (c Config) Attributes() map[string]string {
	out := make(map[string]string, len(attributes))
	for name, attr := range attributes {
		out[name] = attr.get(c)
	}
	return out
}
