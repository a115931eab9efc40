// Package clockface draws an analog clock onto a rendering.Surface.
//
// A [Renderer] owns a [Config] and, once attached to a surface, draws one
// frame per call to [Renderer.Frame]: the dial with its 60 tick marks and
// numerals, an optional two-tone alarm hand, then the hour, minute and
// second hands. Angles are in degrees, clockwise from 12 o'clock.
//
//	r, err := clockface.New(clockface.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	r.AddAlarmListener(func(e clockface.AlarmEvent) { ... })
//	if err := r.Attach(rendering.NewImageSurface(rendering.Size{}, nil)); err != nil {
//	    return err
//	}
//
// Configuration can also be applied through HTML-style string attributes
// ([Config.SetAttribute]), which is how the CLI and clockface.yaml files
// set it.
//
// The alarm fires once for the lifetime of a renderer unless
// [Config.AlarmRearmDaily] is set or [Renderer.ResetAlarm] is called.
package clockface
