package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func TestClockErrorString(t *testing.T) {
	err := &ClockError{
		Op:   "animation.PauseAtEnd",
		Kind: KindConfig,
		Err:  stderrors.New("max value must be greater than 0 (was 0)"),
	}
	got := err.Error()
	want := "animation.PauseAtEnd [config]: max value must be greater than 0 (was 0)"
	if got != want {
		t.Errorf("ClockError.Error() = %q, want %q", got, want)
	}
}

func TestClockErrorWithAttribute(t *testing.T) {
	err := &ClockError{
		Op:        "clockface.SetAttribute",
		Kind:      KindParsing,
		Attribute: "dial-color",
		Err:       &ParseError{DataType: "color", Got: "#12"},
	}
	got := err.Error()
	if !strings.Contains(got, "attribute=dial-color") {
		t.Errorf("error string %q should contain attribute name", got)
	}
	var pe *ParseError
	if !stderrors.As(err, &pe) {
		t.Fatal("expected ClockError to unwrap to ParseError")
	}
	if pe.Got != "#12" {
		t.Errorf("ParseError.Got = %q, want %q", pe.Got, "#12")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindParsing, "parsing"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{ErrorKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "engine.frame"
	if got, want := err.Error(), "panic in engine.frame: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestNewNilError(t *testing.T) {
	if got := New("op", KindRender, nil); got != nil {
		t.Errorf("New with nil error = %v, want nil", got)
	}
	if got := New("op", KindRender, stderrors.New("boom")); got == nil || got.Kind != KindRender {
		t.Errorf("New returned %v, want KindRender error", got)
	}
}

func TestReport(t *testing.T) {
	var captured *ClockError
	handler := &testHandler{onError: func(err *ClockError) { captured = err }}
	defer SetHandler(SetHandler(handler))

	Report(&ClockError{Op: "test.op", Kind: KindRender, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}
	defer SetHandler(SetHandler(handler))

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestGuard(t *testing.T) {
	var captured *ClockError
	handler := &testHandler{onError: func(err *ClockError) { captured = err }}
	defer SetHandler(SetHandler(handler))

	if ok := Guard("clockface.brandText", func() {}); !ok {
		t.Error("Guard returned false for a function that did not panic")
	}
	if captured != nil {
		t.Fatalf("unexpected report: %v", captured)
	}

	if ok := Guard("clockface.brandText", func() { panic("no font") }); ok {
		t.Error("Guard returned true for a panicking function")
	}
	if captured == nil {
		t.Fatal("expected panic to be reported")
	}
	if captured.Kind != KindRender {
		t.Errorf("Kind = %v, want %v", captured.Kind, KindRender)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})

	h := &LogHandler{Logger: logger}
	h.HandleError(&ClockError{
		Op:        "clockface.SetAttribute",
		Kind:      KindParsing,
		Attribute: "size",
		Err:       &ParseError{DataType: "number", Got: "big"},
	})
	h.HandlePanic(&PanicError{Op: "engine.frame", Value: "boom"})

	out := buf.String()
	for _, want := range []string{"level=error", "op=clockface.SetAttribute", "attribute=size", "kind=parsing", "panic=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

type testHandler struct {
	onError func(*ClockError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ClockError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
