package errors

import (
	"errors"
	"testing"
)

func TestWrapNilError(t *testing.T) {
	w := NewWrapper("prefs", "save_favorite")
	if got := w.Wrap(nil, "should be nil"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
	if got := w.Wrapf(nil, "should be %s", "nil"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

func TestWrapFormatsContext(t *testing.T) {
	w := NewWrapper("store", "fetch_table")
	cause := errors.New("connection refused")

	err := w.Wrap(cause, "table unavailable")
	want := "[store:fetch_table] table unavailable: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match cause via errors.Is")
	}
}

func TestGetUserMessage(t *testing.T) {
	w := NewWrapper("prefs", "add_building")
	err := w.Wrapf(errors.New("db locked"), "could not save %q", "正心楼")

	if got := GetUserMessage(err); got != `could not save "正心楼"` {
		t.Errorf("GetUserMessage() = %q", got)
	}
	if got := GetUserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetUserMessage(plain) = %q", got)
	}
	if got := GetUserMessage(nil); got != "" {
		t.Errorf("GetUserMessage(nil) = %q", got)
	}
}
