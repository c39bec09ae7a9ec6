package notify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecorder(t *testing.T) {
	var r Recorder

	if _, ok := r.Last(); ok {
		t.Error("expected no last message on empty recorder")
	}

	r.Notify("Missing Information", "Please enter a location URL.")
	r.Notify("Declaration Submitted", "{}")

	want := []Message{
		{Title: "Missing Information", Body: "Please enter a location URL."},
		{Title: "Declaration Submitted", Body: "{}"},
	}
	if diff := cmp.Diff(want, r.Messages()); diff != "" {
		t.Errorf("Messages() mismatch (-want +got):\n%s", diff)
	}

	last, ok := r.Last()
	if !ok || last.Title != "Declaration Submitted" {
		t.Errorf("unexpected last message: %+v", last)
	}
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	var titles []string
	fn := NotifierFunc(func(title, body string) {
		titles = append(titles, title)
	})

	n := Multi(&a, nil, &b, fn)
	n.Notify("Cache Cleared", "")

	if len(a.Messages()) != 1 || len(b.Messages()) != 1 {
		t.Errorf("expected both recorders to get the message, got %d and %d", len(a.Messages()), len(b.Messages()))
	}
	if diff := cmp.Diff([]string{"Cache Cleared"}, titles); diff != "" {
		t.Errorf("func notifier mismatch (-want +got):\n%s", diff)
	}
}
