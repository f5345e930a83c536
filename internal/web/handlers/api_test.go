package handlers

import (
	"encoding/json"
	"testing"
)

func TestAPIStatusUpdate_NotesPresence(t *testing.T) {
	// A status-only body must decode with nil notes so the update skips
	// the field instead of erasing stored notes.
	var absent apiStatusUpdate
	if err := json.Unmarshal([]byte(`{"status":"contacted"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Notes != nil {
		t.Errorf("absent notes decoded as %q, want nil", *absent.Notes)
	}

	// An explicit empty string is a deliberate clear and must survive.
	var cleared apiStatusUpdate
	if err := json.Unmarshal([]byte(`{"status":"contacted","notes":""}`), &cleared); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cleared.Notes == nil || *cleared.Notes != "" {
		t.Errorf("explicit empty notes = %v, want pointer to empty string", cleared.Notes)
	}

	var set apiStatusUpdate
	if err := json.Unmarshal([]byte(`{"status":"contacted","notes":"left voicemail"}`), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if set.Notes == nil || *set.Notes != "left voicemail" {
		t.Errorf("notes = %v, want left voicemail", set.Notes)
	}
}
