package ui

import (
	"strings"
	"testing"

	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
)

func TestRosterViewListsMembers(t *testing.T) {
	host := &signaling.Member{ID: "host-1234567890", Name: "Alice"}
	viewers := []signaling.Member{
		{ID: "viewer-1", Name: "Bob"},
		{ID: "viewer-2", Name: "Cleo"},
	}

	out := RosterView(host, viewers, "viewer-1")

	for _, want := range []string{"Alice", "Bob", "Cleo", "host", "viewer"} {
		if !strings.Contains(out, want) {
			t.Errorf("roster output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Bob (you)") {
		t.Errorf("roster should mark the recipient:\n%s", out)
	}
	if strings.Contains(out, "host-1234567890") {
		t.Errorf("identifiers should be shortened:\n%s", out)
	}
}

func TestRosterViewWithoutHost(t *testing.T) {
	out := RosterView(nil, []signaling.Member{{ID: "v1", Name: "Bob"}}, "")
	if strings.Contains(out, "host-") {
		t.Errorf("unexpected host row:\n%s", out)
	}
	if !strings.Contains(out, "Bob") {
		t.Errorf("viewer row missing:\n%s", out)
	}
}

func TestRoomInfoView(t *testing.T) {
	out := NewRoomInfo("brave-otter-42", "https://relay.example.com/r/brave-otter-42").View()

	if !strings.Contains(out, "brave-otter-42") {
		t.Errorf("room id missing:\n%s", out)
	}
	if !strings.Contains(out, "uwt join brave-otter-42") {
		t.Errorf("join hint missing:\n%s", out)
	}
}
