package ui

import (
	"fmt"
	"sort"

	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RosterView renders the current room membership as a table.
func RosterView(host *signaling.Member, viewers []signaling.Member, selfID string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Color.Header = text.Colors{text.FgHiMagenta, text.Bold}
	t.AppendHeader(table.Row{"Role", "Name", "ID"})

	if host != nil {
		t.AppendRow(table.Row{"host", memberName(*host, selfID), shortID(host.ID)})
	}

	sorted := make([]signaling.Member, len(viewers))
	copy(sorted, viewers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, v := range sorted {
		t.AppendRow(table.Row{"viewer", memberName(v, selfID), shortID(v.ID)})
	}

	return t.Render()
}

// RenderRoster prints the roster table to stdout.
func RenderRoster(host *signaling.Member, viewers []signaling.Member, selfID string) {
	fmt.Println(RosterView(host, viewers, selfID))
}

func memberName(m signaling.Member, selfID string) string {
	name := truncateDisplay(m.Name, 30)
	if m.ID == selfID {
		return name + " (you)"
	}
	return name
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RoomInfo is the shareable room summary shown to a freshly joined
// host.
type RoomInfo struct {
	RoomID   string
	RoomLink string
}

func NewRoomInfo(roomID, roomLink string) *RoomInfo {
	return &RoomInfo{RoomID: roomID, RoomLink: roomLink}
}

func (r *RoomInfo) View() string {
	content := fmt.Sprintf("%s Room Ready!\n\n%s Room ID:  %s\n%s Link:     %s\n%s Share:    %s",
		IconSuccess,
		IconCopy, BoldStyle.Foreground(Primary).Render(r.RoomID),
		IconLink, MutedStyle.Render(r.RoomLink),
		IconViewer, MutedStyle.Render("uwt join "+r.RoomID),
	)
	return SuccessBoxStyle.Render(content)
}

// RenderRoomInfo prints the room summary box to stdout.
func RenderRoomInfo(roomID, roomLink string) {
	fmt.Println(NewRoomInfo(roomID, roomLink).View())
}
