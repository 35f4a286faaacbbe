// Package domain contains core concepts of the chat system.
// No runtime, network, or UI logic should be added here.
package domain

import "github.com/samber/lo"

const (
	// DefaultRoom is joined by every connection as soon as it starts.
	DefaultRoom RoomName = "Main"
	// AnonymousName is rendered for members that never set a display name.
	AnonymousName = "anon"
)

// RoomName is the unique key of a room.
type RoomName string

// MemberID identifies one member slot inside one room.
// It is unique within its room only.
type MemberID uint64

// DisplayName resolves an optional display name.
func DisplayName(name *string) string {
	return lo.FromPtrOr(name, AnonymousName)
}
