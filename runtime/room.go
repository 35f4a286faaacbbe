package runtime

import (
	"roomcast/contract"
	"roomcast/domain"
)

// Room maps each member id to the handle used to reach that member.
type Room struct {
	members map[domain.MemberID]contract.ClientHandle
}

func newRoom() *Room {
	return &Room{members: make(map[domain.MemberID]contract.ClientHandle)}
}

func (r *Room) Has(id domain.MemberID) bool {
	_, ok := r.members[id]
	return ok
}

func (r *Room) Add(id domain.MemberID, handle contract.ClientHandle) {
	r.members[id] = handle
}

func (r *Room) Remove(id domain.MemberID) {
	delete(r.members, id)
}

func (r *Room) Len() int {
	return len(r.members)
}

// detach hands over the whole membership and leaves the room empty.
func (r *Room) detach() map[domain.MemberID]contract.ClientHandle {
	members := r.members
	r.members = make(map[domain.MemberID]contract.ClientHandle, len(members))
	return members
}
