package roster

import "errors"

var (
	ErrNotMember    = errors.New("not a member")
	ErrAlreadyInRun = errors.New("already in this run")
	ErrInvalidParty = errors.New("invalid party index")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNoMemberID   = errors.New("member has no id")
	ErrLeaderTaken  = errors.New("party already has a leader")
	ErrNotLeader    = errors.New("not the party leader")
	ErrBadRecord    = errors.New("malformed run record")
)

// Member is one signed-up player. Two members are the same player when
// their IDs match; the role is fixed once assigned.
type Member struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	ID   uint64 `json:"id"`
}

func (m Member) Is(id uint64) bool {
	return m.ID == id
}
