package roster

import (
	"fmt"
	"strings"
)

const (
	NumParties      = 7
	MainParties     = 6
	SupportParty    = 6
	MainCapacity    = 8
	SupportCapacity = 5
)

// Party is one of the seven roster slots. Members keep join order.
type Party struct {
	index   int
	members []Member
	leader  uint64 // 0 while unclaimed
	roles   RoleCounts
}

func newParty(index int) *Party {
	return &Party{index: index}
}

func (p *Party) Index() int {
	return p.index
}

func (p *Party) IsSupport() bool {
	return p.index == SupportParty
}

func (p *Party) Capacity() int {
	if p.IsSupport() {
		return SupportCapacity
	}
	return MainCapacity
}

func (p *Party) Len() int {
	return len(p.members)
}

// Members returns a copy of the member list in join order.
func (p *Party) Members() []Member {
	out := make([]Member, len(p.members))
	copy(out, p.members)
	return out
}

func (p *Party) Roles() RoleCounts {
	return p.roles
}

// Leader returns the member holding leadership, if the slot is claimed.
func (p *Party) Leader() (Member, bool) {
	if p.leader == 0 {
		return Member{}, false
	}
	for _, m := range p.members {
		if m.Is(p.leader) {
			return m, true
		}
	}
	return Member{}, false
}

/* No capacity check, admission is decided before this is called */
func (p *Party) addMember(m Member) {
	p.members = append(p.members, m)
	p.roles[m.Role]++
}

func (p *Party) removeMember(id uint64) (Member, error) {
	for i, existing := range p.members {
		if existing.Is(id) {
			p.roles[existing.Role]--
			p.members = append(p.members[:i], p.members[i+1:]...)
			if p.leader == id {
				p.leader = 0
			}
			return existing, nil
		}
	}
	return Member{}, ErrNotMember
}

func (p *Party) Contains(id uint64) bool {
	_, ok := p.IndexOf(id)
	return ok
}

func (p *Party) IndexOf(id uint64) (int, bool) {
	for i, m := range p.members {
		if m.Is(id) {
			return i, true
		}
	}
	return 0, false
}

// Needs lists the roles this party is structurally missing. A missing
// tank reports both tank roles.
func (p *Party) Needs() []Role {
	return p.slot().needs()
}

// UnreservedSpace is the capacity left after members and one reserved
// slot per outstanding need.
func (p *Party) UnreservedSpace() int {
	return p.slot().unreserved()
}

func (p *Party) slot() slot {
	return slot{
		size:    len(p.members),
		roles:   p.roles,
		support: p.IsSupport(),
	}
}

// Lines renders one line per member in join order.
func (p *Party) Lines() []string {
	lines := make([]string, 0, len(p.members))
	for _, m := range p.members {
		lead := ""
		if p.leader != 0 && m.Is(p.leader) {
			lead = " " + LeaderEmoji
		}
		lines = append(lines, fmt.Sprintf("%v%v: **%v**", m.Role.Emoji(), lead, m.Name))
	}
	return lines
}

func (p *Party) String() string {
	return strings.Join(p.Lines(), "\n")
}

// Title is the display heading with the fill fraction.
func (p *Party) Title() string {
	if p.IsSupport() {
		return fmt.Sprintf("Support Group [%v/%v]", len(p.members), SupportCapacity)
	}
	return fmt.Sprintf("Group %v [%v/%v]", p.index+1, len(p.members), MainCapacity)
}

func (p *Party) clone() *Party {
	c := *p
	c.members = p.Members()
	return &c
}
