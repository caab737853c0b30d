package roster

// Admission works on a snapshot of the seven parties' sizes and role
// counts. Parties never look at their siblings; the scoped rules live
// here.
//
// Scopes, main parties only:
//   - pair: (0,1) (2,3) (4,5) share one Main Tank.
//   - triple: {0,1,2} and {3,4,5} share one Preceptor.
//   - run: one Spirit Dart and one Feint across all six.
//
// The support party is checked against its own space only.

// Scope names the rule that refused an admission.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopeParty
	ScopePair
	ScopeTriple
	ScopeRun
)

func (s Scope) String() string {
	switch s {
	case ScopeNone:
		return "admitted"
	case ScopeParty:
		return "party"
	case ScopePair:
		return "pair"
	case ScopeTriple:
		return "triple"
	case ScopeRun:
		return "run"
	}
	return "unknown"
}

type slot struct {
	size    int
	roles   RoleCounts
	support bool
}

func (s slot) capacity() int {
	if s.support {
		return SupportCapacity
	}
	return MainCapacity
}

func (s slot) needs() []Role {
	if s.support {
		return nil
	}
	var need []Role
	if s.roles[Healer] == 0 {
		need = append(need, Healer)
	}
	if s.roles[BlueDPS]+s.roles[MainTank] == 0 {
		need = append(need, AnyTank...)
	}
	return need
}

func (s slot) needsRole(role Role) bool {
	for _, r := range s.needs() {
		if r == role {
			return true
		}
	}
	return false
}

func (s slot) unreserved() int {
	return s.capacity() - s.size - len(s.needs())
}

type census [NumParties]slot

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func pairOf(index int) int {
	if index%2 == 1 {
		return index - 1
	}
	return index + 1
}

// tripleOf returns the outer pair's first index and the middle party
// of the triple holding index.
func tripleOf(index int) (outer, middle int) {
	if index <= 2 {
		return 0, 2
	}
	return 4, 3
}

func (c *census) validSingle(index int, role Role) bool {
	s := c[index]
	return s.needsRole(role) || s.unreserved() > 0
}

func (c *census) pairTanks(index int) int {
	return c[index].roles[MainTank] + c[pairOf(index)].roles[MainTank]
}

func (c *census) pairUnreservedSpace(index int) int {
	return c[index].unreserved() + c[pairOf(index)].unreserved() - b2i(c.pairTanks(index) == 0)
}

func (c *census) validPair(index int, role Role) bool {
	if c.pairTanks(index) == 0 && role == MainTank {
		return true
	}
	return c.pairUnreservedSpace(index) > 0
}

func (c *census) triplePreceptors(index int) int {
	outer, middle := tripleOf(index)
	return c[outer].roles[Preceptor] + c[outer+1].roles[Preceptor] + c[middle].roles[Preceptor]
}

func (c *census) tripleUnreservedSpace(index int) int {
	outer, middle := tripleOf(index)
	midPreceptors := c[2].roles[Preceptor] + c[3].roles[Preceptor]
	return c.pairUnreservedSpace(outer) + c[middle].unreserved() - b2i(midPreceptors == 0)
}

func (c *census) validTriple(index int, role Role) bool {
	if c.triplePreceptors(index) == 0 && role == Preceptor {
		return true
	}
	return c.tripleUnreservedSpace(index) > 0
}

// total counts a role across the six main parties.
func (c *census) total(role Role) int {
	n := 0
	for i := 0; i < MainParties; i++ {
		n += c[i].roles[role]
	}
	return n
}

func (c *census) fullUnreservedSpace() int {
	return c.tripleUnreservedSpace(0) + c.tripleUnreservedSpace(3) -
		b2i(c.total(SpiritDart) > 0) - b2i(c.total(Feint) > 0)
}

func (c *census) validRun(role Role) bool {
	if role == SpiritDart && c.total(SpiritDart) == 0 {
		return true
	}
	if role == Feint && c.total(Feint) == 0 {
		return true
	}
	return c.fullUnreservedSpace() > 0
}

// evaluate returns ScopeNone when role may join party index, otherwise
// the first scope that refuses it.
func (c *census) evaluate(index int, role Role) Scope {
	if !c.validSingle(index, role) {
		return ScopeParty
	}
	if index == SupportParty {
		return ScopeNone
	}
	if !c.validPair(index, role) {
		return ScopePair
	}
	if !c.validTriple(index, role) {
		return ScopeTriple
	}
	if !c.validRun(role) {
		return ScopeRun
	}
	return ScopeNone
}

func (c *census) canAdd(index int, role Role) bool {
	return c.evaluate(index, role) == ScopeNone
}
