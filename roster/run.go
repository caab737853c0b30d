package roster

import (
	"fmt"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Options describe a new run.
type Options struct {
	ID        uint64 // recruiting post
	RosterID  uint64 // roster display message
	ChannelID uint64
	Host      string
	HostID    uint64
	Icon      string
	Password  *string
	RunTime   time.Time
}

// Run owns the seven parties of one raid and everything around them.
// One lock covers the whole run; admission reads several parties.
type Run struct {
	lock deadlock.Mutex

	id        uint64
	rosterID  uint64
	channelID uint64
	host      string
	hostID    uint64
	icon      string

	password    string
	hasPassword bool
	public      bool
	runTime     time.Time

	parties [NumParties]*Party

	/* Reveal process */
	rearm         chan struct{}
	revealRunning bool
}

// PartySummary is the display text for one party.
type PartySummary struct {
	Name string
	Body string
}

func New(o Options) *Run {
	r := &Run{
		id:        o.ID,
		rosterID:  o.RosterID,
		channelID: o.ChannelID,
		host:      o.Host,
		hostID:    o.HostID,
		icon:      o.Icon,
		runTime:   o.RunTime.UTC(),
		rearm:     make(chan struct{}, 1),
	}
	if o.Password != nil {
		r.password = *o.Password
		r.hasPassword = true
	}
	for i := range r.parties {
		r.parties[i] = newParty(i)
	}
	return r
}

func (r *Run) ID() uint64        { return r.id }
func (r *Run) RosterID() uint64  { return r.rosterID }
func (r *Run) ChannelID() uint64 { return r.channelID }
func (r *Run) Host() string      { return r.host }
func (r *Run) HostID() uint64    { return r.hostID }
func (r *Run) Icon() string      { return r.icon }

func (r *Run) RunTime() time.Time {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.runTime
}

// SetRunTime moves the run and re-arms a waiting reveal.
func (r *Run) SetRunTime(t time.Time) {
	r.lock.Lock()
	r.runTime = t.UTC()
	r.lock.Unlock()

	select {
	case r.rearm <- struct{}{}:
	default:
	}
}

// HappeningNow reports whether the scheduled time has passed.
func (r *Run) HappeningNow() bool {
	return !time.Now().Before(r.RunTime())
}

func validIndex(index int) bool {
	return index >= 0 && index < NumParties
}

func (r *Run) snapshot() *census {
	var c census
	for i, p := range r.parties {
		c[i] = p.slot()
	}
	return &c
}

// CanAdd reports whether role may join party index right now.
func (r *Run) CanAdd(index int, role Role) bool {
	scope, err := r.Evaluate(index, role)
	return err == nil && scope == ScopeNone
}

// Evaluate is CanAdd with the refusing scope.
func (r *Run) Evaluate(index int, role Role) (Scope, error) {
	if !validIndex(index) {
		return ScopeParty, ErrInvalidParty
	}
	if !role.Valid() {
		return ScopeParty, ErrInvalidRole
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.snapshot().evaluate(index, role), nil
}

// Join admits m into party index. A refused admission returns the
// refusing scope and no error.
func (r *Run) Join(index int, m Member) (Scope, error) {
	if !validIndex(index) {
		return ScopeParty, ErrInvalidParty
	}
	if !m.Role.Valid() {
		return ScopeParty, ErrInvalidRole
	}
	/* Zero marks an empty leader slot */
	if m.ID == 0 {
		return ScopeParty, ErrNoMemberID
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.findLocked(m.ID) != nil {
		return ScopeParty, ErrAlreadyInRun
	}
	if scope := r.snapshot().evaluate(index, m.Role); scope != ScopeNone {
		return scope, nil
	}
	r.parties[index].addMember(m)
	return ScopeNone, nil
}

// Leave removes the member from whichever party holds them.
func (r *Run) Leave(id uint64) (Member, int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return Member{}, 0, ErrNotMember
	}
	m, err := p.removeMember(id)
	return m, p.index, err
}

func (r *Run) findLocked(id uint64) *Party {
	for _, p := range r.parties {
		if p.Contains(id) {
			return p
		}
	}
	return nil
}

// FindParty returns the index of the party holding id.
func (r *Run) FindParty(id uint64) (int, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if p := r.findLocked(id); p != nil {
		return p.index, true
	}
	return 0, false
}

func (r *Run) Contains(id uint64) bool {
	_, ok := r.FindParty(id)
	return ok
}

// ClaimLeader gives an empty leader slot to id's party.
func (r *Run) ClaimLeader(id uint64) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return 0, ErrNotMember
	}
	if p.leader != 0 {
		return p.index, ErrLeaderTaken
	}
	p.leader = id
	return p.index, nil
}

// RelinquishLeader empties the slot if id holds it.
func (r *Run) RelinquishLeader(id uint64) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return 0, ErrNotMember
	}
	if p.leader != id {
		return p.index, ErrNotLeader
	}
	p.leader = 0
	return p.index, nil
}

// Party returns a copy of party index.
func (r *Run) Party(index int) (*Party, error) {
	if !validIndex(index) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParty, index)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.parties[index].clone(), nil
}

// Members lists every member across all parties, party by party.
func (r *Run) Members() []Member {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out []Member
	for _, p := range r.parties {
		out = append(out, p.members...)
	}
	return out
}

func (r *Run) Summary() [NumParties]PartySummary {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out [NumParties]PartySummary
	for i, p := range r.parties {
		out[i] = PartySummary{Name: p.Title(), Body: p.String()}
	}
	return out
}

/* Password, host checks are done by the caller */

func (r *Run) SetPassword(pw string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.password = pw
	r.hasPassword = true
}

// ReleasePassword makes the password public. False if it already was.
func (r *Run) ReleasePassword() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.public {
		return false
	}
	r.public = true
	return true
}

func (r *Run) IsPasswordPublic() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.public
}

// PasswordFor returns the password if user may see it: the host
// always, anyone once public, members once the run has started. set is
// false when no password was ever given.
func (r *Run) PasswordFor(user uint64) (pw string, set, allowed bool) {
	started := r.HappeningNow()

	r.lock.Lock()
	defer r.lock.Unlock()
	allowed = user == r.hostID || r.public || (started && r.findLocked(user) != nil)
	if !allowed {
		return "", false, false
	}
	return r.password, r.hasPassword, true
}
