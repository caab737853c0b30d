package roster

import (
	"fmt"
	"time"
)

// GroupRecord is the stored form of a party. Leader is an index into
// Members.
type GroupRecord struct {
	Leader  *int     `json:"leader"`
	Members []Member `json:"members"`
	Index   int      `json:"index"`
}

// Record is the stored form of a run.
type Record struct {
	ID              uint64        `json:"id"`
	RosterDisplayID uint64        `json:"roster_display_id"`
	ChannelID       uint64        `json:"channel_id,omitempty"`
	Groups          []GroupRecord `json:"groups"`
	Host            string        `json:"host"`
	HostID          uint64        `json:"host_id"`
	Icon            string        `json:"icon"`
	Password        *string       `json:"password"`
	RunTime         string        `json:"run_time"`
}

func (r *Run) ToRecord() Record {
	r.lock.Lock()
	defer r.lock.Unlock()

	rec := Record{
		ID:              r.id,
		RosterDisplayID: r.rosterID,
		ChannelID:       r.channelID,
		Host:            r.host,
		HostID:          r.hostID,
		Icon:            r.icon,
		RunTime:         r.runTime.Format(time.RFC3339Nano),
		Groups:          make([]GroupRecord, 0, NumParties),
	}
	if r.hasPassword {
		pw := r.password
		rec.Password = &pw
	}
	for _, p := range r.parties {
		g := GroupRecord{Index: p.index, Members: p.Members()}
		if p.leader != 0 {
			if i, ok := p.IndexOf(p.leader); ok {
				g.Leader = &i
			}
		}
		rec.Groups = append(rec.Groups, g)
	}
	return rec
}

func badRecord(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %v", ErrBadRecord, fmt.Sprintf(format, args...))
}

// FromRecord rebuilds a run. Anything inconsistent is rejected rather
// than repaired.
func FromRecord(rec Record) (*Run, error) {
	runTime, err := time.Parse(time.RFC3339Nano, rec.RunTime)
	if err != nil {
		return nil, badRecord("run %v: run_time %q: %v", rec.ID, rec.RunTime, err)
	}

	r := New(Options{
		ID:        rec.ID,
		RosterID:  rec.RosterDisplayID,
		ChannelID: rec.ChannelID,
		Host:      rec.Host,
		HostID:    rec.HostID,
		Icon:      rec.Icon,
		Password:  rec.Password,
		RunTime:   runTime,
	})

	if rec.Groups == nil {
		return r, nil
	}
	if len(rec.Groups) != NumParties {
		return nil, badRecord("run %v: %v groups, want %v", rec.ID, len(rec.Groups), NumParties)
	}

	seen := make(map[uint64]int)
	for pos, g := range rec.Groups {
		if g.Index != pos {
			return nil, badRecord("run %v: group at %v has index %v", rec.ID, pos, g.Index)
		}
		p := r.parties[pos]
		for _, m := range g.Members {
			if m.ID == 0 {
				return nil, badRecord("run %v: group %v: member %q has no id", rec.ID, pos, m.Name)
			}
			if !m.Role.Valid() {
				return nil, badRecord("run %v: group %v: member %v: %v", rec.ID, pos, m.ID, ErrInvalidRole)
			}
			if other, dup := seen[m.ID]; dup {
				return nil, badRecord("run %v: member %v in groups %v and %v", rec.ID, m.ID, other, pos)
			}
			seen[m.ID] = pos
			p.addMember(m)
		}
		if g.Leader != nil {
			if *g.Leader < 0 || *g.Leader >= len(g.Members) {
				return nil, badRecord("run %v: group %v: leader %v out of range", rec.ID, pos, *g.Leader)
			}
			p.leader = g.Members[*g.Leader].ID
		}
	}
	return r, nil
}
