package events

import (
	"encoding/json"
	"fmt"
	"time"

	"RaidKeeper/cwlog"
	"RaidKeeper/roster"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Kinds of roster event.
const (
	KindRegistered = "registered"
	KindJoined     = "joined"
	KindLeft       = "left"
	KindLeader     = "leader"
	KindRevealed   = "revealed"
	KindRemoved    = "removed"
)

const stateSubject = "roster.state.request"

type Event struct {
	ID       uuid.UUID `json:"id"`
	Kind     string    `json:"kind"`
	RunID    uint64    `json:"run_id"`
	MemberID uint64    `json:"member_id,omitempty"`
	Party    *int      `json:"party,omitempty"`
	Role     string    `json:"role,omitempty"`
	At       time.Time `json:"at"`
}

type StateRequest struct {
	RunID uint64 `json:"run_id"`
}

type StateReply struct {
	Run   *roster.Record `json:"run,omitempty"`
	Error string         `json:"error,omitempty"`
}

// RunLookup finds a run by recruiting post ID.
type RunLookup interface {
	Get(id uint64) *roster.Run
}

// Publisher sends roster events over NATS. A nil Publisher, or one
// without a connection, drops everything.
type Publisher struct {
	nc     *nats.Conn
	prefix string
}

// Connect dials url. Empty url gives a disabled publisher.
func Connect(url, prefix string) (*Publisher, error) {
	if url == "" {
		return &Publisher{prefix: prefix}, nil
	}
	nc, err := nats.Connect(url, nats.Name("RaidKeeper"))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	cwlog.DoLog("Connected to NATS!")
	return &Publisher{nc: nc, prefix: prefix}, nil
}

func NewPublisher(nc *nats.Conn, prefix string) *Publisher {
	return &Publisher{nc: nc, prefix: prefix}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.nc != nil
}

func (p *Publisher) subject(s string) string {
	return p.prefix + s
}

func NewEvent(kind string, runID uint64) Event {
	return Event{ID: uuid.New(), Kind: kind, RunID: runID, At: time.Now().UTC()}
}

// WithMember fills in who did what and where.
func (e Event) WithMember(m roster.Member, party int) Event {
	e.MemberID = m.ID
	e.Role = m.Role.String()
	e.Party = &party
	return e
}

func (p *Publisher) Publish(e Event) {
	if !p.Enabled() {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		cwlog.DoLog(fmt.Sprintf("Error marshalling %v event for run %v: %v", e.Kind, e.RunID, err))
		return
	}
	if err := p.nc.Publish(p.subject("roster."+e.Kind), data); err != nil {
		cwlog.DoLog(fmt.Sprintf("Error publishing %v event for run %v: %v", e.Kind, e.RunID, err))
	}
}

// ServeState answers state requests with the run record, password
// blanked.
func (p *Publisher) ServeState(runs RunLookup) error {
	if !p.Enabled() {
		return nil
	}
	_, err := p.nc.Subscribe(p.subject(stateSubject), func(msg *nats.Msg) {
		data, _ := json.Marshal(stateReply(runs, msg.Data))
		if err := msg.Respond(data); err != nil {
			cwlog.DoLog(fmt.Sprintf("Error sending state reply: %v", err))
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to %v: %w", p.subject(stateSubject), err)
	}
	cwlog.DoLog(fmt.Sprintf("Listening for roster state on subject '%v'", p.subject(stateSubject)))
	return nil
}

func stateReply(runs RunLookup, data []byte) StateReply {
	var req StateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return StateReply{Error: "INVALID_REQUEST"}
	}
	r := runs.Get(req.RunID)
	if r == nil {
		return StateReply{Error: "UNKNOWN_RUN"}
	}
	rec := r.ToRecord()
	rec.Password = nil
	return StateReply{Run: &rec}
}

func (p *Publisher) Close() {
	if p.Enabled() {
		p.nc.Drain()
	}
}
