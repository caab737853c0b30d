package events

import (
	"encoding/json"
	"testing"
	"time"

	"RaidKeeper/roster"
)

type runMap map[uint64]*roster.Run

func (m runMap) Get(id uint64) *roster.Run { return m[id] }

func TestStateReply(t *testing.T) {
	pw := "secret"
	r := roster.New(roster.Options{ID: 5, HostID: 1, Password: &pw, RunTime: time.Now()})
	runs := runMap{5: r}

	reply := stateReply(runs, []byte(`{"run_id":5}`))
	if reply.Error != "" || reply.Run == nil {
		t.Fatalf("reply = %+v", reply)
	}
	if reply.Run.Password != nil {
		t.Error("password leaked in state reply")
	}
	if len(reply.Run.Groups) != roster.NumParties {
		t.Errorf("groups = %v", len(reply.Run.Groups))
	}

	if got := stateReply(runs, []byte(`{"run_id":6}`)); got.Error != "UNKNOWN_RUN" {
		t.Errorf("unknown run reply = %+v", got)
	}
	if got := stateReply(runs, []byte(`nope`)); got.Error != "INVALID_REQUEST" {
		t.Errorf("bad request reply = %+v", got)
	}
}

func TestEventJSON(t *testing.T) {
	e := NewEvent(KindJoined, 9).WithMember(roster.Member{Name: "a", Role: roster.Feint, ID: 3}, 4)
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	var back Event
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ID != e.ID || back.Kind != KindJoined || back.Role != "Feint" || back.Party == nil || *back.Party != 4 {
		t.Errorf("decoded event = %+v", back)
	}
}

func TestDisabledPublisher(t *testing.T) {
	p, err := Connect("", "x.")
	if err != nil {
		t.Fatal(err)
	}
	if p.Enabled() {
		t.Error("publisher without url enabled")
	}
	p.Publish(NewEvent(KindLeft, 1))
	if err := p.ServeState(runMap{}); err != nil {
		t.Error(err)
	}
	p.Close()

	var nilPub *Publisher
	nilPub.Publish(NewEvent(KindLeft, 1))
}
