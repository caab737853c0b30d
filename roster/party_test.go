package roster

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestEmptyPartyNeeds(t *testing.T) {
	p := newParty(0)
	want := []Role{Healer, MainTank, BlueDPS}
	if got := p.Needs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Needs() = %v, want %v", got, want)
	}
	if got := p.UnreservedSpace(); got != 5 {
		t.Errorf("UnreservedSpace() = %v, want 5", got)
	}
}

func TestPartyNeeds(t *testing.T) {
	tests := []struct {
		name    string
		members []Role
		want    []Role
	}{
		{"healer only", []Role{Healer}, []Role{MainTank, BlueDPS}},
		{"blue covers tank", []Role{BlueDPS}, []Role{Healer}},
		{"main tank covers tank", []Role{MainTank, RedDPS}, []Role{Healer}},
		{"complete", []Role{Healer, MainTank}, nil},
		{"dps do not help", []Role{RedDPS, Feint, SpiritDart, Preceptor}, []Role{Healer, MainTank, BlueDPS}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParty(1)
			for i, r := range tt.members {
				p.addMember(Member{Name: "m", Role: r, ID: uint64(i + 1)})
			}
			if got := p.Needs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Needs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupportPartyHasNoNeeds(t *testing.T) {
	p := newParty(SupportParty)
	if n := p.Needs(); len(n) != 0 {
		t.Errorf("support Needs() = %v", n)
	}
	p.addMember(Member{Name: "a", Role: RedDPS, ID: 1})
	if got := p.UnreservedSpace(); got != SupportCapacity-1 {
		t.Errorf("UnreservedSpace() = %v, want %v", got, SupportCapacity-1)
	}
}

func TestPartySpaceIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 500; trial++ {
		index := rng.Intn(NumParties)
		p := newParty(index)
		n := rng.Intn(p.Capacity() + 1)
		for i := 0; i < n; i++ {
			p.addMember(Member{Name: "m", Role: Role(rng.Intn(int(NumRoles))), ID: uint64(i + 1)})
		}

		var counted RoleCounts
		for _, m := range p.Members() {
			counted[m.Role]++
		}
		if counted != p.Roles() {
			t.Fatalf("role counts %v out of sync with members %v", p.Roles(), counted)
		}
		if len(p.Needs()) > 3 {
			t.Fatalf("Needs() = %v, more than 3", p.Needs())
		}
		if got := p.UnreservedSpace() + p.Len() + len(p.Needs()); got != p.Capacity() {
			t.Fatalf("party %v: space+len+needs = %v, want %v", index, got, p.Capacity())
		}
	}
}

func TestRemoveMember(t *testing.T) {
	p := newParty(0)
	p.addMember(Member{Name: "a", Role: Healer, ID: 1})
	p.addMember(Member{Name: "b", Role: MainTank, ID: 2})
	p.addMember(Member{Name: "c", Role: Healer, ID: 3})
	p.leader = 2

	m, err := p.removeMember(2)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "b" {
		t.Errorf("removed %v, want b", m.Name)
	}
	if _, ok := p.Leader(); ok {
		t.Error("leader not cleared after leader left")
	}
	if p.Roles()[MainTank] != 0 || p.Roles()[Healer] != 2 {
		t.Errorf("role counts = %v", p.Roles())
	}
	if i, ok := p.IndexOf(3); !ok || i != 1 {
		t.Errorf("IndexOf(3) = %v, %v", i, ok)
	}

	if _, err := p.removeMember(99); !errors.Is(err, ErrNotMember) {
		t.Errorf("removing absent member: err = %v, want ErrNotMember", err)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %v after failed remove", p.Len())
	}
}

func TestPartyLines(t *testing.T) {
	p := newParty(0)
	p.addMember(Member{Name: "Alpha Tank", Role: MainTank, ID: 1})
	p.addMember(Member{Name: "Beta Heal", Role: Healer, ID: 2})
	p.leader = 2

	want := []string{
		MainTank.Emoji() + ": **Alpha Tank**",
		Healer.Emoji() + " " + LeaderEmoji + ": **Beta Heal**",
	}
	if got := p.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if got := p.Title(); got != "Group 1 [2/8]" {
		t.Errorf("Title() = %q", got)
	}
	if got := newParty(SupportParty).Title(); got != "Support Group [0/5]" {
		t.Errorf("support Title() = %q", got)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(r.String())
		if err != nil || got != r {
			t.Errorf("ParseRole(%q) = %v, %v", r.String(), got, err)
		}
	}
	if got, err := ParseRole(" spirit dart "); err != nil || got != SpiritDart {
		t.Errorf("ParseRole lowercase = %v, %v", got, err)
	}
	if _, err := ParseRole("Bard"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("ParseRole(Bard) err = %v", err)
	}
}
