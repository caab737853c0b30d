package disc

import (
	"strings"
	"testing"
	"time"

	"RaidKeeper/cfg"
	"RaidKeeper/roster"

	"github.com/bwmarrin/discordgo"
)

func TestExtractTimestamps(t *testing.T) {
	content := "Run at <t:1700000000:F> (<t:1700000000:R>), backup <t:1600000000:f>, bad <t:abc:R>"
	got := ExtractTimestamps(content)
	if len(got) != 2 {
		t.Fatalf("got %v timestamps, want 2: %v", len(got), got)
	}
	if !got[0].Equal(time.Unix(1600000000, 0)) || !got[1].Equal(time.Unix(1700000000, 0)) {
		t.Errorf("timestamps = %v", got)
	}

	latest, ok := LatestTimestamp(content)
	if !ok || latest.Unix() != 1700000000 {
		t.Errorf("LatestTimestamp = %v, %v", latest, ok)
	}
	if _, ok := LatestTimestamp("no time here"); ok {
		t.Error("found a timestamp in plain text")
	}
}

func TestHammertime(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	if got := HammertimeDetailed(ts); got != "<t:1700000000:F> (<t:1700000000:R>)" {
		t.Errorf("HammertimeDetailed = %q", got)
	}
	if got := ExtractTimestamps(Hammertime(ts)); len(got) != 1 || !got[0].Equal(ts) {
		t.Errorf("Hammertime output not parseable: %v", got)
	}
}

func TestCustomID(t *testing.T) {
	id := MakeCustomID(ActLeave, 1029102392601497682)
	c, ok := ParseCustomID(id)
	if !ok || c.Action != ActLeave || c.RunID != 1029102392601497682 || c.Group != -1 {
		t.Errorf("ParseCustomID(%q) = %+v, %v", id, c, ok)
	}

	id = MakeGroupCustomID(ActSelectRole, 5, 6)
	c, ok = ParseCustomID(id)
	if !ok || c.Action != ActSelectRole || c.RunID != 5 || c.Group != 6 {
		t.Errorf("ParseCustomID(%q) = %+v, %v", id, c, ok)
	}

	for _, bad := range []string{"", "assign-roles", "ba:leave", "ba:leave:x", "xx:leave:1", "ba:role:1:two", "ba:role:1:2:3"} {
		if _, ok := ParseCustomID(bad); ok {
			t.Errorf("ParseCustomID(%q) accepted", bad)
		}
	}
}

func testRun(t *testing.T) *roster.Run {
	t.Helper()
	r := roster.New(roster.Options{ID: 11, RosterID: 12, ChannelID: 13, Host: "Host", Icon: "icon", RunTime: time.Unix(1700000000, 0)})
	if _, err := r.Join(0, roster.Member{Name: "Tank", Role: roster.MainTank, ID: 1}); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRosterEmbed(t *testing.T) {
	e := RosterEmbed(testRun(t))
	if len(e.Fields) != 2+roster.NumParties {
		t.Fatalf("fields = %v", len(e.Fields))
	}
	if e.Author == nil || e.Author.Name != "Host" {
		t.Errorf("author = %+v", e.Author)
	}
	if !strings.Contains(e.Description, "<t:1700000000:F>") {
		t.Errorf("description missing run time: %q", e.Description)
	}
	g1 := e.Fields[2]
	if g1.Name != "Group 1 [1/8]" || !strings.Contains(g1.Value, "**Tank**") || !g1.Inline {
		t.Errorf("group 1 field = %+v", g1)
	}
	sup := e.Fields[len(e.Fields)-1]
	if sup.Name != "Support Group [0/5]" || sup.Value != blankField || sup.Inline {
		t.Errorf("support field = %+v", sup)
	}
}

func TestComponents(t *testing.T) {
	rows := RunComponents(11)
	if len(rows) != 3 {
		t.Fatalf("rows = %v", len(rows))
	}
	menu := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	if len(menu.Options) != roster.NumParties || menu.Options[6].Label != "Support Group" {
		t.Errorf("group options = %+v", menu.Options)
	}

	roles := RoleSelect(11, 3)[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	if len(roles.Options) != int(roster.NumRoles) {
		t.Errorf("role options = %v", len(roles.Options))
	}
	c, ok := ParseCustomID(roles.CustomID)
	if !ok || c.Group != 3 {
		t.Errorf("role select id = %q", roles.CustomID)
	}
	for _, o := range roles.Options {
		if _, err := roster.ParseRole(o.Value); err != nil {
			t.Errorf("option value %q: %v", o.Value, err)
		}
	}
}

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: MakeCustomID(ActPasswordModal, 1),
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: PasswordInputID, Value: "1234"},
			}},
		},
	}
	if v, ok := ModalValue(data, PasswordInputID); !ok || v != "1234" {
		t.Errorf("ModalValue = %q, %v", v, ok)
	}
	if _, ok := ModalValue(data, "other"); ok {
		t.Error("found a missing input")
	}
}

func TestRevealText(t *testing.T) {
	cfg.Config.Guild = "100"
	got := RevealText(testRun(t))
	if !strings.Contains(got, "https://discord.com/channels/100/13/11") {
		t.Errorf("RevealText = %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	u := &discordgo.User{Username: "user", GlobalName: "Global"}
	if got := DisplayName(&discordgo.Member{User: u, Nick: "Nick"}); got != "Nick" {
		t.Errorf("nick: %q", got)
	}
	if got := DisplayName(&discordgo.Member{User: u}); got != "Global" {
		t.Errorf("global: %q", got)
	}
	if got := DisplayName(&discordgo.Member{User: &discordgo.User{Username: "user"}}); got != "user" {
		t.Errorf("username: %q", got)
	}
	if DisplayName(nil) != "" {
		t.Error("nil member")
	}
}
