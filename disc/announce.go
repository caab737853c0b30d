package disc

import (
	"context"
	"fmt"
	"strings"

	"RaidKeeper/cfg"
	"RaidKeeper/cons"
	"RaidKeeper/events"
	"RaidKeeper/metrics"
	"RaidKeeper/roster"

	"github.com/bwmarrin/discordgo"
	"github.com/remeh/sizedwaitgroup"
)

// Announcer posts the password reveal under the recruiting post.
type Announcer struct {
	Session *discordgo.Session
	Events  *events.Publisher
}

func RevealText(run *roster.Run) string {
	link := JumpURL(cfg.Config.Guild, snowflake(run.ChannelID()), snowflake(run.ID()))
	return "Password is open to those signed up for this run " + link + "! Click the button to receive it."
}

func (a *Announcer) Announce(ctx context.Context, run *roster.Run) error {
	err := PingRun(a.Session, run, RevealText(run))
	if err != nil {
		metrics.RevealAnnouncements.WithLabelValues("failed").Inc()
		return err
	}
	metrics.RevealAnnouncements.WithLabelValues("sent").Inc()
	a.Events.Publish(events.NewEvent(events.KindRevealed, run.ID()))
	return nil
}

// Mentions lists members still in the guild. Lookups run in parallel.
func Mentions(s *discordgo.Session, run *roster.Run) []string {
	members := run.Members()
	mentions := make([]string, len(members))

	wg := sizedwaitgroup.New(cons.ThreadCount)
	for i, m := range members {
		wg.Add()
		go func(i int, id uint64) {
			defer wg.Done()
			gm, err := s.GuildMember(cfg.Config.Guild, snowflake(id))
			if err != nil || gm == nil || gm.User == nil {
				return
			}
			mentions[i] = gm.User.Mention()
		}(i, m.ID)
	}
	wg.Wait()

	out := mentions[:0]
	for _, m := range mentions {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// PingRun replies to the recruiting post mentioning every member.
func PingRun(s *discordgo.Session, run *roster.Run, message string) error {
	content := strings.TrimSpace(message + " " + strings.Join(Mentions(s, run), " "))
	if content == "" {
		content = "Ping!"
	}
	channel := snowflake(run.ChannelID())
	_, err := s.ChannelMessageSendComplex(channel, &discordgo.MessageSend{
		Content: content,
		Reference: &discordgo.MessageReference{
			MessageID: snowflake(run.ID()),
			ChannelID: channel,
			GuildID:   cfg.Config.Guild,
		},
	})
	if err != nil {
		return fmt.Errorf("pinging run %v: %w", run.ID(), err)
	}
	return nil
}
