package command

import (
	"fmt"

	"RaidKeeper/cwlog"
	"RaidKeeper/disc"
	"RaidKeeper/events"

	"github.com/bwmarrin/discordgo"
)

// MessageUpdate re-reads the run time when a recruiting post is edited.
func (h *Handler) MessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Message == nil {
		return
	}
	run := h.Runs.GetString(m.ID)
	if run == nil {
		return
	}

	/* Edit events can omit content, fetch the full message */
	msg, err := s.ChannelMessage(m.ChannelID, m.ID)
	if err != nil {
		cwlog.DoLog(fmt.Sprintf("Run %v: couldn't fetch edited post: %v", run.ID(), err))
		return
	}
	runTime, ok := disc.LatestTimestamp(msg.Content)
	if !ok || runTime.Equal(run.RunTime()) {
		return
	}

	run.SetRunTime(runTime)
	h.StartReveal(run)
	h.refresh(s, run)
	cwlog.DoLog(fmt.Sprintf("Run %v: run time moved to %v.", run.ID(), runTime.UTC()))
}

// MessageDelete drops a run whose recruiting post was deleted.
func (h *Handler) MessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.Message == nil {
		return
	}
	run := h.Runs.GetString(m.ID)
	if run == nil {
		return
	}

	h.Runs.Remove(run.ID())
	h.stopReveal(run.ID())
	h.Events.Publish(events.NewEvent(events.KindRemoved, run.ID()))
	cwlog.DoLog(fmt.Sprintf("Run %v: recruiting post deleted, run removed.", run.ID()))
}
