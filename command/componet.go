package command

import (
	"errors"
	"fmt"
	"strconv"

	"RaidKeeper/cwlog"
	"RaidKeeper/db"
	"RaidKeeper/disc"
	"RaidKeeper/events"
	"RaidKeeper/metrics"
	"RaidKeeper/roster"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) lookupRun(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) (*roster.Run, disc.CustomID, uint64, bool) {
	c, ok := disc.ParseCustomID(customID)
	if !ok {
		return nil, c, 0, false
	}
	run := h.Runs.Get(c.RunID)
	if run == nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "This run no longer exists.")
		return nil, c, 0, false
	}
	uid, err := db.SnowflakeToInt(i.Member.User.ID)
	if err != nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Invalid user.")
		return nil, c, 0, false
	}
	return run, c, uid, true
}

func (h *Handler) refresh(s *discordgo.Session, run *roster.Run) {
	if err := disc.UpdateRoster(s, run); err != nil {
		cwlog.DoLog(fmt.Sprintf("Run %v: couldn't update roster: %v", run.ID(), err))
	}
}

func (h *Handler) handleComponet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	run, c, uid, ok := h.lookupRun(s, i, data.CustomID)
	if !ok {
		return
	}

	switch c.Action {
	case disc.ActSelectGroup:
		h.selectGroup(s, i, run, data.Values)
	case disc.ActSelectRole:
		h.selectRole(s, i, run, c.Group, uid, data.Values)
	case disc.ActSetPassword:
		if uid != run.HostID() {
			disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Only the host can set the password.")
			return
		}
		disc.ModalResponse(s, i, disc.PasswordModal(run.ID()))
	case disc.ActReleasePass:
		h.releasePassword(s, i, run, uid)
	case disc.ActGetPassword:
		h.getPassword(s, i, run, uid)
	case disc.ActLeave:
		h.leave(s, i, run, uid)
	case disc.ActClaimLeader:
		h.claimLeader(s, i, run, uid)
	case disc.ActRelinquish:
		h.relinquishLeader(s, i, run, uid)
	case disc.ActPing:
		if uid != run.HostID() {
			disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Only the host can ping the whole run!")
			return
		}
		disc.EphemeralResponse(s, i, disc.DiscPurple, "Status:", "Pinging...")
		if err := disc.PingRun(s, run, ""); err != nil {
			cwlog.DoLog(err.Error())
		}
	default:
		cwlog.DoLog("Unknown component action: " + data.CustomID)
	}
}

func (h *Handler) selectGroup(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, values []string) {
	if len(values) != 1 {
		return
	}
	group, err := strconv.Atoi(values[0])
	if err != nil || group < 0 || group >= roster.NumParties {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Invalid group.")
		return
	}
	p, _ := run.Party(group)
	disc.ComponentResponse(s, i, "Choose your role for "+p.Title()+".", disc.RoleSelect(run.ID(), group))
}

func (h *Handler) selectRole(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, group int, uid uint64, values []string) {
	if len(values) != 1 {
		return
	}
	role, err := roster.ParseRole(values[0])
	if err != nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Invalid role.")
		return
	}

	member := roster.Member{Name: disc.DisplayName(i.Member), Role: role, ID: uid}
	scope, err := run.Join(group, member)
	switch {
	case errors.Is(err, roster.ErrAlreadyInRun):
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You are already in this run!")
		return
	case err != nil:
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Invalid group or role.")
		return
	}
	metrics.AdmissionDecisions.WithLabelValues(role.String(), scope.String()).Inc()

	if scope != roster.ScopeNone {
		disc.EphemeralResponse(s, i, disc.DiscRed, "Sorry:", denialText(scope))
		return
	}

	cwlog.DoLog(fmt.Sprintf("Run %v: %v joined group %v as %v.", run.ID(), uid, group+1, role))
	h.Events.Publish(events.NewEvent(events.KindJoined, run.ID()).WithMember(member, group))
	disc.EphemeralResponse(s, i, disc.DiscGreen, "Status:", "Successfully added!")
	h.refresh(s, run)
}

func denialText(scope roster.Scope) string {
	base := "You cannot join the group as that role due to party composition restrictions"
	switch scope {
	case roster.ScopePair:
		return base + ": the paired group still needs a main tank."
	case roster.ScopeTriple:
		return base + ": these three groups still need a preceptor."
	case roster.ScopeRun:
		return base + ": the run still needs its spirit dart or feint."
	}
	return base + "."
}

func (h *Handler) releasePassword(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, uid uint64) {
	if uid != run.HostID() {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Only the host can release the password!")
		return
	}
	if !run.ReleasePassword() {
		disc.EphemeralResponse(s, i, disc.DiscPurple, "Status:", "Password is already public!")
		return
	}
	cwlog.DoLog(fmt.Sprintf("Run %v: password made public.", run.ID()))
	disc.EphemeralResponse(s, i, disc.DiscGreen, "Status:", "Password is now public.")
}

func (h *Handler) getPassword(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, uid uint64) {
	pw, set, allowed := run.PasswordFor(uid)
	if !allowed {
		/* Reveal wait may have ended with the process, re-arm it */
		if !run.HappeningNow() && !run.RevealRunning() {
			h.StartReveal(run)
		}
		disc.EphemeralResponse(s, i, disc.DiscRed, "Sorry:", "The password is not available to you at this time.")
		return
	}
	if !set {
		pw = "No password set."
	}
	disc.EphemeralResponse(s, i, disc.DiscPurple, "Password:", pw)
}

func (h *Handler) leave(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, uid uint64) {
	m, group, err := run.Leave(uid)
	if err != nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You are already not in the run!")
		return
	}
	cwlog.DoLog(fmt.Sprintf("Run %v: %v left group %v.", run.ID(), uid, group+1))
	h.Events.Publish(events.NewEvent(events.KindLeft, run.ID()).WithMember(m, group))
	disc.EphemeralResponse(s, i, disc.DiscGreen, "Status:", "You have been removed from the run.")
	h.refresh(s, run)
}

func (h *Handler) claimLeader(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, uid uint64) {
	group, err := run.ClaimLeader(uid)
	switch {
	case errors.Is(err, roster.ErrNotMember):
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You are not in the run!")
		return
	case errors.Is(err, roster.ErrLeaderTaken):
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Your group already has a leader!")
		return
	case err != nil:
		cwlog.DoLog(err.Error())
		return
	}
	cwlog.DoLog(fmt.Sprintf("Run %v: %v leads group %v.", run.ID(), uid, group+1))
	e := events.NewEvent(events.KindLeader, run.ID())
	e.MemberID, e.Party = uid, &group
	h.Events.Publish(e)
	disc.EphemeralResponse(s, i, disc.DiscGreen, "Status:", "You have been assigned as group leader!")
	h.refresh(s, run)
}

func (h *Handler) relinquishLeader(s *discordgo.Session, i *discordgo.InteractionCreate, run *roster.Run, uid uint64) {
	group, err := run.RelinquishLeader(uid)
	switch {
	case errors.Is(err, roster.ErrNotMember):
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You are not in the run!")
		return
	case errors.Is(err, roster.ErrNotLeader):
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You are not the group leader.")
		return
	case err != nil:
		cwlog.DoLog(err.Error())
		return
	}
	cwlog.DoLog(fmt.Sprintf("Run %v: %v stepped down from group %v.", run.ID(), uid, group+1))
	e := events.NewEvent(events.KindLeader, run.ID())
	e.Party = &group
	h.Events.Publish(e)
	disc.EphemeralResponse(s, i, disc.DiscGreen, "Status:", "You are no longer group leader.")
	h.refresh(s, run)
}

func (h *Handler) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	run, c, uid, ok := h.lookupRun(s, i, data.CustomID)
	if !ok || c.Action != disc.ActPasswordModal {
		return
	}
	if uid != run.HostID() {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Only the host can set the password.")
		return
	}
	pw, found := disc.ModalValue(data, disc.PasswordInputID)
	if !found {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "No password given.")
		return
	}
	run.SetPassword(pw)
	cwlog.DoLog(fmt.Sprintf("Run %v: password set.", run.ID()))
	disc.EphemeralResponse(s, i, disc.DiscGreen, "Status:", "Password set.")
}
