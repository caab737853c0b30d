package command

import (
	"context"
	"fmt"

	"RaidKeeper/cfg"
	"RaidKeeper/cwlog"
	"RaidKeeper/db"
	"RaidKeeper/disc"
	"RaidKeeper/events"
	"RaidKeeper/glob"
	"RaidKeeper/roster"

	"github.com/bwmarrin/discordgo"
	"github.com/sasha-s/go-deadlock"
)

type Command struct {
	Command func(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate)
	AppCmd  *discordgo.ApplicationCommand

	AdminOnly bool
	ModOnly   bool
}

var CL []Command

var adminPerms int64 = discordgo.PermissionAdministrator
var modPerms int64 = discordgo.PermissionManageRoles
var defaultPerms int64 = discordgo.PermissionUseSlashCommands

// Handler carries what the Discord handlers need.
type Handler struct {
	Runs      *db.RunStore
	Events    *events.Publisher
	Announcer roster.Announcer

	ctx         context.Context
	revealLock  deadlock.Mutex
	revealStops map[uint64]context.CancelFunc
}

func NewHandler(ctx context.Context, runs *db.RunStore, pub *events.Publisher, a roster.Announcer) *Handler {
	return &Handler{
		Runs:        runs,
		Events:      pub,
		Announcer:   a,
		ctx:         ctx,
		revealStops: make(map[uint64]context.CancelFunc),
	}
}

// StartReveal arms the password reveal for run unless one is waiting.
func (h *Handler) StartReveal(run *roster.Run) {
	ctx, cancel := context.WithCancel(h.ctx)
	if !run.StartReveal(ctx, h.Announcer) {
		cancel()
		return
	}

	h.revealLock.Lock()
	if old := h.revealStops[run.ID()]; old != nil {
		old()
	}
	h.revealStops[run.ID()] = cancel
	h.revealLock.Unlock()
}

func (h *Handler) stopReveal(runID uint64) {
	h.revealLock.Lock()
	defer h.revealLock.Unlock()
	if stop := h.revealStops[runID]; stop != nil {
		stop()
		delete(h.revealStops, runID)
	}
}

func RegisterCommands(s *discordgo.Session) {
	CL = cmds

	for i, o := range CL {

		if o.AdminOnly {
			o.AppCmd.DefaultMemberPermissions = &adminPerms
		} else if o.ModOnly {
			o.AppCmd.DefaultMemberPermissions = &modPerms
		} else {
			o.AppCmd.DefaultMemberPermissions = &defaultPerms
		}

		cmd, err := s.ApplicationCommandCreate(cfg.Config.App, cfg.Config.Guild, o.AppCmd)
		if err != nil {
			cwlog.DoLog("Failed to create command: " + CL[i].AppCmd.Name + ": " + err.Error())
			continue
		} else {
			cwlog.DoLog("Registered command: " + CL[i].AppCmd.Name)
		}
		CL[i].AppCmd = cmd
	}
}

func ClearCommands() {
	if *glob.DoDeregisterCommands && disc.Session != nil {
		cmds, _ := disc.Session.ApplicationCommands(cfg.Config.App, cfg.Config.Guild)
		for _, v := range cmds {
			cwlog.DoLog(fmt.Sprintf("Deregistered command: %s", v.Name))
			err := disc.Session.ApplicationCommandDelete(cfg.Config.App, cfg.Config.Guild, v.ID)
			if err != nil {
				cwlog.DoLog(err.Error())
			}
		}
	}
}

// Interaction is registered with the session for every interaction.
func (h *Handler) Interaction(s *discordgo.Session, i *discordgo.InteractionCreate) {

	/* Ignore possible malicious or erroneous */
	if i.AppID != cfg.Config.App {
		return
	}

	/* Ignore DMs */
	if i.Member == nil || i.Member.User == nil {
		return
	}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		h.handleComponet(s, i)
	case discordgo.InteractionModalSubmit:
		h.handleModal(s, i)
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	}
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	CmdName := data.Name

	/* Ignore empty command IDs */
	if CmdName == "" {
		return
	}

	for _, c := range cmds {
		if c.AppCmd.Name == CmdName {
			if c.AdminOnly && i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
				disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You do not have the proper permissions to use this command.")
				return
			} else if c.ModOnly && i.Member.Permissions&(discordgo.PermissionManageRoles|discordgo.PermissionAdministrator) == 0 {
				disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You do not have the proper permissions to use this command.")
				return
			}
			c.Command(h, s, i)
			return
		}
	}
}
