package command

import (
	"fmt"
	"time"

	"RaidKeeper/cfg"
	"RaidKeeper/cwlog"
	"RaidKeeper/db"
	"RaidKeeper/disc"
	"RaidKeeper/events"
	"RaidKeeper/glob"
	"RaidKeeper/roster"

	"github.com/bwmarrin/discordgo"
)

const (
	RegisterRunName = "Register as BA Recruiting Post"
	version         = "0.1.0"
)

var cmds = []Command{
	{
		AppCmd: &discordgo.ApplicationCommand{
			Name: RegisterRunName,
			Type: discordgo.MessageApplicationCommand,
		},
		Command: RegisterRun,
	},
	{
		AppCmd: &discordgo.ApplicationCommand{
			Name:        "botinfo",
			Description: "Show bot version, uptime and registered runs.",
		},
		Command: BotInfo,
		ModOnly: true,
	},
}

// RegisterRun turns the targeted recruiting post into a run with a
// roster message.
func RegisterRun(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Resolved == nil || data.Resolved.Messages[data.TargetID] == nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Couldn't find that message.")
		return
	}
	message := data.Resolved.Messages[data.TargetID]
	author := i.Member.User

	if !cfg.IsRecruitingChannel(message.ChannelID) {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "You cannot recruit for BA in this channel.")
		return
	}
	if message.Author == nil || message.Author.ID != author.ID {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Only the author of a message can designate it a recruiting post.")
		return
	}
	runTime, found := disc.LatestTimestamp(message.Content)
	if !found {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Message must have a timestamp, such as <t:1700000000:F> (`<t:1700000000:F>`), to be registered as a run.")
		return
	}
	if h.Runs.GetString(message.ID) != nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "That message is already registered as a BA run!")
		return
	}

	postID, err1 := db.SnowflakeToInt(message.ID)
	channelID, err2 := db.SnowflakeToInt(message.ChannelID)
	hostID, err3 := db.SnowflakeToInt(author.ID)
	if err1 != nil || err2 != nil || err3 != nil {
		disc.EphemeralResponse(s, i, disc.DiscRed, "ERROR:", "Invalid message data.")
		return
	}

	disc.EphemeralResponse(s, i, disc.DiscPurple, "Status:", "Working...")

	rosterMsg, err := s.ChannelMessageSendComplex(message.ChannelID, &discordgo.MessageSend{
		Content:   "Building Roster Message...",
		Reference: message.Reference(),
	})
	if err != nil {
		cwlog.DoLog("RegisterRun: couldn't send roster message: " + err.Error())
		disc.EditResponse(s, i, disc.DiscRed, "ERROR:", "Couldn't post the roster message.")
		return
	}
	rosterID, err := db.SnowflakeToInt(rosterMsg.ID)
	if err != nil {
		disc.EditResponse(s, i, disc.DiscRed, "ERROR:", "Invalid roster message.")
		return
	}

	run := roster.New(roster.Options{
		ID:        postID,
		RosterID:  rosterID,
		ChannelID: channelID,
		Host:      disc.DisplayName(i.Member),
		HostID:    hostID,
		Icon:      author.AvatarURL(""),
		RunTime:   runTime,
	})
	if !h.Runs.Add(run) {
		disc.EditResponse(s, i, disc.DiscRed, "ERROR:", "That message is already registered as a BA run!")
		return
	}

	content := ""
	embeds := []*discordgo.MessageEmbed{disc.RosterEmbed(run)}
	components := disc.RunComponents(run.ID())
	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         rosterMsg.ID,
		Channel:    rosterMsg.ChannelID,
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		cwlog.DoLog("RegisterRun: couldn't build roster message: " + err.Error())
	}

	h.StartReveal(run)
	h.Events.Publish(events.NewEvent(events.KindRegistered, run.ID()))
	cwlog.DoLog(fmt.Sprintf("Run %v registered by %v for %v.", run.ID(), author.ID, runTime.Format(time.RFC3339)))

	disc.EditResponse(s, i, disc.DiscGreen, "Status:", "Done!")
}

func BotInfo(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	buf := fmt.Sprintf("Version: %v\nUptime: %v\nRegistered runs: %v",
		version, time.Since(glob.Uptime).Round(time.Second), h.Runs.Len())
	disc.EphemeralResponse(s, i, disc.DiscPurple, "RaidKeeper", buf)
}
