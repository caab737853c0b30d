package disc

import (
	"RaidKeeper/cwlog"

	"github.com/bwmarrin/discordgo"
)

var (
	Session *discordgo.Session
	Ready   *discordgo.Ready
)

const (
	DiscRed    = 0xFF0000
	DiscGreen  = 0x00FF00
	DiscPurple = 0x9B59B6
	DiscTeal   = 0x1ABC9C

	/* 1 << 6 is ephemeral/private */
	ephemeralFlag = 1 << 6
)

func EphemeralResponse(s *discordgo.Session, i *discordgo.InteractionCreate, color int, title, message string) {
	var elist []*discordgo.MessageEmbed
	elist = append(elist, &discordgo.MessageEmbed{Title: title, Description: message, Color: color})

	respData := &discordgo.InteractionResponseData{Embeds: elist, Flags: ephemeralFlag}
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseChannelMessageWithSource, Data: respData}
	err := s.InteractionRespond(i.Interaction, resp)
	if err != nil {
		cwlog.DoLog(err.Error())
	}
}

/* Replace an earlier ephemeral response, used after "Working..." */
func EditResponse(s *discordgo.Session, i *discordgo.InteractionCreate, color int, title, message string) {
	embed := []*discordgo.MessageEmbed{{
		Title:       title,
		Description: message,
		Color:       color,
	}}
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embed})
	if err != nil {
		cwlog.DoLog("Error: " + err.Error())
	}
}

// ComponentResponse answers privately with content and components.
func ComponentResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) {
	respData := &discordgo.InteractionResponseData{Content: content, Components: components, Flags: ephemeralFlag}
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseChannelMessageWithSource, Data: respData}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		cwlog.DoLog(err.Error())
	}
}

func ModalResponse(s *discordgo.Session, i *discordgo.InteractionCreate, modal *discordgo.InteractionResponseData) {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseModal, Data: modal}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		cwlog.DoLog(err.Error())
	}
}

// DisplayName is the guild nickname, else the global name, else the
// username.
func DisplayName(m *discordgo.Member) string {
	if m == nil || m.User == nil {
		return ""
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

func JumpURL(guildID, channelID, messageID string) string {
	return "https://discord.com/channels/" + guildID + "/" + channelID + "/" + messageID
}
