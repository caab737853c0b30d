package disc

import (
	"fmt"

	"RaidKeeper/roster"

	"github.com/bwmarrin/discordgo"
)

const requirementsText = "Groups 1, 2, and 3 must have a single preceptor between them," +
	" likewise for groups 4, 5, 6.\nBetween groups 1 and 2, there must" +
	" be a main tank. Likewise for groups 3 and 4, and for groups 5 and" +
	" 6.\nThere must a be a single spirit dart anywhere. Likewise for" +
	" feint.\nEach group must have at least a main tank OR a blue" +
	" DPS.\nEach group must have a healer."

const leadsText = "Parties start without a lead. **ANYONE IN THE PARTY CAN CLAIM PARTY LEAD**" +
	" while the slot is empty, by clicking the claim button. Only the current lead can" +
	" relinquish it."

/* Discord refuses empty field values */
const blankField = "\u200b"

func snowflake(id uint64) string {
	return fmt.Sprintf("%v", id)
}

// RosterEmbed renders the run as the roster message embed.
func RosterEmbed(run *roster.Run) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "BA Run Roster",
		Description: "Registration can be found below this roster.\nRun time: " +
			HammertimeDetailed(run.RunTime()),
		Color: DiscTeal,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    run.Host(),
			IconURL: run.Icon(),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Requirements", Value: requirementsText},
			{Name: "Party Leads", Value: leadsText},
		},
	}

	for i, s := range run.Summary() {
		value := s.Body
		if value == "" {
			value = blankField
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   s.Name,
			Value:  value,
			Inline: i != roster.SupportParty,
		})
	}
	return embed
}

func button(label, customID string) discordgo.Button {
	return discordgo.Button{Label: label, Style: discordgo.PrimaryButton, CustomID: customID}
}

// RunComponents are attached once to the roster message.
func RunComponents(runID uint64) []discordgo.MessageComponent {
	one := 1
	groups := make([]discordgo.SelectMenuOption, 0, roster.NumParties)
	for i := 0; i < roster.NumParties; i++ {
		label := fmt.Sprintf("Group %v", i+1)
		desc := fmt.Sprintf("Try and join group %v.", i+1)
		if i == roster.SupportParty {
			label = "Support Group"
			desc = "Try and join the support group."
		}
		groups = append(groups, discordgo.SelectMenuOption{Label: label, Description: desc, Value: fmt.Sprintf("%v", i)})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    MakeCustomID(ActSelectGroup, runID),
				Placeholder: "Choose a group.",
				MinValues:   &one,
				MaxValues:   1,
				Options:     groups,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			button("Set Password", MakeCustomID(ActSetPassword, runID)),
			button("Make Password Public", MakeCustomID(ActReleasePass, runID)),
			button("Get Password", MakeCustomID(ActGetPassword, runID)),
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			button("Leave Run", MakeCustomID(ActLeave, runID)),
			button("Claim Group Leader", MakeCustomID(ActClaimLeader, runID)),
			button("Relinquish Group Leader", MakeCustomID(ActRelinquish, runID)),
			button("Ping Run", MakeCustomID(ActPing, runID)),
		}},
	}
}

// RoleSelect is the private role picker for one group.
func RoleSelect(runID uint64, group int) []discordgo.MessageComponent {
	one := 1
	options := make([]discordgo.SelectMenuOption, 0, roster.NumRoles)
	for _, r := range roster.Roles() {
		options = append(options, discordgo.SelectMenuOption{
			Label: r.Emoji() + " " + r.String(),
			Value: r.String(),
		})
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    MakeGroupCustomID(ActSelectRole, runID, group),
				Placeholder: "Select a role.",
				MinValues:   &one,
				MaxValues:   1,
				Options:     options,
			},
		}},
	}
}

const PasswordInputID = "password"

func PasswordModal(runID uint64) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: MakeCustomID(ActPasswordModal, runID),
		Title:    "Set BA Password",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  PasswordInputID,
					Label:     "BA Password",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: 100,
				},
			}},
		},
	}
}

// ModalValue finds a text input's value in a submitted modal.
func ModalValue(data discordgo.ModalSubmitInteractionData, customID string) (string, bool) {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value, true
			}
		}
	}
	return "", false
}

// UpdateRoster re-renders the roster message embed.
func UpdateRoster(s *discordgo.Session, run *roster.Run) error {
	content := ""
	embeds := []*discordgo.MessageEmbed{RosterEmbed(run)}
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      snowflake(run.RosterID()),
		Channel: snowflake(run.ChannelID()),
		Content: &content,
		Embeds:  &embeds,
	})
	return err
}
