package discord

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/valyala/bytebufferpool"

	"github.com/DFR0S7/CMR-Bot/internal/domain/clock"
	"github.com/DFR0S7/CMR-Bot/internal/domain/news"
	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/domain/standings"
	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

const (
	colorNeutral = 0x2b2d31
	colorWin     = 0x00ff00
	colorLoss    = 0xff0000
	colorGold    = 0xffd700
)

// keycapDigit renders 1..9 as the Discord keycap emoji (digit + variation
// selector + combining keycap).
func keycapDigit(n int) string {
	return strconv.Itoa(n) + "️⃣"
}

// formatOfferDM builds the numbered offer list sent by DM, grouped by
// conference in offer order.
func formatOfferDM(offers []team.Team) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Your CMR Dynasty job offers:\n\n")

	lastConf := ""
	n := 0
	for _, t := range offers {
		conf := t.ConferenceLabel()
		if conf != lastConf {
			if lastConf != "" {
				_, _ = buf.WriteString("\n")
			}
			_, _ = buf.WriteString("**" + conf + "**\n")
			lastConf = conf
		}
		n++
		_, _ = buf.WriteString(keycapDigit(n) + " " + t.Name + "\n")
	}

	_, _ = buf.WriteString("\nReply with the number of the team you want to accept.")
	return buf.String()
}

// formatTeamBoard builds the team list embed: open teams at the offer tier
// plus every taken team, grouped by conference and name-sorted within each.
func formatTeamBoard(teams []team.Team, openTierStars float64) *discordgo.MessageEmbed {
	byConf := make(map[string][]team.Team)
	confs := make([]string, 0)
	for _, t := range teams {
		conf := t.ConferenceLabel()
		if _, ok := byConf[conf]; !ok {
			confs = append(confs, conf)
		}
		byConf[conf] = append(byConf[conf], t)
	}
	sort.Strings(confs)

	stars := formatStars(openTierStars)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, conf := range confs {
		group := byConf[conf]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })

		_, _ = buf.WriteString("__**" + conf + "**__\n")
		for _, t := range group {
			if t.Taken() {
				_, _ = buf.WriteString(fmt.Sprintf("🏈 **%s** — <@%s> (%s)\n", t.Name, t.TakenBy, t.TakenByName))
			} else {
				_, _ = buf.WriteString(fmt.Sprintf("🟢 **%s** — Available (%s★)\n", t.Name, stars))
			}
		}
		_, _ = buf.WriteString("\n")
	}

	description := buf.String()
	if description == "" {
		description = "No teams to show."
	}

	return &discordgo.MessageEmbed{
		Title:       stars + "★ Teams + All Taken Teams",
		Description: description,
		Color:       colorNeutral,
	}
}

// formatStars drops the trailing zero for whole-star tiers so 3.0 renders as
// "3" but 2.5 stays "2.5".
func formatStars(stars float64) string {
	return strconv.FormatFloat(stars, 'f', -1, 64)
}

// formatBoxScore builds the result embed posted to the news feed.
func formatBoxScore(gr result.GameResult, opponentHuman bool, userRec, oppRec [2]int) *discordgo.MessageEmbed {
	color := colorLoss
	if gr.Outcome == result.OutcomeWin {
		color = colorWin
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("```\n")
	_, _ = buf.WriteString(fmt.Sprintf("%-20s %d\n", gr.UserTeamName, gr.UserScore))
	_, _ = buf.WriteString(fmt.Sprintf("%-20s %d\n", gr.OpponentTeamName, gr.OpponentScore))
	_, _ = buf.WriteString("```\n")

	_, _ = buf.WriteString(fmt.Sprintf("Record: %s %d-%d", gr.UserTeamName, userRec[0], userRec[1]))
	if opponentHuman {
		_, _ = buf.WriteString(fmt.Sprintf(", %s %d-%d", gr.OpponentTeamName, oppRec[0], oppRec[1]))
	}
	_, _ = buf.WriteString("\n")

	summary := gr.Summary
	if summary == "" {
		summary = "No summary provided"
	}
	_, _ = buf.WriteString("Summary: " + summary)

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Game Result: %s vs %s", gr.UserTeamName, gr.OpponentTeamName),
		Description: buf.String(),
		Color:       color,
	}
}

// formatRankingRows renders ranking rows as the fixed-width code block shared
// by the season and all-time embeds.
func formatRankingRows(rows []standings.Row) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("```\n")
	for i, r := range rows {
		name := r.TakenByName
		if name == "" {
			name = r.TeamName
		}
		_, _ = buf.WriteString(fmt.Sprintf("%2d. %s\n", i+1, name))
		_, _ = buf.WriteString("    " + r.TeamName + "\n")
		_, _ = buf.WriteString(fmt.Sprintf("    %d-%d (%d-%d)\n\n", r.Wins, r.Losses, r.UserWins, r.UserLosses))
	}
	_, _ = buf.WriteString("*Record in parentheses is vs user teams only*\n")
	_, _ = buf.WriteString("```")

	return buf.String()
}

func formatSeasonRanking(lc clock.LeagueClock, rows []standings.Row) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 CMR Dynasty Rankings – Season %d", lc.Season),
		Description: formatRankingRows(rows),
		Color:       colorGold,
	}
}

func formatAllTimeRanking(rows []standings.Row) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "👑 CMR Dynasty All-Time Rankings",
		Description: formatRankingRows(rows),
		Color:       colorGold,
	}
}

// formatWeekSummary builds the recap embed posted when a week is advanced:
// press releases first, then every result logged during the completed week.
func formatWeekSummary(adv usecase.WeekAdvance) *discordgo.MessageEmbed {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(adv.News) > 0 {
		_, _ = buf.WriteString("**Press Releases**\n")
		for _, item := range adv.News {
			_, _ = buf.WriteString("📰 " + item.Text + "\n")
		}
		_, _ = buf.WriteString("\n")
	}

	if len(adv.Results) > 0 {
		_, _ = buf.WriteString("**Results**\n")
		for _, gr := range adv.Results {
			_, _ = buf.WriteString(fmt.Sprintf("%s %d – %s %d\n",
				gr.UserTeamName, gr.UserScore, gr.OpponentTeamName, gr.OpponentScore))
		}
	}

	description := buf.String()
	if description == "" {
		description = "No news or results this week."
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Season %d, Week %d Recap", adv.Completed.Season, adv.Completed.Week),
		Description: description,
		Color:       colorNeutral,
	}
}

// formatAdvanceNotice is the ping posted to the advance tracker when a week
// flips, with the next advance time in league (Central) time.
func formatAdvanceNotice(adv usecase.WeekAdvance, roleID string, loc *time.Location) string {
	when := adv.NextAdvance.In(loc).Format("Monday, Jan 2 at 3:04 PM MST")
	return fmt.Sprintf("<@&%s> The league has advanced to Season %d, Week %d. Next advance: %s.",
		roleID, adv.Next.Season, adv.Next.Week, when)
}

func formatPressRelease(item news.Item) string {
	return fmt.Sprintf("📰 **Press Release** (Season %d, Week %d)\n%s", item.Season, item.Week, item.Text)
}
