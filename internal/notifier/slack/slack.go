package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/metrics"
	"github.com/courtside-hq/matchweek/internal/notifier"
	"github.com/courtside-hq/matchweek/internal/suggester"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendWeekSuggestions(fromDate, toDate string, result suggester.Result, dryRun bool) error {
	msg := s.formatWeekSuggestions(fromDate, toDate, result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendResultRecorded(match *league.Match, playerAName, playerBName, winnerName string, dryRun bool) error {
	msg := s.formatResultRecorded(match, playerAName, playerBName, winnerName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(categoryName string, standings []league.Standing, dryRun bool) error {
	msg := s.formatStandings(categoryName, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatWeekSuggestionsResponse formats a suggestion round message for an HTTP response.
func (s *Notifier) FormatWeekSuggestionsResponse(fromDate, toDate string, result suggester.Result) (any, error) {
	return s.formatWeekSuggestions(fromDate, toDate, result), nil
}

// FormatStandingsResponse formats a standings message for an HTTP response.
func (s *Notifier) FormatStandingsResponse(categoryName string, standings []league.Standing) (any, error) {
	return s.formatStandings(categoryName, standings), nil
}

// formatWeekSuggestions creates the Slack message for a generated round of suggestions using Block Kit.
func (s *Notifier) formatWeekSuggestions(fromDate, toDate string, result suggester.Result) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🎾 This week's matches 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	rangeText := fmt.Sprintf("Week %s to %s", formatDate(fromDate), formatDate(toDate))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rangeText, false, false), nil, nil))

	if len(result.Proposals) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches could be scheduled this week.", false, false), nil, nil))
	}

	for _, p := range result.Proposals {
		line := fmt.Sprintf("%s vs %s", p.PlayerAName, p.PlayerBName)
		if p.IsRematch {
			line += " (rematch)"
		}
		details := fmt.Sprintf("%s\n%s · %s %s · court %d", p.CategoryName, p.Venue, formatDate(p.Date), p.Time, p.Court)
		fields := []*slack.TextBlockObject{
			slack.NewTextBlockObject("plain_text", details, false, false),
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("• %s", line), true, false), fields, nil))
	}

	if len(result.OddPlayers) > 0 {
		var oddLines []string
		for _, odd := range result.OddPlayers {
			oddLines = append(oddLines, fmt.Sprintf("%s (%s)", odd.PlayerName, odd.Reason))
		}
		oddText := slack.NewTextBlockObject("plain_text", "Sitting out: "+strings.Join(oddLines, ", "), true, false)
		blocks = append(blocks, slack.NewContextBlock("", oddText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatResultRecorded creates the Slack message for a recorded match result using Block Kit.
func (s *Notifier) formatResultRecorded(match *league.Match, playerAName, playerBName, winnerName string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🎾 Result recorded! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s\n%s · %s %s", playerAName, playerBName, match.Venue, formatDate(match.Date), match.Time)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	resultText := fmt.Sprintf("%s won %d-%d 🏆", winnerName, match.SetsA, match.SetsB)
	if match.WinnerID != nil && *match.WinnerID == match.PlayerBID {
		resultText = fmt.Sprintf("%s won %d-%d 🏆", winnerName, match.SetsB, match.SetsA)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the Slack message for category standings using Block Kit.
func (s *Notifier) formatStandings(categoryName string, standings []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s standings 🏆", categoryName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No results recorded yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	currentZone := ""
	for i, st := range standings {
		if st.ZoneName != "" && st.ZoneName != currentZone {
			if len(lines) > 0 {
				blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), false, false), nil, nil))
				lines = lines[:0]
			}
			currentZone = st.ZoneName
			blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s:", currentZone), true, false), nil, nil))
		}
		lines = append(lines, fmt.Sprintf("%d. %s · %d pts · %dW %dL · sets %d-%d", i+1, st.PlayerName, st.Points, st.Won, st.Lost, st.SetsWon, st.SetsLost))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func formatDate(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("Monday 02 Jan")
	}
	return date
}
