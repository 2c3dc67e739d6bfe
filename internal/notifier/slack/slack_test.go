package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/metrics"
	"github.com/courtside-hq/matchweek/internal/suggester"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func sampleResult() suggester.Result {
	return suggester.Result{
		Proposals: []suggester.MatchProposal{
			{
				Venue: "central", Date: "2026-09-04", Time: "10:00", Court: 1,
				PlayerAID: "p1", PlayerAName: "Ana",
				PlayerBID: "p2", PlayerBName: "Berta",
				CategoryID: "cat-a", CategoryName: "Primera",
			},
			{
				Venue: "central", Date: "2026-09-04", Time: "10:00", Court: 2,
				PlayerAID: "p3", PlayerAName: "Clara",
				PlayerBID: "p4", PlayerBName: "Diana",
				CategoryID: "cat-a", CategoryName: "Primera",
				IsRematch: true,
			},
		},
		OddPlayers: []suggester.OddPlayer{
			{PlayerID: "p5", PlayerName: "Eva", Reason: suggester.ReasonNoAvailability},
		},
	}
}

func TestFormatWeekSuggestions(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	msg := notifier.formatWeekSuggestions("2026-08-31", "2026-09-06", sampleResult())

	require.NotEmpty(t, msg.Blocks.BlockSet)
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "first block should be a header")
	assert.Contains(t, header.Text.Text, "This week's matches")

	// Header, week range, two proposals, one context block for the odd player.
	assert.Len(t, msg.Blocks.BlockSet, 5)

	rematch, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, rematch.Text.Text, "rematch")

	oddBlock, ok := msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
	require.True(t, ok, "last block should be the sitting-out context")
	oddText, ok := oddBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, oddText.Text, "Eva")
	assert.Contains(t, oddText.Text, "no availability submitted this week")
}

func TestFormatWeekSuggestions_Empty(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	msg := notifier.formatWeekSuggestions("2026-08-31", "2026-09-06", suggester.Result{})

	require.Len(t, msg.Blocks.BlockSet, 3)
	empty, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, empty.Text.Text, "No matches could be scheduled")
}

func TestFormatStandings(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	standings := []league.Standing{
		{PlayerID: "p1", PlayerName: "Ana", Played: 3, Won: 3, Lost: 0, SetsWon: 6, SetsLost: 1, Points: 6, ZoneName: "Zone A"},
		{PlayerID: "p2", PlayerName: "Berta", Played: 3, Won: 1, Lost: 2, SetsWon: 3, SetsLost: 4, Points: 4, ZoneName: "Zone A"},
		{PlayerID: "p3", PlayerName: "Clara", Played: 2, Won: 2, Lost: 0, SetsWon: 4, SetsLost: 0, Points: 4, ZoneName: "Zone B"},
	}

	msg := notifier.formatStandings("Primera", standings)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Primera")

	// Header plus two zone titles and two ranking sections.
	require.Len(t, msg.Blocks.BlockSet, 5)
	zoneA, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Zone A:", zoneA.Text.Text)
	ranksA, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, ranksA.Text.Text, "1. Ana")
	assert.Contains(t, ranksA.Text.Text, "2. Berta")
}

func TestFormatStandings_Empty(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	msg := notifier.formatStandings("Primera", nil)

	require.Len(t, msg.Blocks.BlockSet, 2)
	empty, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, empty.Text.Text, "No results recorded yet")
}

func TestFormatResultRecorded(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	winner := "p2"
	match := &league.Match{
		ID: "m1", TournamentID: "t1",
		PlayerAID: "p1", PlayerBID: "p2",
		Venue: "central", Date: "2026-09-04", Time: "10:00", Court: 1,
		Status: league.StatusPlayed, WinnerID: &winner, SetsA: 1, SetsB: 2,
	}

	msg := notifier.formatResultRecorded(match, "Ana", "Berta", "Berta")

	require.Len(t, msg.Blocks.BlockSet, 3)
	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	// The winner's sets come first regardless of which side they played on.
	assert.Contains(t, result.Text.Text, "Berta won 2-1")
}

func TestSendWeekSuggestions_SendsFormattedMessage(t *testing.T) {
	var sentBlocks int
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			sentBlocks = len(options)
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendWeekSuggestions("2026-08-31", "2026-09-06", sampleResult(), false)
	require.NoError(t, err)
	assert.NotZero(t, sentBlocks)
}
