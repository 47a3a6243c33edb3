package slack

import (
	"strings"

	slackapi "github.com/slack-go/slack"
)

const ResponseTypeEphemeral = slackapi.ResponseTypeEphemeral

// CommandRequest is the subset of a Slack slash-command payload we act on.
type CommandRequest struct {
	Command     string
	Text        string
	UserID      string
	UserName    string
	ChannelName string
	ResponseURL string
}

func NewCommandRequest(cmd slackapi.SlashCommand) CommandRequest {
	return CommandRequest{
		Command:     cmd.Command,
		Text:        cmd.Text,
		UserID:      cmd.UserID,
		UserName:    cmd.UserName,
		ChannelName: cmd.ChannelName,
		ResponseURL: cmd.ResponseURL,
	}
}

// Normalize trims the payload so command matching is whitespace-insensitive.
func (r *CommandRequest) Normalize() {
	r.Command = strings.TrimSpace(r.Command)
	r.Text = strings.TrimSpace(r.Text)
	r.UserID = strings.TrimSpace(r.UserID)
	r.UserName = strings.TrimSpace(r.UserName)
}

// CommandResponse is always delivered with HTTP 200; logical failure lives in Text.
type CommandResponse = slackapi.Msg

func Ephemeral(text string) CommandResponse {
	return slackapi.Msg{Text: text, ResponseType: slackapi.ResponseTypeEphemeral}
}
