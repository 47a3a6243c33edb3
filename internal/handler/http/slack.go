package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	slackapi "github.com/slack-go/slack"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/slack"
)

type SlackHandler interface {
	Command(w http.ResponseWriter, r *http.Request)
}

type slackHandlerImpl struct {
	commandService slack.CommandService
}

func NewSlackHandler(commandService slack.CommandService) SlackHandler {
	return &slackHandlerImpl{
		commandService: commandService,
	}
}

// Command implements SlackHandler. Slack treats any non-200 as a delivery
// failure, so every outcome is written with 200.
func (h *slackHandlerImpl) Command(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Slack command panicked", "panic", rec)
			writeSlackReply(w, slack.Ephemeral("Something went wrong while processing the command. Please try again later."))
		}
	}()

	var reply slack.CommandResponse

	cmd, err := slackapi.SlashCommandParse(r)
	if err != nil {
		slog.Error("Failed to parse slack command form", "error", err)
		reply = slack.Ephemeral("Could not read the command payload.")
	} else {
		reply = h.commandService.Handle(r.Context(), slack.NewCommandRequest(cmd))
	}

	writeSlackReply(w, reply)
}

func writeSlackReply(w http.ResponseWriter, reply slack.CommandResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		slog.Error("Failed to encode slack reply", "error", err)
	}
}
