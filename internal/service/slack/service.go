package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teamcollab/teamcollab-backend-go/internal/domain/attendance"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/slack"
	"github.com/teamcollab/teamcollab-backend-go/internal/domain/user"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/clock"
	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/validator"
)

type command string

const (
	commandCheckIn    command = "checkin"
	commandCheckOut   command = "checkout"
	commandAttendance command = "attendance"
	commandHelp       command = "help"
)

var commandAliases = map[string]command{
	"checkin":    commandCheckIn,
	"출근":         commandCheckIn,
	"checkout":   commandCheckOut,
	"퇴근":         commandCheckOut,
	"attendance": commandAttendance,
	"근태":         commandAttendance,
	"help":       commandHelp,
	"도움말":        commandHelp,
}

const (
	msgNotRegistered = "Your Slack account is not linked to a TeamCollab user. Ask an admin to register your Slack ID."
	msgInternalError = "Something went wrong while processing the command. Please try again later."
	msgUsage         = "Usage: `/attendance [YYYY-MM-DD]`"
	msgHelp          = "*Available commands:*\n" +
		"• `/checkin` (`출근`) : start today's attendance\n" +
		"• `/checkout` (`퇴근`) : finish today's attendance\n" +
		"• `/attendance [YYYY-MM-DD]` (`근태`) : show one day's record, today by default"
)

type CommandServiceImpl struct {
	attendanceService attendance.AttendanceService
	user.UserRepository
	clock clock.Clock
}

func NewCommandService(attendanceService attendance.AttendanceService, userRepository user.UserRepository, clk clock.Clock) slack.CommandService {
	return &CommandServiceImpl{
		attendanceService: attendanceService,
		UserRepository:    userRepository,
		clock:             clk,
	}
}

// resolve picks the command from the slash command name, or from the first
// word of text when the slash command itself is a generic entry point.
func resolve(req slack.CommandRequest) (cmd command, args string, ok bool) {
	name := strings.ToLower(strings.TrimPrefix(req.Command, "/"))
	if cmd, ok := commandAliases[name]; ok {
		return cmd, req.Text, true
	}

	fields := strings.Fields(req.Text)
	if len(fields) == 0 {
		return "", "", false
	}
	cmd, ok = commandAliases[strings.ToLower(fields[0])]
	args = strings.TrimSpace(strings.TrimPrefix(req.Text, fields[0]))
	return cmd, args, ok
}

// Handle implements slack.CommandService.
func (s *CommandServiceImpl) Handle(ctx context.Context, req slack.CommandRequest) slack.CommandResponse {
	req.Normalize()

	cmd, args, ok := resolve(req)
	if !ok || cmd == commandHelp {
		return slack.Ephemeral(msgHelp)
	}

	if req.UserID == "" {
		return slack.Ephemeral(msgNotRegistered)
	}
	u, err := s.UserRepository.GetBySlackUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("Slack command from unregistered user", "slack_user_id", req.UserID, "command", cmd)
			return slack.Ephemeral(msgNotRegistered)
		}
		slog.Error("Failed to resolve slack user", "slack_user_id", req.UserID, "error", err)
		return slack.Ephemeral(msgInternalError)
	}

	switch cmd {
	case commandCheckIn:
		return s.checkIn(ctx, u)
	case commandCheckOut:
		return s.checkOut(ctx, u)
	default:
		return s.showAttendance(ctx, u, args)
	}
}

func (s *CommandServiceImpl) checkIn(ctx context.Context, u user.User) slack.CommandResponse {
	res, err := s.attendanceService.CheckIn(ctx, u.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return slack.Ephemeral("You have already checked in today.")
		}
		return s.internalError("checkin", u, err)
	}
	return slack.Ephemeral(fmt.Sprintf("%s checked in at %s (%s).", u.Name, res.CheckIn, res.Date))
}

func (s *CommandServiceImpl) checkOut(ctx context.Context, u user.User) slack.CommandResponse {
	res, err := s.attendanceService.CheckOut(ctx, u.ID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNoCheckIn):
			return slack.Ephemeral("There is no check-in for today. Use `/checkin` first.")
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			return slack.Ephemeral("You have already checked out today.")
		}
		return s.internalError("checkout", u, err)
	}
	return slack.Ephemeral(fmt.Sprintf("%s checked out at %s. Worked %s today.", u.Name, res.CheckOut, res.WorkHours))
}

func (s *CommandServiceImpl) showAttendance(ctx context.Context, u user.User, args string) slack.CommandResponse {
	date := s.clock.Today()
	if token, found := validator.FindDateToken(args); found {
		if _, ok := validator.IsValidDate(token); !ok {
			return slack.Ephemeral(msgUsage)
		}
		date = token
	}

	record, err := s.attendanceService.GetByDate(ctx, u.ID, date)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return slack.Ephemeral(msgUsage)
		}
		return s.internalError("attendance", u, err)
	}
	if record == nil {
		return slack.Ephemeral(fmt.Sprintf("No attendance record for %s.", date))
	}

	return slack.Ephemeral(fmt.Sprintf(
		"*%s* attendance for %s\n• Check in: %s\n• Check out: %s\n• Work hours: %s\n• Status: %s",
		u.Name, record.Date, record.CheckIn, record.CheckOut, record.WorkHours, record.Status,
	))
}

func (s *CommandServiceImpl) internalError(cmd string, u user.User, err error) slack.CommandResponse {
	slog.Error("Slack command failed", "command", cmd, "user_id", u.ID, "error", err)
	return slack.Ephemeral(msgInternalError)
}
