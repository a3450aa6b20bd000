// Package bot adapts the workout state machine to the Telegram transport:
// it translates incoming updates into machine calls and renders replies as
// messages, reply keyboards, and progress charts.
package bot

import (
	"bytes"
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"gymbot/core/logger"
	"gymbot/core/telegram"
	tghelpers "gymbot/core/telegram/helpers"
	"gymbot/core/telegram/keyboard"
	"gymbot/internal/workout"
)

// Bot binds the state machine to telebot handlers.
type Bot struct {
	machine *workout.Machine
}

// New constructs the Telegram adapter over the given state machine.
func New(machine *workout.Machine) *Bot {
	return &Bot{machine: machine}
}

// Routes returns the handler table for registration with the runtime.
func (b *Bot) Routes() []telegram.Route {
	return []telegram.Route{
		{Endpoint: "/start", Handler: b.handleStart},
		{Endpoint: tele.OnText, Handler: b.handleText},
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	if err := b.machine.RegisterUser(ctx, sender.ID, displayName(sender)); err != nil {
		logger.Warn(ctx, "tg", "register_user",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
	}
	return c.Send(workout.MsgWelcome, keyboard.ReplyButtons(workout.MainMenuRows()...))
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	reply := b.machine.Handle(ctx, sender.ID, displayName(sender), c.Text())
	for _, msg := range reply {
		if err := b.send(c, msg); err != nil {
			return err
		}
	}
	return nil
}

// send renders one outbound message. A message carrying stats becomes a
// chart photo with the text as caption; when the series is too short for a
// chart the text is sent on its own.
func (b *Bot) send(c tele.Context, msg workout.Message) error {
	if msg.Stats != nil {
		png, err := RenderProgressChart(msg.Stats.Exercise, msg.Stats.Series)
		if err == nil {
			photo := &tele.Photo{
				File:    tele.FromReader(bytes.NewReader(png)),
				Caption: msg.Text,
			}
			return c.Send(photo)
		}
		if !errors.Is(err, ErrTooFewPoints) {
			ctx := tghelpers.BuildContext(c)
			logger.Warn(ctx, "tg", "chart_render",
				slog.String("exercise", msg.Stats.Exercise),
				slog.String("err", err.Error()),
			)
		}
	}

	if len(msg.Menu) > 0 {
		return c.Send(msg.Text, keyboard.ReplyButtons(msg.Menu...))
	}
	return c.Send(msg.Text)
}

func displayName(u *tele.User) string {
	if u.Username != "" {
		return u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
