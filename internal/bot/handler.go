package bot

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/luizzsec/infogram/internal/card"
	"github.com/luizzsec/infogram/internal/config"
	"github.com/luizzsec/infogram/internal/profile"
	"github.com/luizzsec/infogram/internal/ui"
)

// Resolver performs the remote profile lookup.
type Resolver interface {
	Resolve(ctx context.Context, key profile.Key) (profile.Raw, error)
}

// Sender posts a reply back to the chat.
type Sender interface {
	Send(msg tgbotapi.Chattable) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(msg tgbotapi.Chattable) error

func (f SenderFunc) Send(msg tgbotapi.Chattable) error { return f(msg) }

// Handler dispatches one inbound update through the classify, resolve,
// normalize, render pipeline. It keeps no state between updates.
type Handler struct {
	cfg      config.Config
	opts     card.Options
	loc      *time.Location
	resolver Resolver
	sender   Sender
	logger   *zap.Logger
	now      func() time.Time
}

func NewHandler(cfg config.Config, layout []card.FieldKey, loc *time.Location, resolver Resolver, sender Sender, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg: cfg,
		opts: card.Options{
			Language:     cfg.Language,
			TimezoneName: cfg.TimezoneName,
			Layout:       layout,
		},
		loc:      loc,
		resolver: resolver,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil {
		return
	}

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			h.handleStart(ctx, m)
		case "help":
			h.reply(m, ui.HelpMessage(h.cfg), true)
		case "about":
			h.reply(m, ui.AboutMessage(h.cfg), true)
		}
		return
	}

	h.handleLookup(ctx, m)
}

func (h *Handler) handleLookup(ctx context.Context, m *tgbotapi.Message) {
	key, err := profile.Classify(classifierMessage(m))
	if errors.Is(err, profile.ErrNotLookup) {
		return
	}
	if errors.Is(err, profile.ErrUnresolvableForward) {
		h.reply(m, ui.ForwardDiagnostic, false)
		return
	}

	raw, err := h.resolver.Resolve(ctx, key)
	if err != nil {
		h.reply(m, ui.ErrorPrefix+err.Error(), false)
		return
	}

	rec := profile.Normalize(raw)
	c := card.Render(rec, h.opts, h.now().In(h.loc))
	h.reply(m, ui.LookupReply(c.Text()), true)
}

func (h *Handler) handleStart(ctx context.Context, m *tgbotapi.Message) {
	from := m.From
	if from == nil {
		return
	}

	var rec profile.Record
	raw, err := h.resolver.Resolve(ctx, profile.NumericKey(from.ID))
	if err != nil {
		// Self-lookup failure never blocks the greeting; fall back to the
		// fields the update already carries.
		h.logger.Debug("self lookup failed, using event fields",
			zap.Int64("user_id", from.ID), zap.Error(err))
		rec = profile.FallbackRecord(from.ID, from.FirstName, from.LastName, from.UserName)
	} else {
		rec = profile.Normalize(raw)
	}

	c := card.Render(rec, h.opts, h.now().In(h.loc))
	h.reply(m, ui.StartMessage(from.FirstName, c.Text(), h.cfg), true)
}

func (h *Handler) reply(m *tgbotapi.Message, text string, markdown bool) {
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyToMessageID = m.MessageID
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if err := h.sender.Send(msg); err != nil {
		h.logger.Warn("send reply", zap.Int64("chat_id", m.Chat.ID), zap.Error(err))
	}
}

// classifierMessage maps a Bot API message onto the classifier's view of it.
func classifierMessage(m *tgbotapi.Message) profile.Message {
	msg := profile.Message{Text: m.Text}

	forwarded := m.ForwardFrom != nil || m.ForwardFromChat != nil ||
		m.ForwardFromMessageID != 0 || m.ForwardDate != 0 || m.ForwardSenderName != ""
	if !forwarded {
		return msg
	}

	msg.HasForwardOrigin = true
	if m.ForwardFrom != nil {
		msg.ForwardedSenderID = m.ForwardFrom.ID
	}
	if m.ForwardFromChat != nil {
		msg.ForwardedChatID = m.ForwardFromChat.ID
	}
	return msg
}
