package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gotd/td/tg"

	"github.com/luizzsec/infogram/internal/config"
	"github.com/luizzsec/infogram/internal/profile"
)

type fakeResolver struct {
	raw     profile.Raw
	err     error
	calls   int
	lastKey profile.Key
}

func (f *fakeResolver) Resolve(_ context.Context, key profile.Key) (profile.Raw, error) {
	f.calls++
	f.lastKey = key
	return f.raw, f.err
}

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(msg tgbotapi.Chattable) error {
	mc, ok := msg.(tgbotapi.MessageConfig)
	if !ok {
		return errors.New("unexpected chattable type")
	}
	f.sent = append(f.sent, mc)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		BotName:      "InfoGram BOT",
		Developer:    "@Luizzsec",
		Description:  "A Telegram bot that shows public profile details of any user.",
		Language:     "English",
		TimezoneName: "UTC",
	}
}

func newTestHandler(resolver Resolver, sender Sender) *Handler {
	h := NewHandler(testConfig(), nil, time.UTC, resolver, sender, nil)
	h.now = func() time.Time { return time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC) }
	return h
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: 99},
		From:      &tgbotapi.User{ID: 7, FirstName: "Bo", UserName: "bo"},
	}}
}

func commandUpdate(command string) tgbotapi.Update {
	upd := textUpdate("/" + command)
	upd.Message.Entities = []tgbotapi.MessageEntity{{
		Type:   "bot_command",
		Offset: 0,
		Length: len(command) + 1,
	}}
	return upd
}

func annRaw() profile.Raw {
	u := &tg.User{ID: 123, Premium: true}
	u.SetFirstName("Ann")
	u.SetUsername("ann99")
	u.SetPhoto(&tg.UserProfilePhoto{PhotoID: 42, DCID: 2})
	return profile.RawUser(u)
}

func TestIgnoresNonLookupMessages(t *testing.T) {
	resolver := &fakeResolver{}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	for i := 0; i < 3; i++ {
		h.HandleUpdate(context.Background(), textUpdate("just chatting"))
	}

	if resolver.calls != 0 {
		t.Fatalf("expected no resolve calls, got %d", resolver.calls)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no replies, got %d", len(sender.sent))
	}
}

func TestLookupRendersCard(t *testing.T) {
	resolver := &fakeResolver{raw: annRaw()}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	h.HandleUpdate(context.Background(), textUpdate("@ann99"))

	if resolver.calls != 1 {
		t.Fatalf("expected one resolve call, got %d", resolver.calls)
	}
	if resolver.lastKey.Kind != profile.KindHandle || resolver.lastKey.Handle != "ann99" {
		t.Fatalf("unexpected key: %+v", resolver.lastKey)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}

	reply := sender.sent[0]
	if !strings.HasPrefix(reply.Text, "📋 *User Information*") {
		t.Fatalf("missing card header:\n%s", reply.Text)
	}
	for _, want := range []string{"- ID: `123`", "- Name: Ann", "- Premium: Yes"} {
		if !strings.Contains(reply.Text, want) {
			t.Fatalf("expected %q in reply:\n%s", want, reply.Text)
		}
	}
	if reply.ParseMode != tgbotapi.ModeMarkdown {
		t.Fatalf("expected markdown parse mode, got %q", reply.ParseMode)
	}
	if reply.ReplyToMessageID != 1 {
		t.Fatalf("expected reply to message 1, got %d", reply.ReplyToMessageID)
	}
}

func TestLookupErrorSurfacesVerbatim(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("FLOOD_WAIT")}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	h.HandleUpdate(context.Background(), textUpdate("@ann99"))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
	if sender.sent[0].Text != "❌ Error: FLOOD_WAIT" {
		t.Fatalf("unexpected error reply: %q", sender.sent[0].Text)
	}
	if sender.sent[0].ParseMode != "" {
		t.Fatalf("error replies must be plain text, got parse mode %q", sender.sent[0].ParseMode)
	}
}

func TestUnresolvableForwardSkipsRemoteCall(t *testing.T) {
	resolver := &fakeResolver{}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	upd := textUpdate("")
	upd.Message.ForwardDate = 1735800000

	h.HandleUpdate(context.Background(), upd)

	if resolver.calls != 0 {
		t.Fatalf("expected no resolve calls, got %d", resolver.calls)
	}
	if len(sender.sent) != 1 || sender.sent[0].Text != "Could not determine forwarded user." {
		t.Fatalf("unexpected replies: %+v", sender.sent)
	}
}

func TestForwardedSenderLookup(t *testing.T) {
	resolver := &fakeResolver{raw: annRaw()}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	upd := textUpdate("")
	upd.Message.ForwardDate = 1735800000
	upd.Message.ForwardFrom = &tgbotapi.User{ID: 555}

	h.HandleUpdate(context.Background(), upd)

	if resolver.lastKey.Kind != profile.KindForwardedSender || resolver.lastKey.UserID != 555 {
		t.Fatalf("unexpected key: %+v", resolver.lastKey)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
}

func TestStartGreetsWithSelfProfile(t *testing.T) {
	resolver := &fakeResolver{raw: annRaw()}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	h.HandleUpdate(context.Background(), commandUpdate("start"))

	if resolver.calls != 1 {
		t.Fatalf("expected one self-lookup, got %d", resolver.calls)
	}
	if resolver.lastKey.Kind != profile.KindNumericID || resolver.lastKey.UserID != 7 {
		t.Fatalf("unexpected self-lookup key: %+v", resolver.lastKey)
	}

	reply := sender.sent[0].Text
	for _, want := range []string{"👋 Hello Bo!", "Welcome to *InfoGram BOT*", "- ID: `123`", "💻 Developer: @Luizzsec"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("expected %q in greeting:\n%s", want, reply)
		}
	}
}

func TestStartSurvivesSelfLookupFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("PRIVACY_RESTRICTED")}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	h.HandleUpdate(context.Background(), commandUpdate("start"))

	if len(sender.sent) != 1 {
		t.Fatalf("greeting must still send, got %d replies", len(sender.sent))
	}

	reply := sender.sent[0].Text
	if strings.Contains(reply, "PRIVACY_RESTRICTED") {
		t.Fatalf("self-lookup failure must not surface:\n%s", reply)
	}
	for _, want := range []string{
		"👋 Hello Bo!",
		"- ID: `7`",
		"- Name: Bo",
		"- Username: @bo",
		"- Premium: No",
		"- Photos: No",
	} {
		if !strings.Contains(reply, want) {
			t.Fatalf("expected %q in fallback greeting:\n%s", want, reply)
		}
	}
}

func TestHelpAndAbout(t *testing.T) {
	resolver := &fakeResolver{}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	h.HandleUpdate(context.Background(), commandUpdate("help"))
	h.HandleUpdate(context.Background(), commandUpdate("about"))

	if resolver.calls != 0 {
		t.Fatalf("help/about must not resolve, got %d calls", resolver.calls)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected two replies, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Text, "Help Menu") {
		t.Fatalf("unexpected help reply:\n%s", sender.sent[0].Text)
	}
	if !strings.Contains(sender.sent[1].Text, "About This Bot") {
		t.Fatalf("unexpected about reply:\n%s", sender.sent[1].Text)
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	resolver := &fakeResolver{}
	sender := &fakeSender{}
	h := newTestHandler(resolver, sender)

	h.HandleUpdate(context.Background(), commandUpdate("weather"))

	if len(sender.sent) != 0 || resolver.calls != 0 {
		t.Fatalf("unknown commands must be ignored: sent=%d calls=%d", len(sender.sent), resolver.calls)
	}
}
