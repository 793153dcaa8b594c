package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"github.com/luizzsec/infogram/internal/config"
	"github.com/luizzsec/infogram/internal/profile"
)

// ErrNotRunning is returned when Resolve is called outside the client's Run
// scope.
var ErrNotRunning = errors.New("directory client is not running")

// Client wraps the MTProto connection behind a single lookup method. It
// performs one lookup per Resolve call, with no retries and no caching.
type Client struct {
	tg      *telegram.Client
	api     *tg.Client
	store   *sessionStore
	logger  *zap.Logger
	timeout time.Duration
	// interactive allows the code/password prompt flow when no string
	// session was supplied.
	interactive bool
	phone       string
}

// New builds the client. SESSION, when set, is imported as a Telethon string
// session; otherwise the sqlite session store is used and authentication may
// prompt on stdin.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIID == 0 || strings.TrimSpace(cfg.APIHash) == "" {
		return nil, errors.New("API_ID and API_HASH are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		logger:      logger,
		timeout:     time.Duration(cfg.ResolveTimeoutSeconds) * time.Second,
		interactive: cfg.Session == "",
	}

	var storage telegram.SessionStorage
	if cfg.Session != "" {
		data, err := session.TelethonSession(cfg.Session)
		if err != nil {
			return nil, fmt.Errorf("import string session: %w", err)
		}
		mem := &session.StorageMemory{}
		loader := session.Loader{Storage: mem}
		if err := loader.Save(ctx, data); err != nil {
			return nil, fmt.Errorf("store imported session: %w", err)
		}
		storage = mem
	} else {
		store, err := newSessionStore(cfg.SessionPath)
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		c.store = store
		storage = store
	}

	c.tg = telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: storage,
		Logger:         logger,
	})

	return c, nil
}

// Run connects the client and invokes f once authorized. The connection is
// held open for the whole lifetime of f.
func (c *Client) Run(ctx context.Context, f func(ctx context.Context) error) error {
	defer func() {
		if c.store != nil {
			if err := c.store.Close(); err != nil {
				c.logger.Warn("close session store", zap.Error(err))
			}
		}
	}()

	return c.tg.Run(ctx, func(ctx context.Context) error {
		status, err := c.tg.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get auth status: %w", err)
		}

		if !status.Authorized {
			if !c.interactive {
				return errors.New("session is not authorized")
			}
			if err := c.authenticate(ctx); err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}
		}

		c.api = c.tg.API()
		defer func() { c.api = nil }()

		c.logger.Info("directory client ready")
		return f(ctx)
	})
}

func (c *Client) authenticate(ctx context.Context) error {
	if c.phone == "" {
		fmt.Print("Enter your phone number (including country code): ")
		fmt.Scanln(&c.phone)
	}

	var password string
	fmt.Print("Enter your 2FA password (press Enter if none): ")
	fmt.Scanln(&password)

	flow := auth.NewFlow(
		auth.Constant(
			c.phone,
			password,
			auth.CodeAuthenticatorFunc(
				func(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
					fmt.Print("Enter the code sent to your device: ")
					var code string
					fmt.Scanln(&code)
					return code, nil
				},
			),
		),
		auth.SendCodeOptions{},
	)

	return c.tg.Auth().IfNecessary(ctx, flow)
}

// Resolve performs one remote lookup for the given key. Remote errors are
// returned as-is so callers can surface the underlying message verbatim.
func (c *Client) Resolve(ctx context.Context, key profile.Key) (profile.Raw, error) {
	api := c.api
	if api == nil {
		return profile.Raw{}, ErrNotRunning
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	switch key.Kind {
	case profile.KindHandle:
		return c.resolveHandle(ctx, api, key.Handle)
	case profile.KindNumericID, profile.KindForwardedSender:
		full, err := api.UsersGetFullUser(ctx, &tg.InputUser{UserID: key.UserID})
		if err != nil {
			return profile.Raw{}, err
		}
		return profile.RawFull(full), nil
	default:
		return profile.Raw{}, fmt.Errorf("unsupported lookup key kind %d", key.Kind)
	}
}

func (c *Client) resolveHandle(ctx context.Context, api *tg.Client, handle string) (profile.Raw, error) {
	resolved, err := api.ContactsResolveUsername(ctx, handle)
	if err != nil {
		return profile.Raw{}, err
	}

	user := matchUser(resolved.Users, handle)
	if user == nil {
		return profile.Raw{}, errors.New("could not find user information")
	}

	input := &tg.InputUser{UserID: user.ID}
	if hash, ok := user.GetAccessHash(); ok {
		input.AccessHash = hash
	}

	full, err := api.UsersGetFullUser(ctx, input)
	if err != nil {
		// The bare resolved account still renders a complete card.
		c.logger.Debug("full profile unavailable, using bare account",
			zap.String("handle", handle), zap.Error(err))
		return profile.RawUser(user), nil
	}
	return profile.RawFull(full), nil
}

func matchUser(users []tg.UserClass, handle string) *tg.User {
	var first *tg.User
	for _, uc := range users {
		u, ok := uc.(*tg.User)
		if !ok {
			continue
		}
		if first == nil {
			first = u
		}
		if username, ok := u.GetUsername(); ok && strings.EqualFold(username, handle) {
			return u
		}
	}
	return first
}
