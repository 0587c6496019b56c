package intelitalk

import (
	"time"

	"github.com/goliatone/go-router"
	"github.com/gorilla/securecookie"
)

// DefaultSessionCookie is the well known key the actor record lives under
const DefaultSessionCookie = "intelitalk_user"

var _ SessionStore = &CookieSessionStore{}

// CookieSessionStore keeps the serialized User in a single signed and
// encrypted cookie. A tampered, truncated, or otherwise unreadable cookie
// fails decode and is reported as "no user" rather than as an error, so
// callers never see a parse failure.
type CookieSessionStore struct {
	codec      *securecookie.SecureCookie
	cookieName string
	duration   time.Duration
	secure     bool
	Logger     Logger
}

// NewCookieSessionStore builds a store from the securecookie key pair.
// hashKey authenticates, blockKey encrypts; both come from config.
func NewCookieSessionStore(hashKey, blockKey []byte, opts ...SessionStoreOption) *CookieSessionStore {
	s := &CookieSessionStore{
		codec:      securecookie.New(hashKey, blockKey),
		cookieName: DefaultSessionCookie,
		duration:   24 * time.Hour,
		secure:     true,
		Logger:     defLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type SessionStoreOption func(*CookieSessionStore)

func WithCookieName(name string) SessionStoreOption {
	return func(s *CookieSessionStore) {
		if name != "" {
			s.cookieName = name
		}
	}
}

func WithCookieDuration(d time.Duration) SessionStoreOption {
	return func(s *CookieSessionStore) {
		if d > 0 {
			s.duration = d
		}
	}
}

// WithCookieSecure controls the cookie's Secure attribute. Defaults to
// true; turn it off for plain HTTP development, where browsers would drop
// a Secure cookie and the session could never stick.
func WithCookieSecure(secure bool) SessionStoreOption {
	return func(s *CookieSessionStore) {
		s.secure = secure
	}
}

func WithStoreLogger(lgr Logger) SessionStoreOption {
	return func(s *CookieSessionStore) {
		if lgr != nil {
			s.Logger = lgr
		}
	}
}

// CookieName returns the key the record is stored under
func (s *CookieSessionStore) CookieName() string {
	return s.cookieName
}

// Read returns the stored User, or false when there is none. Decode
// failures are swallowed: the contract is "unreadable means absent".
func (s *CookieSessionStore) Read(c router.Context) (*User, bool) {
	return s.DecodeValue(c.Cookies(s.cookieName))
}

// DecodeValue decodes a raw cookie value. Handlers that sit below the
// router abstraction (the multipart upload route) use it directly.
func (s *CookieSessionStore) DecodeValue(raw string) (*User, bool) {
	if raw == "" {
		return nil, false
	}

	user := &User{}
	if err := s.codec.Decode(s.cookieName, raw, user); err != nil {
		s.Logger.Debug("session cookie unreadable, treating as absent: %s", err)
		return nil, false
	}

	return user, true
}

// Write replaces any existing record unconditionally.
func (s *CookieSessionStore) Write(c router.Context, user *User) error {
	encoded, err := s.codec.Encode(s.cookieName, user)
	if err != nil {
		return err
	}

	c.Cookie(&router.Cookie{
		Name:     s.cookieName,
		Value:    encoded,
		Expires:  time.Now().Add(s.duration),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: "Lax",
	})
	return nil
}

// Clear removes the record. Clearing an empty store is a no-op success.
func (s *CookieSessionStore) Clear(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: "Lax",
	})
}
