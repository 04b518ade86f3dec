package account

import (
	"errors"
	"log/slog"
	"regexp"

	"shopfront/internal/apiclient"
	"shopfront/internal/notify"
	"shopfront/internal/session"
)

var (
	// ErrInvalidEmail is a pre-dispatch validation failure; no request
	// is issued and the message is shown inline, not as a toast.
	ErrInvalidEmail = errors.New("please enter a valid email address")
	// ErrShortPassword is the registration password-length failure.
	ErrShortPassword = errors.New("password must be at least 6 characters long")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// Service runs the login and registration flows: client-side
// validation first, then the backend call, then session and
// notification updates.
type Service struct {
	api      *apiclient.Client
	sessions *session.Manager
	notifier *notify.Broadcaster
}

// NewService wires the account flows.
func NewService(api *apiclient.Client, sessions *session.Manager, notifier *notify.Broadcaster) *Service {
	return &Service{api: api, sessions: sessions, notifier: notifier}
}

// Login validates the email shape, exchanges credentials with the
// backend and establishes the session.
func (s *Service) Login(email, password string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	token, user, err := s.api.Login(email, password)
	if err != nil {
		slog.Error("login failed", "err", err)
		s.notifier.Error("Login failed: " + backendMessage(err))
		return err
	}
	s.sessions.Login(token, user)
	s.notifier.Success("Login successful!")
	return nil
}

// Register validates the form and creates an account. The backend
// issues no token; the user logs in afterwards.
func (s *Service) Register(email, password string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return ErrShortPassword
	}
	if err := s.api.Register(email, password); err != nil {
		slog.Error("registration failed", "err", err)
		s.notifier.Error("Signup failed: " + backendMessage(err))
		return err
	}
	s.notifier.Success("Registration successful! Please log in.")
	return nil
}

// Logout clears the session; the optional callback handles navigation.
func (s *Service) Logout(after func()) {
	s.sessions.Logout(after)
}

func backendMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Please try again."
}
