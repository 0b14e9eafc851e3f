package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/credstore"
	"github.com/hemahemapathi/health-management-client/routes"
	"github.com/hemahemapathi/health-management-client/users"
)

// opKind identifies an operation family for the request-identity check:
// each issued request is tagged with a per-kind sequence number and a
// completion is applied only if it is still the latest of its kind.
type opKind int

const (
	opVerify opKind = iota
	opLogin
	opProfile
)

// Service implements the session state machine. All mutations go through
// its mutex; subscribers are notified with snapshot copies outside the lock.
type Service struct {
	creds    credstore.Repo
	backend  Backend
	navigate Navigator
	logger   zerolog.Logger

	mu         sync.Mutex
	state      State
	loading    bool
	user       *users.User
	token      string
	errMsg     string
	lastIssued map[opKind]uint64

	listeners    map[int]func(Snapshot)
	nextListener int
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithNavigator sets the navigation callback invoked after login and logout.
func WithNavigator(nav Navigator) Option {
	return func(s *Service) {
		s.navigate = nav
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New initializes a Service in the Unknown state. Call Start to resolve the
// stored credential into a session.
func New(creds credstore.Repo, backend Backend, options ...Option) (*Service, error) {
	if creds == nil {
		return nil, errors.New("[session.New] credential store is required")
	}
	if backend == nil {
		return nil, errors.New("[session.New] backend is required")
	}

	s := &Service{
		creds:      creds,
		backend:    backend,
		navigate:   func(string) {},
		logger:     zerolog.Nop(),
		state:      StateUnknown,
		loading:    true,
		lastIssued: make(map[opKind]uint64),
		listeners:  make(map[int]func(Snapshot)),
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Snapshot returns a copy of the current session state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   s.state,
		Loading: s.loading,
		Token:   s.token,
		Err:     s.errMsg,
	}
	if s.user != nil {
		userCopy := *s.user
		snap.User = &userCopy
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function unsubscribes.
func (s *Service) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// apply runs mutate under the lock; if it reports a change, subscribers are
// notified with the resulting snapshot outside the lock. Returns mutate's
// result so callers can detect a discarded (stale) application.
func (s *Service) apply(mutate func() bool) bool {
	s.mu.Lock()
	changed := mutate()
	if !changed {
		s.mu.Unlock()
		return false
	}
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	return true
}

func (s *Service) issueLocked(kind opKind) uint64 {
	s.lastIssued[kind]++
	return s.lastIssued[kind]
}

func (s *Service) isLatestLocked(kind opKind, seq uint64) bool {
	return s.lastIssued[kind] == seq
}

// supersedeAllLocked invalidates every in-flight operation so late
// responses cannot resurrect a torn-down session.
func (s *Service) supersedeAllLocked() {
	for _, kind := range []opKind{opVerify, opLogin, opProfile} {
		s.issueLocked(kind)
	}
}

// Start resolves the persisted credential into a session: no token means
// Unauthenticated, a stored token is verified against the backend. A failed
// verification clears the store silently; startup never surfaces an error.
func (s *Service) Start(ctx context.Context) {
	token, ok := s.creds.Load()
	if !ok {
		s.apply(func() bool {
			s.state = StateUnauthenticated
			s.loading = false
			return true
		})
		return
	}

	var seq uint64
	s.apply(func() bool {
		// Verification window: token present, user still unresolved.
		s.state = StateUnknown
		s.loading = true
		s.token = token
		seq = s.issueLocked(opVerify)
		return true
	})

	user, err := s.backend.Verify(ctx)

	if err != nil {
		s.logger.Debug().Err(err).Msg("stored token rejected, clearing credential")
		s.apply(func() bool {
			if !s.isLatestLocked(opVerify, seq) {
				return false
			}
			s.creds.Clear()
			s.state = StateUnauthenticated
			s.loading = false
			s.user = nil
			s.token = ""
			return true
		})
		return
	}

	s.apply(func() bool {
		if !s.isLatestLocked(opVerify, seq) {
			return false
		}
		s.state = StateAuthenticated
		s.loading = false
		s.user = user
		return true
	})
}

// Login authenticates with the backend. On success the token is persisted,
// the session becomes Authenticated and navigation moves to the role home.
// On failure the prior state is untouched and Err carries the message; an
// already-authenticated session is not torn down by a failed login attempt.
func (s *Service) Login(ctx context.Context, email, password string) error {
	var seq uint64
	s.apply(func() bool {
		s.errMsg = ""
		s.loading = true
		seq = s.issueLocked(opLogin)
		return true
	})

	result, err := s.backend.Login(ctx, email, password)

	if err != nil {
		applied := s.apply(func() bool {
			if !s.isLatestLocked(opLogin, seq) {
				return false
			}
			s.loading = false
			s.errMsg = userMessage(err, loginFailedMsg)
			return true
		})
		if !applied {
			return ErrSuperseded
		}
		return errors.Wrap(err, "[Service.Login] backend.Login")
	}

	applied := s.apply(func() bool {
		if !s.isLatestLocked(opLogin, seq) {
			return false
		}
		s.creds.Save(result.Token)
		s.state = StateAuthenticated
		s.loading = false
		userCopy := result.User
		s.user = &userCopy
		s.token = result.Token
		return true
	})
	if !applied {
		return ErrSuperseded
	}

	s.navigate(routes.HomeFor(result.User.Role))
	return nil
}

// Logout unconditionally tears the session down. It cannot fail.
func (s *Service) Logout() {
	s.apply(func() bool {
		s.creds.Clear()
		s.state = StateUnauthenticated
		s.loading = false
		s.user = nil
		s.token = ""
		s.errMsg = ""
		s.supersedeAllLocked()
		return true
	})
	s.navigate(routes.Login)
}

// Register creates an account. It is a side operation: session state is
// unchanged on success, the caller decides what to do next (typically
// navigate to the login page).
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) error {
	s.apply(func() bool {
		s.errMsg = ""
		return true
	})

	if err := req.Validate(); err != nil {
		s.setError(err.Error())
		return errors.Wrap(err, "[Service.Register] validation")
	}

	if err := s.backend.Register(ctx, req); err != nil {
		s.setError(userMessage(err, registrationFailedMsg))
		return errors.Wrap(err, "[Service.Register] backend.Register")
	}
	return nil
}

// RequestPasswordReset asks the backend to start a password reset. Pure
// request/response, no session state effect.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	s.apply(func() bool {
		s.errMsg = ""
		return true
	})

	if err := s.backend.ForgotPassword(ctx, email); err != nil {
		s.setError(userMessage(err, resetRequestFailedMsg))
		return errors.Wrap(err, "[Service.RequestPasswordReset] backend.ForgotPassword")
	}
	return nil
}

// ResetPassword completes a password reset. Pure request/response, no
// session state effect.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	s.apply(func() bool {
		s.errMsg = ""
		return true
	})

	if err := s.backend.ResetPassword(ctx, token, password); err != nil {
		s.setError(userMessage(err, resetFailedMsg))
		return errors.Wrap(err, "[Service.ResetPassword] backend.ResetPassword")
	}
	return nil
}

// UpdateProfile sends changed profile fields and shallow-merges the server's
// echo into the current user. A rejected token deauthenticates; any other
// failure retains the prior user and sets Err.
func (s *Service) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.mu.Unlock()

	var seq uint64
	s.apply(func() bool {
		s.errMsg = ""
		s.loading = true
		seq = s.issueLocked(opProfile)
		return true
	})

	updated, err := s.backend.UpdateProfile(ctx, update)

	if err != nil {
		if api.IsAuth(err) {
			if s.invalidate(opProfile, seq) {
				return errors.Wrap(err, "[Service.UpdateProfile] token rejected")
			}
			return ErrSuperseded
		}
		applied := s.apply(func() bool {
			if !s.isLatestLocked(opProfile, seq) {
				return false
			}
			s.loading = false
			s.errMsg = userMessage(err, profileUpdateFailedMsg)
			return true
		})
		if !applied {
			return ErrSuperseded
		}
		return errors.Wrap(err, "[Service.UpdateProfile] backend.UpdateProfile")
	}

	applied := s.apply(func() bool {
		if !s.isLatestLocked(opProfile, seq) {
			return false
		}
		s.loading = false
		if s.user != nil {
			merged := s.user.Merge(*updated)
			s.user = &merged
		}
		return true
	})
	if !applied {
		return ErrSuperseded
	}
	return nil
}

// HandleUnauthorized reacts to an authentication-rejected response from any
// backend call made outside this service (the view-layer data endpoints).
// It deauthenticates and navigates to login, returning true, when err is an
// auth rejection against a live session; otherwise it is a no-op.
func (s *Service) HandleUnauthorized(err error) bool {
	if !api.IsAuth(err) {
		return false
	}
	s.mu.Lock()
	authenticated := s.state == StateAuthenticated
	s.mu.Unlock()
	if !authenticated {
		return false
	}
	return s.invalidate(opVerify, s.currentSeq(opVerify))
}

func (s *Service) currentSeq(kind opKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastIssued[kind]
}

// invalidate tears down a session whose token the backend has rejected,
// unless the triggering operation has already been superseded.
func (s *Service) invalidate(kind opKind, seq uint64) bool {
	applied := s.apply(func() bool {
		if !s.isLatestLocked(kind, seq) {
			return false
		}
		s.creds.Clear()
		s.state = StateUnauthenticated
		s.loading = false
		s.user = nil
		s.token = ""
		s.supersedeAllLocked()
		return true
	})
	if applied {
		s.logger.Debug().Msg("session invalidated by rejected token")
		s.navigate(routes.Login)
	}
	return applied
}

func (s *Service) setError(msg string) {
	s.apply(func() bool {
		s.errMsg = msg
		return true
	})
}

// userMessage extracts the user-facing text for err per the taxonomy.
func userMessage(err error, fallback string) string {
	if apiErr, ok := err.(*api.Error); ok {
		return apiErr.UserMessage(fallback)
	}
	return fallback
}
