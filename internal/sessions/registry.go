// Package sessions keeps live games in memory and hands out signed handles
// for them.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vancomm/sweeper/internal/mines"
)

var (
	ErrBadHandle      = errors.New("bad session handle")
	ErrUnknownSession = errors.New("unknown session")
)

type Signer interface {
	Sign(claims jwt.Claims) (string, error)
	ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error)
}

type Claims struct {
	SessionId string `json:"sid"`
	jwt.RegisteredClaims
}

type Snapshot struct {
	Params mines.GameParams
	Seed   string
	Phase  mines.Phase
	Won    bool
	Grid   mines.Grid
}

type entry struct {
	mu       sync.Mutex
	session  *mines.Session
	seed     string
	lastUsed time.Time
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Params: e.session.Params(),
		Seed:   e.seed,
		Phase:  e.session.Phase(),
		Won:    e.session.Won(),
		Grid:   e.session.Board().Grid(),
	}
}

// Registry is safe for concurrent use. Commands for one session are applied
// one at a time; different sessions do not block each other.
type Registry struct {
	logger *slog.Logger
	signer Signer
	now    func() time.Time

	mu      sync.RWMutex
	rnd     *rand.Rand
	entries map[string]*entry
}

func New(logger *slog.Logger, signer Signer, rnd *rand.Rand) *Registry {
	if rnd == nil {
		rnd = mines.NewRand()
	}
	return &Registry{
		logger:  logger,
		signer:  signer,
		now:     time.Now,
		rnd:     rnd,
		entries: make(map[string]*entry),
	}
}

// Create starts a game. A non-empty seed makes the mine layout reproducible:
// two games with the same params and seed are identical.
func (r *Registry) Create(params mines.GameParams, seed string) (string, Snapshot, error) {
	var rnd *rand.Rand
	if seed != "" {
		rnd = mines.SeededRand(params.Seed() + "/" + seed)
	}

	r.mu.Lock()
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(r.rnd.Uint64(), r.rnd.Uint64()))
	}
	id := fmt.Sprintf("%016x%016x", r.rnd.Uint64(), r.rnd.Uint64())
	r.mu.Unlock()

	session, err := mines.NewSession(params, rnd)
	if err != nil {
		return "", Snapshot{}, err
	}

	now := r.now()
	handle, err := r.signer.Sign(Claims{
		SessionId: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return "", Snapshot{}, fmt.Errorf("unable to sign session handle: %w", err)
	}

	e := &entry{session: session, seed: seed, lastUsed: now}

	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()

	r.logger.Debug("session created",
		slog.String("sid", id),
		slog.String("params", params.Seed()),
		slog.Bool("seeded", seed != ""),
	)
	return handle, e.snapshot(), nil
}

func (r *Registry) sessionId(handle string) (string, error) {
	var claims Claims
	if _, err := r.signer.ParseWithClaims(handle, &claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadHandle, err)
	}
	if claims.SessionId == "" {
		return "", fmt.Errorf("%w: no session id", ErrBadHandle)
	}
	return claims.SessionId, nil
}

func (r *Registry) lookup(handle string) (*entry, error) {
	id, err := r.sessionId(handle)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownSession
	}
	return e, nil
}

// with runs f holding the session lock.
func (r *Registry) with(handle string, f func(e *entry)) error {
	e, err := r.lookup(handle)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = r.now()
	f(e)
	return nil
}

// Apply runs cmds in order and merges their outcomes. With no commands it
// reports the current phase.
func (r *Registry) Apply(handle string, cmds ...mines.Command) (mines.Outcome, error) {
	var out mines.Outcome
	err := r.with(handle, func(e *entry) {
		out = e.session.Apply(mines.Command{})
		for _, cmd := range cmds {
			out = out.Merge(e.session.Apply(cmd))
		}
	})
	return out, err
}

// Execute is Apply under the session lock with a caller supplied step, used
// by transports that parse and apply text in one go.
func (r *Registry) Execute(handle string, f func(s *mines.Session) (mines.Outcome, error)) (mines.Outcome, error) {
	var (
		out  mines.Outcome
		ferr error
	)
	err := r.with(handle, func(e *entry) {
		out, ferr = f(e.session)
	})
	if err != nil {
		return mines.Outcome{}, err
	}
	return out, ferr
}

func (r *Registry) Query(handle string, x, y int) (mines.CellState, error) {
	var (
		state mines.CellState
		qerr  error
	)
	err := r.with(handle, func(e *entry) {
		state, qerr = e.session.Cell(x, y)
	})
	if err != nil {
		return 0, err
	}
	return state, qerr
}

func (r *Registry) Phase(handle string) (mines.Phase, error) {
	var phase mines.Phase
	err := r.with(handle, func(e *entry) {
		phase = e.session.Phase()
	})
	return phase, err
}

func (r *Registry) Snapshot(handle string) (Snapshot, error) {
	var snap Snapshot
	err := r.with(handle, func(e *entry) {
		snap = e.snapshot()
	})
	return snap, err
}

func (r *Registry) Remove(handle string) error {
	id, err := r.sessionId(handle)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrUnknownSession
	}
	delete(r.entries, id)
	r.logger.Debug("session removed", slog.String("sid", id))
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep drops sessions idle for longer than ttl and returns how many went.
func (r *Registry) Sweep(ttl time.Duration) int {
	deadline := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		e.mu.Lock()
		idle := e.lastUsed.Before(deadline)
		e.mu.Unlock()
		if idle {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("swept idle sessions",
			slog.Int("removed", removed),
			slog.Int("left", len(r.entries)),
		)
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, every, ttl time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep(ttl)
		}
	}
}
