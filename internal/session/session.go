package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-builder/internal/merging"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

var (
	// ErrRequestInFlight is returned by Send while another turn is awaiting its reply.
	ErrRequestInFlight = errors.New("a chat request is already in flight")
	// ErrEmptyMessage is returned by Send for blank input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoChatter is returned by Send on a session opened without a Chatter.
	ErrNoChatter = errors.New("session has no chatter")
)

// Options configures a Session. The zero value is usable.
type Options struct {
	Logger *zap.Logger
	// Now overrides the clock used for message timestamps.
	Now func() time.Time
	// DisableReasoning starts the session with reasoning turned off.
	DisableReasoning bool
}

// Turn is the outcome of one Send.
type Turn struct {
	User      types.Message
	Assistant types.Message
	Kind      parsing.Kind
	// Updated reports whether the reply changed the résumé.
	Updated bool
	// Err is the chat failure that produced the synthetic error reply, if any.
	Err error
}

// Session is the conversational state of one user: the transcript, the
// accumulated résumé and whether reasoning is requested. Every change is
// written to the store; persistence failures are logged and otherwise ignored.
type Session struct {
	store   Store
	chatter Chatter
	logger  *zap.Logger
	now     func() time.Time

	inFlight atomic.Bool

	mu        sync.Mutex
	messages  []types.Message
	resume    types.ResumeData
	reasoning bool
	// epoch changes on Reset so replies to a discarded transcript are dropped.
	epoch uint64
}

// New restores a session from store, or starts a fresh one when the store is
// empty or unreadable. chatter may be nil for sessions that are only inspected
// or edited locally.
func New(store Store, chatter Chatter, opts Options) *Session {
	s := &Session{
		store:     store,
		chatter:   chatter,
		logger:    opts.Logger,
		now:       opts.Now,
		reasoning: !opts.DisableReasoning,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.messages = s.restoreMessages()
	s.resume = s.restoreResume()
	return s
}

func (s *Session) restoreMessages() []types.Message {
	messages, ok, err := s.store.LoadMessages()
	if err != nil {
		s.logger.Warn("discarding stored messages", zap.Error(err))
	}
	if err != nil || !ok || len(messages) == 0 {
		return []types.Message{s.welcome()}
	}
	return messages
}

func (s *Session) restoreResume() types.ResumeData {
	raw, ok, err := s.store.LoadResume()
	if err != nil {
		s.logger.Warn("discarding stored resume", zap.Error(err))
		return types.NewResumeData()
	}
	if !ok {
		return types.NewResumeData()
	}
	if err := schemas.ValidateResume(raw); err != nil {
		s.logger.Warn("stored resume does not match schema, normalizing", zap.Error(err))
	}
	return parsing.NormalizeResumeJSON(raw)
}

func (s *Session) welcome() types.Message {
	return types.NewMessage(types.RoleAssistant, types.WelcomeMessage, s.now())
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Resume returns a copy of the accumulated résumé.
func (s *Session) Resume() types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume.Clone()
}

// Reasoning reports whether replies request a reasoning trace.
func (s *Session) Reasoning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reasoning
}

// SetReasoning toggles reasoning for subsequent turns.
func (s *Session) SetReasoning(on bool) {
	s.mu.Lock()
	s.reasoning = on
	s.mu.Unlock()
}

// InFlight reports whether a Send is awaiting its reply.
func (s *Session) InFlight() bool {
	return s.inFlight.Load()
}

// Send appends text as a user turn, asks the chatter for a reply and folds
// any résumé update into the session. A failed chat call still completes the
// turn, with the generic error reply as the assistant message.
func (s *Session) Send(ctx context.Context, text string) (*Turn, error) {
	if s.chatter == nil {
		return nil, ErrNoChatter
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	user := types.NewMessage(types.RoleUser, text, s.now())
	s.messages = append(s.messages, user)
	transcript := make([]types.Message, len(s.messages))
	copy(transcript, s.messages)
	reasoning := s.reasoning
	epoch := s.epoch
	s.persistLocked()
	s.mu.Unlock()

	reply, err := s.chatter.Chat(ctx, transcript, reasoning)

	s.mu.Lock()
	defer s.mu.Unlock()

	turn := &Turn{User: user}
	if err != nil {
		s.logger.Error("chat request failed", zap.Error(err))
		turn.Err = err
		turn.Assistant = types.NewMessage(types.RoleAssistant, types.ErrorReplyMessage, s.now())
	} else {
		result := parsing.ParseAIResponse(reply.Content)
		turn.Kind = result.Kind
		turn.Assistant = types.NewMessage(types.RoleAssistant, result.Message, s.now())
		turn.Assistant.ReasoningDetails = reply.ReasoningDetails
		if result.ResumeData != nil && s.epoch == epoch {
			s.resume = merging.Merge(s.resume, *result.ResumeData)
			turn.Updated = true
		}
		s.logger.Debug("chat reply parsed", zap.String("kind", string(result.Kind)), zap.Bool("updated", turn.Updated))
	}

	if s.epoch != epoch {
		s.logger.Debug("dropping reply for reset session")
		turn.Updated = false
		return turn, nil
	}
	s.messages = append(s.messages, turn.Assistant)
	s.persistLocked()
	return turn, nil
}

// Import replaces the résumé wholesale, as when loading a saved document.
func (s *Session) Import(resume types.ResumeData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = resume.Clone()
	s.persistLocked()
}

// Reset discards the transcript and résumé and clears the store.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.messages = []types.Message{s.welcome()}
	s.resume = types.NewResumeData()
	return s.store.Clear()
}

func (s *Session) persistLocked() {
	if err := s.store.Save(s.messages, s.resume); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}
