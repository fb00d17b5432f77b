package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sterling-assoc/supportbot/internal/model/chat"
	"github.com/sterling-assoc/supportbot/internal/model/transaction"
	"github.com/sterling-assoc/supportbot/internal/service/action"
	"github.com/sterling-assoc/supportbot/internal/service/session"
)

// ErrSessionNotFound is returned when a session id has expired or never existed.
var ErrSessionNotFound = errors.New("session not found")

// Intent keywords are deliberately plain substring matching, not intent
// classification. On overlap the first bucket wins: refund, then cancel,
// then update, then selection by transaction reference.
var (
	refundKeywords = []string{"refund", "money back"}
	cancelKeywords = []string{"cancel", "subscription"}
	updateKeywords = []string{"update", "payment method"}
)

// Service drives the scripted support conversation: one ProcessMessage call
// per customer turn, reading and writing whole session state through the
// injected store.
type Service struct {
	sessions session.Store
	repo     transaction.Repository
	actions  *action.Processor
	log      zerolog.Logger
}

// NewService wires the state machine to its collaborators.
func NewService(sessions session.Store, repo transaction.Repository, actions *action.Processor, log zerolog.Logger) *Service {
	return &Service{sessions: sessions, repo: repo, actions: actions, log: log}
}

// StartSession provisions a fresh session at the greeting step.
func (s *Service) StartSession(_ context.Context) chat.Session {
	return s.sessions.Create()
}

// Session retrieves an active session by identifier.
func (s *Service) Session(_ context.Context, id string) (chat.Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// ActiveSessions reports how many conversations are currently held.
func (s *Service) ActiveSessions() int {
	return s.sessions.Count()
}

// ProcessMessage runs one turn: look up (or recreate) the session, dispatch
// to the step handler for its current state, persist the updated state, and
// return the reply. It never fails the conversation: an unexpected panic in
// a step handler becomes an apology reply with the state left unchanged so
// the customer can retry the same turn.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, message string) (resp chat.Response) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		// Recreate under the requested id so the client's next turns
		// keep landing on the same conversation.
		sess = s.sessions.CreateWithID(sessionID)
	}
	sess.LastActivity = time.Now().UTC()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("sessionId", sess.ID).Msg("turn handler panicked")
			resp = chat.Response{
				Message:     apologyMessage,
				Suggestions: retrySuggestions,
				State:       sess.State,
			}
		}
		s.sessions.Save(sess)
	}()

	resp = s.handleTurn(ctx, strings.TrimSpace(message), sess.State)
	sess.State = resp.State
	return resp
}

func (s *Service) handleTurn(ctx context.Context, message string, state chat.State) chat.Response {
	switch state.Step {
	case chat.StepGreeting:
		return handleGreeting(state)
	case chat.StepCollectingCard:
		return s.handleCardCollection(ctx, message, state)
	case chat.StepResults:
		return s.handleResults(ctx, message, state)
	case chat.StepCollectingEmail:
		return s.handleEmailCollection(ctx, message, state)
	default:
		return chat.Response{
			Message:     lostTrackMessage,
			Suggestions: []string{"Start over"},
			State:       state.Reset(),
		}
	}
}

// handleGreeting gives the same introduction regardless of content and moves
// on to card collection.
func handleGreeting(state chat.State) chat.Response {
	state.Step = chat.StepCollectingCard
	return chat.Response{
		Message:     greetingMessage,
		Suggestions: []string{"I have my card ready", "How do I find my card?"},
		State:       state,
	}
}

func (s *Service) handleCardCollection(ctx context.Context, message string, state chat.State) chat.Response {
	// Pull any date out first: "On 01/15/2025 I used the card ending in
	// 1234" must not read 2025 as the card digits.
	date, remainder, hasDate := extractDate(message)

	digits, ok := extractCardDigits(remainder)
	if !ok {
		return chat.Response{
			Message:     cardRepromptMessage,
			Suggestions: []string{"I have my card ready"},
			State:       state,
		}
	}

	state.LastFourDigits = digits
	if hasDate {
		state.TransactionDate = date
	}
	return s.executeSearch(ctx, state)
}

// executeSearch queries the repository and routes on the result count. Any
// repository failure regresses to card collection so the customer can retry.
func (s *Service) executeSearch(ctx context.Context, state chat.State) chat.Response {
	found, err := s.repo.SearchByLastFour(ctx, state.LastFourDigits, state.TransactionDate)
	if err != nil {
		s.log.Error().Err(err).Str("lastFour", state.LastFourDigits).Msg("transaction search failed")
		state.Step = chat.StepCollectingCard
		return chat.Response{
			Message:     searchErrorMessage,
			Suggestions: retrySuggestions,
			State:       state,
		}
	}

	if len(found) == 0 {
		message := notFoundMessage(state.LastFourDigits, state.TransactionDate)
		state.Step = chat.StepCollectingCard
		return chat.Response{
			Message:     message,
			Suggestions: []string{"Try different card digits", "Contact support"},
			State:       state,
		}
	}

	state.Found = found
	state.Step = chat.StepResults

	if len(found) == 1 {
		tx := found[0]
		state.Selected = &tx
		return chat.Response{
			Message:     summaryMessage(tx),
			Suggestions: actionSuggestions,
			State:       state,
		}
	}

	state.Selected = nil
	return chat.Response{
		Message:     listMessage(state.LastFourDigits, found),
		Suggestions: listSuggestions(found),
		State:       state,
	}
}

func (s *Service) handleResults(ctx context.Context, message string, state chat.State) chat.Response {
	if len(state.Found) == 0 {
		return chat.Response{
			Message:     lostTrackMessage,
			Suggestions: []string{"Start over"},
			State:       state.Reset(),
		}
	}

	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, refundKeywords):
		if state.UserEmail == "" {
			state.PendingAction = chat.ActionRefund
			state.Step = chat.StepCollectingEmail
			return chat.Response{Message: emailPromptMessage, State: state}
		}
		return s.dispatch(ctx, chat.ActionRefund, state)
	case containsAny(lower, cancelKeywords):
		return s.dispatch(ctx, chat.ActionCancel, state)
	case containsAny(lower, updateKeywords):
		return s.dispatch(ctx, chat.ActionUpdate, state)
	}

	if len(state.Found) > 1 {
		if tx, ok := selectTransaction(message, state.Found); ok {
			state.Selected = &tx
			return chat.Response{
				Message:     selectionMessage(tx),
				Suggestions: actionSuggestions,
				State:       state,
			}
		}
	}

	return chat.Response{
		Message:     optionsMessage,
		Suggestions: actionSuggestions,
		State:       state,
	}
}

func (s *Service) handleEmailCollection(ctx context.Context, message string, state chat.State) chat.Response {
	email, ok := extractEmail(message)
	if !ok {
		return chat.Response{Message: emailRepromptMessage, State: state}
	}

	state.UserEmail = email
	if state.PendingAction == "" {
		return chat.Response{
			Message:     lostTrackMessage,
			Suggestions: []string{"Start over"},
			State:       state.Reset(),
		}
	}
	return s.dispatch(ctx, state.PendingAction, state)
}

// dispatch hands the selected transaction to the action processor and resets
// the machine for a new inquiry. Without prior disambiguation the first
// listed transaction is used, matching the lookup form's behavior.
func (s *Service) dispatch(ctx context.Context, act chat.Action, state chat.State) chat.Response {
	tx := state.Selected
	if tx == nil {
		if len(state.Found) == 0 {
			return chat.Response{
				Message:     lostTrackMessage,
				Suggestions: []string{"Start over"},
				State:       state.Reset(),
			}
		}
		tx = &state.Found[0]
	}

	result := s.actions.Process(ctx, act, *tx, state.UserEmail)
	s.log.Info().
		Str("action", string(act)).
		Str("transactionId", tx.ID).
		Bool("dispatched", result.Success).
		Msg("support action processed")

	return chat.Response{
		Message:     result.Message,
		Suggestions: doneSuggestions,
		State:       state.Reset(),
	}
}
