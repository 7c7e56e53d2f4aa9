// Package registry holds the activity roster and its signup rules.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mergington/activities/internal/domain/journal"
)

// Service owns the activity registry. It is safe for concurrent use.
type Service struct {
	mu         sync.RWMutex
	activities map[string]*Activity
	order      []string
	// enrolled maps an email to the single activity holding it.
	enrolled map[string]string

	// commitMu is taken under mu by a successful mutation and released
	// after its journal entry is written, so entries follow roster order.
	commitMu sync.Mutex

	enforceCapacity bool
	journal         Journal
	observer        Observer
	logger          *slog.Logger
}

// NewService builds a registry from a seed set.
func NewService(activities []Activity, opts ...Option) (*Service, error) {
	if err := Validate(activities); err != nil {
		return nil, err
	}

	s := &Service{
		activities:      make(map[string]*Activity, len(activities)),
		order:           make([]string, 0, len(activities)),
		enrolled:        make(map[string]string),
		enforceCapacity: true,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, a := range activities {
		act := a.clone()
		act.Participants = act.Participants[:0]
		for _, email := range a.Participants {
			email = strings.TrimSpace(email)
			act.Participants = append(act.Participants, email)
			s.enrolled[email] = act.Name
		}
		s.activities[act.Name] = &act
		s.order = append(s.order, act.Name)
	}

	if s.observer != nil {
		for _, name := range s.order {
			s.observer.ObserveRoster(name, len(s.activities[name].Participants))
		}
	}
	return s, nil
}

// Validate checks a seed set against the registry invariants.
func Validate(activities []Activity) error {
	names := make(map[string]struct{}, len(activities))
	emails := make(map[string]string)
	for _, a := range activities {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: activity name is required", ErrInvalidActivities)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", ErrInvalidActivities, a.Name)
		}
		names[a.Name] = struct{}{}
		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q must have a positive capacity", ErrInvalidActivities, a.Name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return fmt.Errorf("%w: %q has %d participants for %d spots", ErrInvalidActivities, a.Name, len(a.Participants), a.MaxParticipants)
		}
		for _, email := range a.Participants {
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("%w: %q has a blank participant", ErrInvalidActivities, a.Name)
			}
			if other, dup := emails[email]; dup {
				return fmt.Errorf("%w: %s is listed in both %q and %q", ErrInvalidActivities, email, other, a.Name)
			}
			emails[email] = a.Name
		}
	}
	return nil
}

// List returns a copy of every activity keyed by name.
func (s *Service) List(ctx context.Context) map[string]Activity {
	s.mu.RLock()
	out := make(map[string]Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.clone()
	}
	s.mu.RUnlock()

	s.observe(OpList, nil)
	return out
}

// Names returns activity names in seed order.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns a copy of one activity.
func (s *Service) Get(ctx context.Context, name string) (Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		return Activity{}, ErrActivityNotFound
	}
	return a.clone(), nil
}

// Signup adds email to the named activity's roster.
func (s *Service) Signup(ctx context.Context, activityName, email string) (Receipt, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		s.observe(OpSignup, ErrInvalidInput)
		return Receipt{}, ErrInvalidInput
	}

	count, err := s.signup(activityName, email)
	s.observe(OpSignup, err)
	if err != nil {
		s.logger.Info("signup rejected", "activity", activityName, "email", email, "reason", err)
		return Receipt{}, err
	}

	receipt := Receipt{
		Activity: activityName,
		Email:    email,
		Message:  fmt.Sprintf("Signed up %s for %s", email, activityName),
	}
	s.commit(ctx, journal.TypeSignup, receipt)
	s.logger.Info("participant signed up", "activity", activityName, "email", email, "participants", count)
	return receipt, nil
}

func (s *Service) signup(activityName, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityName]
	if !ok {
		return 0, ErrActivityNotFound
	}
	if current, taken := s.enrolled[email]; taken {
		return 0, fmt.Errorf("%w for %s", ErrAlreadySignedUp, current)
	}
	if s.enforceCapacity && len(a.Participants) >= a.MaxParticipants {
		return 0, fmt.Errorf("%w: %s", ErrActivityFull, activityName)
	}

	a.Participants = append(a.Participants, email)
	s.enrolled[email] = activityName
	s.roster(activityName, len(a.Participants))
	s.commitMu.Lock()
	return len(a.Participants), nil
}

// Remove deletes email from the named activity's roster.
func (s *Service) Remove(ctx context.Context, activityName, email string) (Receipt, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		s.observe(OpRemove, ErrInvalidInput)
		return Receipt{}, ErrInvalidInput
	}

	count, err := s.remove(activityName, email)
	s.observe(OpRemove, err)
	if err != nil {
		s.logger.Info("removal rejected", "activity", activityName, "email", email, "reason", err)
		return Receipt{}, err
	}

	receipt := Receipt{
		Activity: activityName,
		Email:    email,
		Message:  fmt.Sprintf("Removed %s from %s", email, activityName),
	}
	s.commit(ctx, journal.TypeRemoval, receipt)
	s.logger.Info("participant removed", "activity", activityName, "email", email, "participants", count)
	return receipt, nil
}

func (s *Service) remove(activityName, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityName]
	if !ok {
		return 0, ErrActivityNotFound
	}
	idx := a.indexOf(email)
	if idx < 0 {
		return 0, ErrNotSignedUp
	}

	a.Participants = append(a.Participants[:idx], a.Participants[idx+1:]...)
	delete(s.enrolled, email)
	s.roster(activityName, len(a.Participants))
	s.commitMu.Lock()
	return len(a.Participants), nil
}

// commit writes the journal entry outside the registry lock and releases
// commitMu. A journal failure leaves the roster change in place.
func (s *Service) commit(ctx context.Context, typ journal.EntryType, r Receipt) {
	defer s.commitMu.Unlock()
	if s.journal == nil {
		return
	}
	entry := &journal.Entry{
		Activity: r.Activity,
		Email:    r.Email,
		Type:     typ,
		Summary:  r.Message,
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Error("failed to journal roster change", "activity", r.Activity, "type", typ, "error", err)
	}
}

func (s *Service) observe(op Operation, err error) {
	if s.observer != nil {
		s.observer.ObserveOperation(op, err)
	}
}

func (s *Service) roster(activity string, count int) {
	if s.observer != nil {
		s.observer.ObserveRoster(activity, count)
	}
}
