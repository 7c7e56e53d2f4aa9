package registry

import "log/slog"

// Option configures a Service.
type Option func(*Service)

// WithJournal records every roster change in j.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithObserver reports operations to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCapacityEnforcement toggles rejecting signups once MaxParticipants is reached.
// Enforcement is on by default.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *Service) { s.enforceCapacity = enabled }
}
