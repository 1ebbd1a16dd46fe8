package postgres

import "context"

// WithPing replaces the SQL ping so tests can run without a server.
func (s Strategy) WithPing(ping func(ctx context.Context, dsn string) error) Strategy {
	s.ping = ping

	return s
}
