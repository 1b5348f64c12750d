package ports

import "context"

// Mailer sends transactional email. Delivery is best-effort: callers log
// failures and never fail the originating request on a mail error.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}
