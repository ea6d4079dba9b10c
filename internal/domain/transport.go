package domain

import "context"

// Choice is a button offered alongside a prompt. Its Intent doubles as the
// wire payload the transport hands back when the button is pressed.
type Choice struct {
	Label  string
	Intent Intent
}

// Transport delivers prompts and button rows to a user of the external chat
// system. The bot never sees transport details beyond a numeric user id and
// raw text or payloads.
type Transport interface {
	Send(ctx context.Context, destination int64, text string, choices ...Choice) error
}

// Notifier delivers a fired reminder. Usually satisfied by the same chat
// transport, narrowed to plain text.
type Notifier interface {
	Send(ctx context.Context, destination int64, text string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, destination int64, text string) error

func (f NotifierFunc) Send(ctx context.Context, destination int64, text string) error {
	return f(ctx, destination, text)
}
