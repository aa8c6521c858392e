package gate

import (
	"context"

	"github.com/waypartner/adminpanel/internal/auth"
	"github.com/waypartner/adminpanel/internal/nav"
)

// Event is one of the three inbound events the gate accepts from its shell.
type Event interface{ isEvent() }

type LoginEvent struct {
	Credential auth.Credential
}

type LogoutEvent struct{}

type NavigateEvent struct {
	Screen nav.Screen
}

func (LoginEvent) isEvent()    {}
func (LogoutEvent) isEvent()   {}
func (NavigateEvent) isEvent() {}

// Dispatch demultiplexes an event onto the gate. Only NavigateEvent yields
// a panel.
func (g *Gate) Dispatch(ctx context.Context, ev Event) (*nav.Panel, error) {
	switch e := ev.(type) {
	case LoginEvent:
		_, err := g.SubmitLogin(ctx, e.Credential)
		return nil, err
	case LogoutEvent:
		return nil, g.Logout(ctx)
	case NavigateEvent:
		panel, err := g.Navigate(e.Screen)
		if err != nil {
			return nil, err
		}
		return &panel, nil
	default:
		return nil, nil
	}
}
