package telegram

import (
	"context"
	"fmt"
)

// Provider supplies the identity of the user the host launched the app for.
// Outside the host it fails with ErrNotInHost.
type Provider interface {
	Identity(ctx context.Context) (*WebAppUser, error)
}

// StaticProvider serves a fixed init data string, the way a headless client
// receives it from its environment.
type StaticProvider struct {
	raw string
}

func NewStaticProvider(raw string) *StaticProvider {
	return &StaticProvider{raw: raw}
}

// InitData returns the raw string to forward to the backend, "" outside the host.
func (p *StaticProvider) InitData() string {
	return p.raw
}

func (p *StaticProvider) Identity(ctx context.Context) (*WebAppUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := ParseInitData(p.raw)
	if err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, fmt.Errorf("%w: init data carries no user", ErrNotInHost)
	}
	return data.User, nil
}
