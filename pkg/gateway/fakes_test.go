package gateway

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/shamank/smartwallet-console/pkg/toolkit"
)

var validSource = config.Static(config.Config{
	APIKey:  "api-key",
	RPCAddr: "http://localhost:8545",
	Network: config.Avalanche,
})

type fakeClient struct {
	credential string
	actions    []toolkit.Action
	closed     atomic.Int32
}

func (f *fakeClient) Tools() []toolkit.Action { return f.actions }

func (f *fakeClient) Close() { f.closed.Add(1) }

// fakeFactory records constructions and builds clients whose actions are
// produced by tools. It fails when err is set.
type fakeFactory struct {
	mu       sync.Mutex
	built    []*fakeClient
	err      error
	tools    func(credential string) []toolkit.Action
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeFactory) NewClient(_ context.Context, credential string, cfg *config.Config) (toolkit.Toolkit, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c := &fakeClient{credential: credential}
	if f.tools != nil {
		c.actions = f.tools(credential)
	}
	f.built = append(f.built, c)
	return c, nil
}

func (f *fakeFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.built)
}

func (f *fakeFactory) client(i int) *fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.built[i]
}

// whoami returns an action reporting the credential its client was built for.
func whoami(credential string) []toolkit.Action {
	return []toolkit.Action{
		toolkit.NewAction("get_address", "", nil, func(context.Context, map[string]any) (any, error) {
			return credential, nil
		}),
	}
}
