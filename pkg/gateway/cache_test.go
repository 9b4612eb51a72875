package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/shamank/smartwallet-console/pkg/toolkit"
)

func TestClientCache_ReusesForSameCredential(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(validSource, f)
	ctx := context.Background()

	a, err := cache.ObtainClient(ctx, "C1")
	if err != nil {
		t.Fatalf("ObtainClient: %v", err)
	}
	a.Release()
	b, err := cache.ObtainClient(ctx, "C1")
	if err != nil {
		t.Fatalf("ObtainClient: %v", err)
	}
	defer b.Release()

	if a.Client() != b.Client() {
		t.Fatal("expected the identical client instance")
	}
	if f.count() != 1 {
		t.Fatalf("constructions = %d, want 1", f.count())
	}
	if s := cache.Stats(); s.Constructions != 1 || s.Hits != 1 || s.Evictions != 0 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

// TestClientCache_CredentialSequence checks that the single slot only
// remembers the last credential: C1, C2, C1 builds three clients.
func TestClientCache_CredentialSequence(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(validSource, f)

	for _, cred := range []string{"C1", "C2", "C1", "C1"} {
		l, err := cache.ObtainClient(context.Background(), cred)
		if err != nil {
			t.Fatalf("ObtainClient(%s): %v", cred, err)
		}
		if got := l.Client().(*fakeClient).credential; got != cred {
			t.Fatalf("client for %s was built for %s", cred, got)
		}
		l.Release()
	}

	if f.count() != 3 {
		t.Fatalf("constructions = %d, want 3", f.count())
	}
	if s := cache.Stats(); s.Evictions != 2 || s.Hits != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
	for i := 0; i < 2; i++ {
		if f.client(i).closed.Load() != 1 {
			t.Fatalf("evicted client %d not closed", i)
		}
	}
	if f.client(2).closed.Load() != 0 {
		t.Fatal("current client must stay open")
	}
}

func TestClientCache_ConfigurationError(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(config.Static(config.Config{RPCAddr: "http://x"}), f)

	_, err := cache.ObtainClient(context.Background(), "C1")
	var ge *Error
	if !errors.As(err, &ge) || ge.Kind != KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(ge.Message, config.EnvAPIKey) || !strings.Contains(ge.Message, config.EnvChainID) {
		t.Fatalf("message should name missing settings: %q", ge.Message)
	}
	if strings.Contains(ge.Message, config.EnvRPCURL) {
		t.Fatalf("RPC_URL is set and must not be reported: %q", ge.Message)
	}
	if f.count() != 0 {
		t.Fatal("factory must not run without configuration")
	}
}

func TestClientCache_ConstructionFailureKeepsCurrent(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(validSource, f)
	ctx := context.Background()

	l, err := cache.ObtainClient(ctx, "C1")
	if err != nil {
		t.Fatalf("ObtainClient: %v", err)
	}
	l.Release()

	f.mu.Lock()
	f.err = errors.New("dial tcp: connection refused")
	f.mu.Unlock()

	_, err = cache.ObtainClient(ctx, "C2")
	if KindOf(err) != KindClientConstruction {
		t.Fatalf("expected construction error, got %v", err)
	}
	if err.Error() != "Error: dial tcp: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	l, err = cache.ObtainClient(ctx, "C1")
	if err != nil {
		t.Fatalf("cached client should survive a failed replacement: %v", err)
	}
	l.Release()
	if s := cache.Stats(); s.Hits != 1 || s.Evictions != 0 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestClientCache_DuplicateActionsFailConstruction(t *testing.T) {
	f := &fakeFactory{tools: func(string) []toolkit.Action {
		a := toolkit.NewAction("dup", "", nil, nil)
		return []toolkit.Action{a, a}
	}}
	cache := NewClientCache(validSource, f)

	_, err := cache.ObtainClient(context.Background(), "C1")
	if KindOf(err) != KindClientConstruction {
		t.Fatalf("expected construction error, got %v", err)
	}
	if f.client(0).closed.Load() != 1 {
		t.Fatal("rejected client must be closed")
	}
}

func TestClientCache_EvictedClientClosedAfterLastRelease(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(validSource, f)
	ctx := context.Background()

	held, err := cache.ObtainClient(ctx, "C1")
	if err != nil {
		t.Fatalf("ObtainClient: %v", err)
	}
	other, err := cache.ObtainClient(ctx, "C2")
	if err != nil {
		t.Fatalf("ObtainClient: %v", err)
	}
	defer other.Release()

	c1 := held.Client().(*fakeClient)
	if c1.closed.Load() != 0 {
		t.Fatal("evicted client closed while still leased")
	}
	held.Release()
	held.Release()
	if c1.closed.Load() != 1 {
		t.Fatalf("evicted client close count = %d, want 1", c1.closed.Load())
	}
}

func TestClientCache_Purge(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(validSource, f)
	l, _ := cache.ObtainClient(context.Background(), "C1")
	l.Release()

	cache.Purge()
	if f.client(0).closed.Load() != 1 {
		t.Fatal("purged client not closed")
	}
	l, _ = cache.ObtainClient(context.Background(), "C1")
	l.Release()
	if f.count() != 2 {
		t.Fatalf("expected rebuild after purge, constructions = %d", f.count())
	}
	cache.Purge()
	cache.Purge()
}

// TestClientCache_ConcurrentCredentials interleaves distinct credentials and
// checks that no caller ever receives a client built for another credential
// and that constructions never overlap.
func TestClientCache_ConcurrentCredentials(t *testing.T) {
	f := &fakeFactory{}
	cache := NewClientCache(validSource, f)

	var wg sync.WaitGroup
	errs := make(chan error, 16*50)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				cred := fmt.Sprintf("C%d", (g+i)%4)
				l, err := cache.ObtainClient(context.Background(), cred)
				if err != nil {
					errs <- err
					return
				}
				if got := l.Client().(*fakeClient).credential; got != cred {
					errs <- fmt.Errorf("asked for %s, got client for %s", cred, got)
				}
				l.Release()
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	if m := f.maxSeen.Load(); m != 1 {
		t.Fatalf("constructions overlapped: %d in flight", m)
	}
	s := cache.Stats()
	if int(s.Constructions) != f.count() || s.Constructions+s.Hits != 16*50 {
		t.Fatalf("unexpected stats %+v (built %d)", s, f.count())
	}
	for i := 0; i < f.count()-1; i++ {
		if f.client(i).closed.Load() != 1 {
			t.Fatalf("evicted client %d closed %d times", i, f.client(i).closed.Load())
		}
	}
}
