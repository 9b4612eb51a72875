package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shamank/smartwallet-console/pkg/blockchain"
	"github.com/shamank/smartwallet-console/pkg/model"
	"github.com/shamank/smartwallet-console/pkg/toolkit"
	"go.uber.org/zap"
)

// DefaultInvokeTimeout bounds an action call when no timeout is configured.
const DefaultInvokeTimeout = 2 * time.Minute

// Response is the outcome of Execute: the envelope sent to callers and the
// failure kind (zero on success).
type Response struct {
	model.ActionResponse
	Kind Kind `json:"-"`
}

// HTTPStatus returns the status code for this response.
func (r Response) HTTPStatus() int { return r.Kind.HTTPStatus() }

// Gateway turns action requests into calls on cached toolkit clients.
type Gateway struct {
	cache         *ClientCache
	invokeTimeout time.Duration
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithInvokeTimeout bounds each action invocation. Non-positive values keep
// the default.
func WithInvokeTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.invokeTimeout = d
		}
	}
}

// New returns a Gateway backed by cache.
func New(cache *ClientCache, opts ...Option) *Gateway {
	g := &Gateway{cache: cache, invokeTimeout: DefaultInvokeTimeout}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Cache returns the client cache used by g.
func (g *Gateway) Cache() *ClientCache { return g.cache }

// Execute validates req, obtains a client, resolves and invokes the action
// and post-processes swap results. Every failure is reported in the
// returned Response; Execute itself never fails.
func (g *Gateway) Execute(ctx context.Context, req model.ActionRequest) Response {
	start := time.Now()
	data, err := g.execute(ctx, req)
	log := zap.L().With(
		zap.String("action", req.ActionName),
		zap.String("fingerprint", blockchain.Fingerprint(req.Credential)),
		zap.Duration("elapsed", time.Since(start)))

	if err != nil {
		var ge *Error
		if !errors.As(err, &ge) {
			ge = newError(KindActionInvocation, err, "Error: %s", errorDetails(err))
		}
		log.Info("action failed", zap.Stringer("kind", ge.Kind), zap.String("error", ge.Message))
		return Response{ActionResponse: model.Failed(ge.Message), Kind: ge.Kind}
	}
	log.Info("action succeeded")
	return Response{ActionResponse: model.Succeeded(data)}
}

func (g *Gateway) execute(ctx context.Context, req model.ActionRequest) (any, error) {
	if strings.TrimSpace(req.Credential) == "" || strings.TrimSpace(req.ActionName) == "" {
		return nil, newError(KindValidation, nil, "Missing credential or actionName")
	}

	lease, err := g.cache.ObtainClient(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	action, ok := lease.Registry().Lookup(req.ActionName)
	if !ok {
		lease.Release()
		return nil, newError(KindActionNotFound, nil, "Tool '%s' not found.", req.ActionName)
	}

	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	result, err := g.invoke(ctx, lease, action, args)
	if err != nil {
		return nil, err
	}

	if req.ActionName == toolkit.ActionSmartSwap {
		if text, ok := result.(string); ok && strings.HasPrefix(text, toolkit.SwapSuccessPrefix) {
			formatted, ferr := FormatSwapResult(text)
			if ferr != nil {
				zap.L().Warn("swap output left unformatted", zap.Error(ferr))
			} else {
				result = formatted
			}
		}
	}
	return result, nil
}

type outcome struct {
	value any
	err   error
}

// invoke runs the action on its own goroutine so the deadline holds even for
// actions that ignore their context. The goroutine owns lease and releases it
// when the action returns, so a client is never closed under a running call.
func (g *Gateway) invoke(ctx context.Context, lease *Lease, action toolkit.Action, args map[string]any) (any, error) {
	c, cancel := context.WithTimeout(ctx, g.invokeTimeout)
	defer cancel()

	done := make(chan outcome, 1)
	finish := func(o outcome) {
		lease.Release()
		done <- o
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("action panicked", zap.String("action", action.Name()), zap.Any("panic", r))
				finish(outcome{err: &panicError{value: r}})
			}
		}()
		v, err := action.Invoke(c, args)
		finish(outcome{value: v, err: err})
	}()

	select {
	case o := <-done:
		if o.err == nil {
			return o.value, nil
		}
		if errors.Is(o.err, context.DeadlineExceeded) && ctx.Err() == nil && c.Err() != nil {
			return nil, g.timeoutError(action, o.err)
		}
		return nil, newError(KindActionInvocation, o.err, "Error: %s", errorDetails(o.err))
	case <-c.Done():
		if ctx.Err() != nil {
			return nil, newError(KindActionInvocation, ctx.Err(), "Error: %s", ctx.Err().Error())
		}
		return nil, g.timeoutError(action, c.Err())
	}
}

func (g *Gateway) timeoutError(action toolkit.Action, err error) *Error {
	return newError(KindTimeout, err, "Error: action '%s' timed out after %s", action.Name(), g.invokeTimeout)
}

// Describe lists the actions offered by the client for credential.
func (g *Gateway) Describe(ctx context.Context, credential string) ([]model.ToolInfo, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, newError(KindValidation, nil, "Missing credential")
	}
	lease, err := g.cache.ObtainClient(ctx, credential)
	if err != nil {
		return nil, err
	}
	defer lease.Release()
	return lease.Registry().Describe(), nil
}
