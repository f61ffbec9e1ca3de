/*
Package bridge is the asynchronous command and callback layer between foreign
callers and the domain state machines. Every operation takes the caller's
command handle and a callback, and the callback is called exactly once with the
same command handle, a stable error code and the payload.

Argument validation is done synchronously: a failure calls the callback before
the operation returns and the same code is returned. Otherwise the operation
returns Success and the work runs on its own goroutine, from which the callback
is called. A nil callback is rejected with InvalidOption without a call.
*/
package bridge

import (
	"sync"
	"time"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/connection"
	"github.com/findy-network/findy-vcx/agent/creddef"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/schema"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-vcx/agent/store"
	"github.com/findy-network/findy-vcx/agent/wallet"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/prometheus/client_golang/prometheus"
)

// Callback receives the result of one operation. The payload is the zero value
// when the code is not Success, except with BufferTooSmall it is the required
// buffer size.
type Callback[R any] func(cmd cmdh.Handle, code errcode.Code, r R)

// None is the payload of the operations which only report the status.
type None struct{}

// Lookup is the payload of the schema attribute query.
type Lookup struct {
	Handle uint32
	Attrs  string
}

type Option func(*Bridge)

// WithRegisterer sets the Prometheus registerer of the bridge metrics. By
// default the bridge has its own registry.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(b *Bridge) {
		b.registerer = r
	}
}

// WithIndex sets the store of the committed objects. By default it is
// opened from Config.StorePath, or kept in memory if the path is empty.
func WithIndex(idx store.Index) Option {
	return func(b *Bridge) {
		b.index = idx
	}
}

// Bridge owns the registries of all the object kinds.
type Bridge struct {
	cfg        Config
	sdk        sdk.SDK
	cmds       cmdh.Allocator
	registerer prometheus.Registerer
	metrics    *metrics
	cron       *gocron.Scheduler

	index store.Index
	db    *store.Store

	schemas     *schema.Service
	credDefs    *creddef.Service
	wallets     *wallet.Service
	connections *connection.Service

	life     sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// New creates the bridge and its registries.
func New(cfg Config, s sdk.SDK, opts ...Option) (b *Bridge, err error) {
	defer err2.Handle(&err, "bridge")

	if s == nil {
		return nil, errcode.Common.New(errcode.InvalidOption, "SDK is required")
	}
	b = &Bridge{cfg: cfg, sdk: s}
	for _, opt := range opts {
		opt(b)
	}
	if b.registerer == nil {
		b.registerer = prometheus.NewRegistry()
	}
	b.metrics = try.To1(newMetrics(b.registerer))
	defer func() {
		if err != nil {
			b.metrics.unregister()
		}
	}()

	if b.index == nil && cfg.StorePath != "" {
		b.db = store.New(store.Config{
			Key:      cfg.StoreKey,
			FileName: "vcx",
			FilePath: cfg.StorePath,
		})
		if err := b.db.Init(); err != nil {
			return nil, errcode.Common.New(errcode.StoreError, "%v", err)
		}
		b.index = b.db
	}
	if b.index == nil {
		b.index = store.NewMemory()
	}

	b.schemas = schema.NewService(s, b.index)
	b.credDefs = creddef.NewService(s, b.index)
	b.wallets = wallet.NewService(s, cfg.MaxOpenWallets)
	b.connections = connection.NewService(s)

	if cfg.StatsInterval > 0 {
		b.cron = gocron.NewScheduler(time.Now().Location())
		try.To1(b.cron.Every(cfg.StatsInterval).Minutes().Do(b.collectStats))
		b.cron.StartAsync()
	}
	glog.V(1).Infoln("bridge initialized, pool:", cfg.PoolName)
	return b, nil
}

// Config returns the configuration the bridge is created with.
func (b *Bridge) Config() Config {
	return b.cfg
}

// Shutdown rejects the new operations, waits for the running ones and
// releases every object of every registry. Open wallets are closed. The first
// failure is returned, the rest are logged.
func (b *Bridge) Shutdown() error {
	b.life.Lock()
	if b.closed {
		b.life.Unlock()
		return errcode.ErrNotInitialized
	}
	b.closed = true
	b.life.Unlock()

	if b.cron != nil {
		b.cron.Stop()
	}
	b.inflight.Wait()

	var first error
	for _, release := range []func() error{
		b.connections.ReleaseAll,
		b.credDefs.ReleaseAll,
		b.schemas.ReleaseAll,
		b.wallets.ReleaseAll,
	} {
		if err := release(); err != nil {
			if first == nil {
				first = err
			} else {
				glog.Warningln("shutdown:", err)
			}
		}
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil && first == nil {
			first = errcode.Common.New(errcode.StoreError, "%v", err)
		}
	}
	b.metrics.unregister()
	glog.V(1).Infoln("bridge shut down")
	return first
}

// ErrorMessage returns the catalog message of the code.
func ErrorMessage(code errcode.Code) string {
	return errcode.Text(code)
}

type result[R any] struct {
	code errcode.Code
	val  R
}

// dispatch is the one place where the callback contract is kept. check is run
// synchronously and work on a new goroutine. Both may be nil.
func dispatch[R any](b *Bridge, op string, cmd cmdh.Handle, cb Callback[R],
	check func() error, work func() (R, error),
) errcode.Code {
	if cb == nil {
		b.metrics.call(op, errcode.InvalidOption, 0)
		return errcode.InvalidOption
	}
	id := b.cmds.Next()
	start := time.Now()
	slot := async.NewSlot(func(r result[R]) {
		b.metrics.call(op, r.code, time.Since(start))
		glog.V(3).Infof("%s [%d/%d] -> %d", op, cmd, id, r.code)
		cb(cmd, r.code, r.val)
	})
	complete := func(v R, err error) {
		r := result[R]{code: errcode.Of(err)}
		if err != nil {
			glog.V(3).Infof("%s [%d/%d] error: %v", op, cmd, id, err)
		}
		if err == nil || r.code == errcode.BufferTooSmall {
			r.val = v
		}
		if !slot.Complete(r) {
			b.metrics.dropped.Inc()
			glog.Warningf("%s [%d/%d] second completion dropped", op, cmd, id)
		}
	}
	var zero R

	b.life.RLock()
	if b.closed {
		b.life.RUnlock()
		complete(zero, errcode.ErrNotInitialized)
		return errcode.NotInitialized
	}
	if check != nil {
		if err := check(); err != nil {
			b.life.RUnlock()
			complete(zero, err)
			return errcode.Of(err)
		}
	}
	b.inflight.Add(1)
	b.life.RUnlock()

	b.metrics.inflight.Inc()
	go func() {
		defer b.inflight.Done()
		defer b.metrics.inflight.Dec()
		defer func() {
			if r := recover(); r != nil {
				glog.Errorf("%s [%d/%d] panic: %v", op, cmd, id, r)
				complete(zero, errcode.Common.New(errcode.UnknownError, "%v", r))
			}
		}()
		if work == nil {
			complete(zero, nil)
			return
		}
		complete(work())
	}()
	return errcode.Success
}

// release is the synchronous release of the handle.
func (b *Bridge) release(op string, f func() error) errcode.Code {
	b.life.RLock()
	defer b.life.RUnlock()
	if b.closed {
		return errcode.NotInitialized
	}
	code := errcode.Of(f())
	b.metrics.call(op, code, 0)
	return code
}

// copyOut copies the data to the buffer with the terminating zero byte. It
// returns the count of the bytes written, or the required size with
// BufferTooSmall.
func copyOut(d errcode.Domain, buf []byte, data string) (int, error) {
	need := len(data) + 1
	if len(buf) < need {
		return need, d.New(errcode.BufferTooSmall, "need %d bytes, got %d", need, len(buf))
	}
	copy(buf, data)
	buf[len(data)] = 0
	return need, nil
}
