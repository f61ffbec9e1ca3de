// Package pool keeps the process wide ledger pool connection which the SDK
// adapter uses for the ledger reads and writes.
package pool

import (
	"sync"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/errcode"
	indypool "github.com/findy-network/findy-wrapper-go/pool"
	"github.com/golang/glog"
)

var (
	l    sync.Mutex
	pool *async.Future
	name string
)

// Open opens the ledger connection the first time it's called. After that it
// returns the previous handle and a different pool name is only logged. To
// open another pool Close must be called first.
func Open(poolName string) (h int, err error) {
	l.Lock()
	defer l.Unlock()

	if h = handle(); h > 0 {
		if poolName != name {
			glog.Warningf("pool %s already open, %s not opened", name, poolName)
		}
		return h, nil
	}
	f := async.NewFuture(indypool.OpenLedger(poolName))
	if code, e := f.Err(); e != nil {
		return 0, errcode.Common.New(errcode.NoPoolOpen, "open %s: %v (%d)", poolName, e, code)
	}
	pool = f
	name = poolName
	glog.V(1).Infoln("pool", poolName, "opened")
	return pool.Int(), nil
}

// Close closes the ledger connection if it's open.
func Close() {
	l.Lock()
	defer l.Unlock()

	if old := handle(); old != 0 {
		async.NewFuture(indypool.CloseLedger(old)).Int() // wait the close
		pool = nil
		glog.V(1).Infoln("pool", name, "closed")
		name = ""
	}
}

// Handle returns the pool handle or zero if the pool is not open.
func Handle() int {
	l.Lock()
	defer l.Unlock()
	return handle()
}

func handle() int {
	if pool == nil {
		return 0
	}
	return pool.Int()
}
