/*
Command capi is the C callable library of the bridge. Build it with

	go build -buildmode=c-shared -o libvcx.so ./capi

Every vcx_ function takes the caller's command handle and a callback, and
returns 0 when the call is accepted. A rejected call returns the error code and
the callback has already been called with it, except when the callback is
NULL. String arguments are NUL terminated and copied before the call returns.
*/
package main

/*
#include <stdlib.h>
#include "vcx.h"
*/
import "C"

import (
	"sync"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/pool"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/indy"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	l        sync.RWMutex
	instance *bridge.Bridge
	initing  bool

	messages sync.Map // errcode.Code -> *C.char
)

func main() {}

func current() *bridge.Bridge {
	l.RLock()
	defer l.RUnlock()
	return instance
}

// notInitialized calls the callback with NotInitialized and returns the code.
func notInitialized[R any](cmd C.vcx_command_handle_t, cb bridge.Callback[R]) C.vcx_error_t {
	if cb == nil {
		return C.vcx_error_t(errcode.InvalidOption)
	}
	var zero R
	cb(cmdh.Handle(cmd), errcode.NotInitialized, zero)
	return C.vcx_error_t(errcode.NotInitialized)
}

//export vcx_init
func vcx_init(cmd C.vcx_command_handle_t, config *C.char, cb C.vcx_status_cb) C.vcx_error_t {
	done := statusCB(cb)
	if done == nil {
		return C.vcx_error_t(errcode.InvalidOption)
	}
	cfg, err := bridge.ParseConfig(C.GoString(config))
	if err != nil {
		done(cmdh.Handle(cmd), errcode.Of(err), bridge.None{})
		return C.vcx_error_t(errcode.Of(err))
	}

	l.Lock()
	if instance != nil || initing {
		l.Unlock()
		done(cmdh.Handle(cmd), errcode.AlreadyInitialized, bridge.None{})
		return C.vcx_error_t(errcode.AlreadyInitialized)
	}
	initing = true
	l.Unlock()

	slot := async.NewSlot(func(code errcode.Code) {
		done(cmdh.Handle(cmd), code, bridge.None{})
	})
	go func() {
		var b *bridge.Bridge
		var err error
		defer func() {
			if r := recover(); r != nil {
				glog.Errorln("init panic:", r)
				err = errcode.ErrUnknown
			}
			l.Lock()
			instance, initing = b, false
			l.Unlock()
			slot.Complete(errcode.Of(err))
		}()

		if cfg.PoolName != "" {
			if _, err = pool.Open(cfg.PoolName); err != nil {
				return
			}
		}
		b, err = bridge.New(cfg, indy.New(), bridge.WithRegisterer(prometheus.DefaultRegisterer))
	}()
	return C.vcx_error_t(errcode.Success)
}

// vcx_shutdown releases every object and closes the pool. The library can be
// initialized again after it.
//
//export vcx_shutdown
func vcx_shutdown() C.vcx_error_t {
	l.Lock()
	b := instance
	instance = nil
	l.Unlock()

	if b == nil {
		return C.vcx_error_t(errcode.NotInitialized)
	}
	err := b.Shutdown()
	pool.Close()
	return C.vcx_error_t(errcode.Of(err))
}

// vcx_error_c_message returns the static message of the code. The caller must
// not free it.
//
//export vcx_error_c_message
func vcx_error_c_message(code C.vcx_error_t) *C.char {
	c := errcode.Code(code)
	if m, ok := messages.Load(c); ok {
		return m.(*C.char)
	}
	m, _ := messages.LoadOrStore(c, C.CString(bridge.ErrorMessage(c)))
	return m.(*C.char)
}
