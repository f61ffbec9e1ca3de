package main

/*
#include "vcx.h"
*/
import "C"

import (
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/registry"
)

// vcx_wallet_create creates the wallet. The bool of the callback tells if the
// wallet already existed.
//
//export vcx_wallet_create
func vcx_wallet_create(cmd C.vcx_command_handle_t, name, key *C.char, cb C.vcx_bool_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, boolCB(cb))
	}
	return C.vcx_error_t(b.WalletCreate(cmdh.Handle(cmd), C.GoString(name), C.GoString(key), boolCB(cb)))
}

//export vcx_wallet_open
func vcx_wallet_open(cmd C.vcx_command_handle_t, name, key *C.char, cb C.vcx_handle_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, handleCB(cb))
	}
	return C.vcx_error_t(b.WalletOpen(cmdh.Handle(cmd), C.GoString(name), C.GoString(key), handleCB(cb)))
}

//export vcx_wallet_close
func vcx_wallet_close(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_status_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, statusCB(cb))
	}
	return C.vcx_error_t(b.WalletClose(cmdh.Handle(cmd), registry.Handle(h), statusCB(cb)))
}
