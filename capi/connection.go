package main

/*
#include "vcx.h"
*/
import "C"

import (
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
)

//export vcx_connection_create
func vcx_connection_create(cmd C.vcx_command_handle_t, sourceID *C.char, cb C.vcx_handle_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, handleCB(cb))
	}
	return C.vcx_error_t(b.ConnectionCreate(cmdh.Handle(cmd), C.GoString(sourceID), handleCB(cb)))
}

// vcx_connection_connect gives the invite details JSON to the callback.
//
//export vcx_connection_connect
func vcx_connection_connect(cmd C.vcx_command_handle_t, h, wallet C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.ConnectionConnect(cmdh.Handle(cmd), registry.Handle(h),
		registry.Handle(wallet), stringCB(cb)))
}

//export vcx_connection_get_state
func vcx_connection_get_state(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_int_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, intCB(cb))
	}
	return C.vcx_error_t(b.ConnectionGetState(cmdh.Handle(cmd), registry.Handle(h), intCB(cb)))
}

//export vcx_connection_invite_details
func vcx_connection_invite_details(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.ConnectionInviteDetails(cmdh.Handle(cmd), registry.Handle(h), stringCB(cb)))
}

//export vcx_connection_serialize
func vcx_connection_serialize(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.ConnectionSerialize(cmdh.Handle(cmd), registry.Handle(h), stringCB(cb)))
}

//export vcx_connection_release
func vcx_connection_release(h C.uint32_t) C.vcx_error_t {
	b := current()
	if b == nil {
		return C.vcx_error_t(errcode.NotInitialized)
	}
	return C.vcx_error_t(b.ConnectionRelease(registry.Handle(h)))
}
