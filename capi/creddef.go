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

//export vcx_credentialdef_create
func vcx_credentialdef_create(cmd C.vcx_command_handle_t, sourceID, schemaID, tag *C.char,
	cb C.vcx_handle_cb,
) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, handleCB(cb))
	}
	return C.vcx_error_t(b.CredDefCreate(cmdh.Handle(cmd), C.GoString(sourceID),
		C.GoString(schemaID), C.GoString(tag), handleCB(cb)))
}

//export vcx_credentialdef_commit
func vcx_credentialdef_commit(cmd C.vcx_command_handle_t, h, wallet C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.CredDefCommit(cmdh.Handle(cmd), registry.Handle(h),
		registry.Handle(wallet), stringCB(cb)))
}

//export vcx_credentialdef_get_cred_def_id
func vcx_credentialdef_get_cred_def_id(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.CredDefGetID(cmdh.Handle(cmd), registry.Handle(h), stringCB(cb)))
}

//export vcx_credentialdef_get_state
func vcx_credentialdef_get_state(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_int_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, intCB(cb))
	}
	return C.vcx_error_t(b.CredDefGetState(cmdh.Handle(cmd), registry.Handle(h), intCB(cb)))
}

//export vcx_credentialdef_get_data
func vcx_credentialdef_get_data(cmd C.vcx_command_handle_t, h C.uint32_t, buf *C.char, size C.uint32_t,
	cb C.vcx_int_cb,
) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, intCB(cb))
	}
	return C.vcx_error_t(b.CredDefGetData(cmdh.Handle(cmd), registry.Handle(h),
		buffer(buf, size), intCB(cb)))
}

//export vcx_credentialdef_serialize
func vcx_credentialdef_serialize(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.CredDefSerialize(cmdh.Handle(cmd), registry.Handle(h), stringCB(cb)))
}

//export vcx_credentialdef_deserialize
func vcx_credentialdef_deserialize(cmd C.vcx_command_handle_t, data *C.char, cb C.vcx_handle_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, handleCB(cb))
	}
	return C.vcx_error_t(b.CredDefDeserialize(cmdh.Handle(cmd), C.GoString(data), handleCB(cb)))
}

//export vcx_credentialdef_release
func vcx_credentialdef_release(h C.uint32_t) C.vcx_error_t {
	b := current()
	if b == nil {
		return C.vcx_error_t(errcode.NotInitialized)
	}
	return C.vcx_error_t(b.CredDefRelease(registry.Handle(h)))
}
