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

//export vcx_schema_create
func vcx_schema_create(cmd C.vcx_command_handle_t, sourceID, name, version, attrs *C.char,
	cb C.vcx_handle_cb,
) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, handleCB(cb))
	}
	return C.vcx_error_t(b.SchemaCreate(cmdh.Handle(cmd), C.GoString(sourceID),
		C.GoString(name), C.GoString(version), C.GoString(attrs), handleCB(cb)))
}

//export vcx_schema_commit
func vcx_schema_commit(cmd C.vcx_command_handle_t, h, wallet C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.SchemaCommit(cmdh.Handle(cmd), registry.Handle(h),
		registry.Handle(wallet), stringCB(cb)))
}

//export vcx_schema_get_seq_no
func vcx_schema_get_seq_no(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_int_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, intCB(cb))
	}
	return C.vcx_error_t(b.SchemaGetSeqNo(cmdh.Handle(cmd), registry.Handle(h), intCB(cb)))
}

//export vcx_schema_get_schema_id
func vcx_schema_get_schema_id(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.SchemaGetID(cmdh.Handle(cmd), registry.Handle(h), stringCB(cb)))
}

//export vcx_schema_get_attributes
func vcx_schema_get_attributes(cmd C.vcx_command_handle_t, sourceID, schemaID *C.char,
	cb C.vcx_lookup_cb,
) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, lookupCB(cb))
	}
	return C.vcx_error_t(b.SchemaGetAttributes(cmdh.Handle(cmd), C.GoString(sourceID),
		C.GoString(schemaID), lookupCB(cb)))
}

// vcx_schema_get_data writes the schema JSON with the terminating NUL to buf.
// The callback gets the written size, or the required size with
// BufferTooSmall.
//
//export vcx_schema_get_data
func vcx_schema_get_data(cmd C.vcx_command_handle_t, h C.uint32_t, buf *C.char, size C.uint32_t,
	cb C.vcx_int_cb,
) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, intCB(cb))
	}
	return C.vcx_error_t(b.SchemaGetData(cmdh.Handle(cmd), registry.Handle(h),
		buffer(buf, size), intCB(cb)))
}

//export vcx_schema_serialize
func vcx_schema_serialize(cmd C.vcx_command_handle_t, h C.uint32_t, cb C.vcx_string_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, stringCB(cb))
	}
	return C.vcx_error_t(b.SchemaSerialize(cmdh.Handle(cmd), registry.Handle(h), stringCB(cb)))
}

//export vcx_schema_deserialize
func vcx_schema_deserialize(cmd C.vcx_command_handle_t, data *C.char, cb C.vcx_handle_cb) C.vcx_error_t {
	b := current()
	if b == nil {
		return notInitialized(cmd, handleCB(cb))
	}
	return C.vcx_error_t(b.SchemaDeserialize(cmdh.Handle(cmd), C.GoString(data), handleCB(cb)))
}

//export vcx_schema_release
func vcx_schema_release(h C.uint32_t) C.vcx_error_t {
	b := current()
	if b == nil {
		return C.vcx_error_t(errcode.NotInitialized)
	}
	return C.vcx_error_t(b.SchemaRelease(registry.Handle(h)))
}
