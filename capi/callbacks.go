package main

/*
#include <stdlib.h>
#include "vcx.h"

static void call_status(vcx_status_cb cb, vcx_command_handle_t cmd, vcx_error_t err) {
	cb(cmd, err);
}
static void call_handle(vcx_handle_cb cb, vcx_command_handle_t cmd, vcx_error_t err, uint32_t h) {
	cb(cmd, err, h);
}
static void call_string(vcx_string_cb cb, vcx_command_handle_t cmd, vcx_error_t err, const char *s) {
	cb(cmd, err, s);
}
static void call_int(vcx_int_cb cb, vcx_command_handle_t cmd, vcx_error_t err, int32_t v) {
	cb(cmd, err, v);
}
static void call_bool(vcx_bool_cb cb, vcx_command_handle_t cmd, vcx_error_t err, bool v) {
	cb(cmd, err, v);
}
static void call_lookup(vcx_lookup_cb cb, vcx_command_handle_t cmd, vcx_error_t err, uint32_t h, const char *attrs) {
	cb(cmd, err, h, attrs);
}
*/
import "C"

import (
	"unsafe"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/bridge"
)

// The converters return nil for a nil function pointer, which the bridge
// rejects with InvalidOption.

func statusCB(cb C.vcx_status_cb) bridge.Callback[bridge.None] {
	if cb == nil {
		return nil
	}
	return func(cmd cmdh.Handle, code errcode.Code, _ bridge.None) {
		C.call_status(cb, C.vcx_command_handle_t(cmd), C.vcx_error_t(code))
	}
}

func handleCB(cb C.vcx_handle_cb) bridge.Callback[registry.Handle] {
	if cb == nil {
		return nil
	}
	return func(cmd cmdh.Handle, code errcode.Code, h registry.Handle) {
		C.call_handle(cb, C.vcx_command_handle_t(cmd), C.vcx_error_t(code), C.uint32_t(h))
	}
}

// stringCB passes a C copy of the string which is valid only during the
// callback. An empty result is passed as NULL.
func stringCB(cb C.vcx_string_cb) bridge.Callback[string] {
	if cb == nil {
		return nil
	}
	return func(cmd cmdh.Handle, code errcode.Code, s string) {
		var cs *C.char
		if s != "" {
			cs = C.CString(s)
			defer C.free(unsafe.Pointer(cs))
		}
		C.call_string(cb, C.vcx_command_handle_t(cmd), C.vcx_error_t(code), cs)
	}
}

func intCB(cb C.vcx_int_cb) bridge.Callback[int] {
	if cb == nil {
		return nil
	}
	return func(cmd cmdh.Handle, code errcode.Code, v int) {
		C.call_int(cb, C.vcx_command_handle_t(cmd), C.vcx_error_t(code), C.int32_t(v))
	}
}

func boolCB(cb C.vcx_bool_cb) bridge.Callback[bool] {
	if cb == nil {
		return nil
	}
	return func(cmd cmdh.Handle, code errcode.Code, v bool) {
		C.call_bool(cb, C.vcx_command_handle_t(cmd), C.vcx_error_t(code), C.bool(v))
	}
}

func lookupCB(cb C.vcx_lookup_cb) bridge.Callback[bridge.Lookup] {
	if cb == nil {
		return nil
	}
	return func(cmd cmdh.Handle, code errcode.Code, l bridge.Lookup) {
		var cs *C.char
		if l.Attrs != "" {
			cs = C.CString(l.Attrs)
			defer C.free(unsafe.Pointer(cs))
		}
		C.call_lookup(cb, C.vcx_command_handle_t(cmd), C.vcx_error_t(code), C.uint32_t(l.Handle), cs)
	}
}

// buffer returns the caller's C buffer as a slice. The caller keeps it valid
// until the callback.
func buffer(buf *C.char, size C.uint32_t) []byte {
	if buf == nil || size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(size))
}
