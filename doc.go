/*
Package main is the findy-vcx CLI. The module offers a handle based bridge for
the credential exchange objects of the identity SDK: schemas, credential
definitions, wallets and connections. Callers get small integer handles for the
objects, and every long running operation completes through a callback with
the caller's command handle, a stable error code and the result.

The module can be used three ways:

1. As a C shared library. The capi package exports the vcx_* functions and is
built with:

	go build -buildmode=c-shared -o libvcx.so ./capi

2. As a Go library. The bridge package is the same API for Go callers, and the
identity SDK is given to it as the sdk.SDK interface.

3. As a CLI tool for setting up issuer wallets, writing schemas and credential
definitions to the ledger and creating connection invitations.

# About the build-in CLI

The CLI uses the bridge synchronously: every command creates the bridge, opens
the wallet, waits the callbacks one by one and releases everything before it
exits. The bridge config is given as JSON with the --bridge-config flag or the
VCX_BRIDGE_CONFIG environment variable, and every config key can be overridden
with its own VCX_ prefixed variable, e.g. VCX_POOL_NAME.

	findy-vcx wallet create --wallet-name issuer --wallet-key $KEY
	findy-vcx schema create --wallet-name issuer --wallet-key $KEY \
		--name email --version 1.0 --attributes email,name

Logging is glog, and its flags are given with --logging, for example
--logging "-logtostderr=true -v=3" shows every bridge call.
*/
package main
