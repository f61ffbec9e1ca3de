package bridge

import (
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
)

// WalletCreate creates the wallet. The payload tells if it already existed,
// which is not an error.
func (b *Bridge) WalletCreate(cmd cmdh.Handle, name, key string, cb Callback[bool]) errcode.Code {
	return dispatch(b, "wallet_create", cmd, cb,
		func() error {
			if err := required(errcode.Wallet, "name", name); err != nil {
				return err
			}
			return required(errcode.Wallet, "key", key)
		},
		func() (bool, error) { return b.wallets.Create(name, key) })
}

// WalletOpen opens the wallet. The payload is the wallet handle. The same
// name cannot be open twice.
func (b *Bridge) WalletOpen(cmd cmdh.Handle, name, key string, cb Callback[registry.Handle]) errcode.Code {
	return dispatch(b, "wallet_open", cmd, cb,
		func() error {
			if err := required(errcode.Wallet, "name", name); err != nil {
				return err
			}
			return required(errcode.Wallet, "key", key)
		},
		func() (registry.Handle, error) { return b.wallets.Open(name, key) })
}

// WalletClose closes the wallet and releases its handle.
func (b *Bridge) WalletClose(cmd cmdh.Handle, h registry.Handle, cb Callback[None]) errcode.Code {
	return dispatch(b, "wallet_close", cmd, cb,
		func() error {
			_, err := b.wallets.Native(h)
			return err
		},
		func() (None, error) { return None{}, b.wallets.Close(h) })
}
