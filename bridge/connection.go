package bridge

import (
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
)

func (b *Bridge) ConnectionCreate(cmd cmdh.Handle, srcID string, cb Callback[registry.Handle]) errcode.Code {
	return dispatch(b, "connection_create", cmd, cb, nil,
		func() (registry.Handle, error) {
			id := sourceID(srcID)
			return b.connections.Create(id, id), nil
		})
}

// ConnectionConnect creates the pairwise DID to the wallet. The payload is the
// invite details JSON.
func (b *Bridge) ConnectionConnect(cmd cmdh.Handle, h, walletH registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "connection_connect", cmd, cb,
		func() error {
			if err := b.connections.Check(h); err != nil {
				return err
			}
			_, err := b.wallets.Native(walletH)
			return err
		},
		func() (string, error) {
			w, err := b.wallets.Native(walletH)
			if err != nil {
				return "", err
			}
			if _, err := b.connections.Connect(h, w, b.cfg.ServiceEndpoint); err != nil {
				return "", err
			}
			return b.connections.InviteDetails(h)
		})
}

func (b *Bridge) ConnectionGetState(cmd cmdh.Handle, h registry.Handle, cb Callback[int]) errcode.Code {
	return dispatch(b, "connection_get_state", cmd, cb,
		func() error { return b.connections.Check(h) },
		func() (int, error) {
			st, err := b.connections.State(h)
			return int(st), err
		})
}

func (b *Bridge) ConnectionInviteDetails(cmd cmdh.Handle, h registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "connection_invite_details", cmd, cb,
		func() error { return b.connections.Check(h) },
		func() (string, error) { return b.connections.InviteDetails(h) })
}

func (b *Bridge) ConnectionSerialize(cmd cmdh.Handle, h registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "connection_serialize", cmd, cb,
		func() error { return b.connections.Check(h) },
		func() (string, error) { return b.connections.Serialize(h) })
}

func (b *Bridge) ConnectionRelease(h registry.Handle) errcode.Code {
	return b.release("connection_release", func() error { return b.connections.Release(h) })
}
