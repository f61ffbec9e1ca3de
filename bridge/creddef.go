package bridge

import (
	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
)

// CredDefCreate creates a cred def object for the schema. The payload is the
// new handle.
func (b *Bridge) CredDefCreate(cmd cmdh.Handle, srcID, schemaID, tag string,
	cb Callback[registry.Handle],
) errcode.Code {
	return dispatch(b, "credentialdef_create", cmd, cb,
		func() error {
			if err := required(errcode.CredDef, "schema ID", schemaID); err != nil {
				return err
			}
			return checkDID(errcode.CredDef, b.cfg.InstitutionDID)
		},
		func() (registry.Handle, error) {
			return b.credDefs.Create(sourceID(srcID), b.cfg.InstitutionDID, schemaID, tag)
		})
}

// CredDefCommit creates the cred def to the wallet and writes it to the
// ledger. The payload is the cred def ID. If the issuer already has one for
// the schema the code is CredDefAlreadyCreated.
func (b *Bridge) CredDefCommit(cmd cmdh.Handle, h, walletH registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "credentialdef_commit", cmd, cb,
		func() error {
			if err := b.credDefs.Check(h); err != nil {
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
			return b.credDefs.Commit(h, w)
		})
}

func (b *Bridge) CredDefGetID(cmd cmdh.Handle, h registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "credentialdef_get_cred_def_id", cmd, cb,
		func() error { return b.credDefs.Check(h) },
		func() (string, error) { return b.credDefs.ID(h) })
}

// CredDefGetState gives the state as its number: 1 built, 2 committed and 3
// already created.
func (b *Bridge) CredDefGetState(cmd cmdh.Handle, h registry.Handle, cb Callback[int]) errcode.Code {
	return dispatch(b, "credentialdef_get_state", cmd, cb,
		func() error { return b.credDefs.Check(h) },
		func() (int, error) {
			st, err := b.credDefs.State(h)
			return int(st), err
		})
}

// CredDefGetData works like SchemaGetData for the cred def JSON.
func (b *Bridge) CredDefGetData(cmd cmdh.Handle, h registry.Handle, buf []byte, cb Callback[int]) errcode.Code {
	return dispatch(b, "credentialdef_get_data", cmd, cb,
		func() error { return b.credDefs.Check(h) },
		func() (int, error) {
			data, err := b.credDefs.Data(h)
			if err != nil {
				return 0, err
			}
			return copyOut(errcode.CredDef, buf, data)
		})
}

func (b *Bridge) CredDefSerialize(cmd cmdh.Handle, h registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "credentialdef_serialize", cmd, cb,
		func() error { return b.credDefs.Check(h) },
		func() (string, error) { return b.credDefs.Serialize(h) })
}

func (b *Bridge) CredDefDeserialize(cmd cmdh.Handle, data string, cb Callback[registry.Handle]) errcode.Code {
	return dispatch(b, "credentialdef_deserialize", cmd, cb,
		func() error { return required(errcode.CredDef, "data", data) },
		func() (registry.Handle, error) { return b.credDefs.Deserialize(data) })
}

func (b *Bridge) CredDefRelease(h registry.Handle) errcode.Code {
	return b.release("credentialdef_release", func() error { return b.credDefs.Release(h) })
}
