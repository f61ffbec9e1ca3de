package bridge

import (
	"encoding/json"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
)

// SchemaCreate builds a schema. attrs is a JSON array of the attribute names.
// The payload is the new schema handle.
func (b *Bridge) SchemaCreate(cmd cmdh.Handle, srcID, name, version, attrs string,
	cb Callback[registry.Handle],
) errcode.Code {
	var names []string
	return dispatch(b, "schema_create", cmd, cb,
		func() (err error) {
			if err = required(errcode.Schema, "name", name); err != nil {
				return err
			}
			if err = required(errcode.Schema, "version", version); err != nil {
				return err
			}
			if err = checkDID(errcode.Schema, b.cfg.InstitutionDID); err != nil {
				return err
			}
			names, err = parseStrings(errcode.Schema, attrs)
			return err
		},
		func() (registry.Handle, error) {
			return b.schemas.Create(sourceID(srcID), b.cfg.InstitutionDID, name, version, names)
		})
}

// SchemaCommit writes the schema to the ledger with the wallet. The payload is
// the schema ID. Committing again gives the same payload without a ledger
// write.
func (b *Bridge) SchemaCommit(cmd cmdh.Handle, h, walletH registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "schema_commit", cmd, cb,
		func() error {
			if err := b.schemas.Check(h); err != nil {
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
			return b.schemas.Commit(h, w, b.cfg.InstitutionDID)
		})
}

// SchemaGetSeqNo returns the ledger's sequence number of a committed schema.
func (b *Bridge) SchemaGetSeqNo(cmd cmdh.Handle, h registry.Handle, cb Callback[int]) errcode.Code {
	return dispatch(b, "schema_get_seq_no", cmd, cb,
		func() error { return b.schemas.Check(h) },
		func() (int, error) { return b.schemas.SeqNo(h) })
}

func (b *Bridge) SchemaGetID(cmd cmdh.Handle, h registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "schema_get_id", cmd, cb,
		func() error { return b.schemas.Check(h) },
		func() (string, error) { return b.schemas.ID(h) })
}

// SchemaGetAttributes registers a committed schema by its ledger ID. The
// payload has the new handle and the attribute names as a JSON array.
func (b *Bridge) SchemaGetAttributes(cmd cmdh.Handle, srcID, schemaID string, cb Callback[Lookup]) errcode.Code {
	return dispatch(b, "schema_get_attributes", cmd, cb,
		func() error { return required(errcode.Schema, "schema ID", schemaID) },
		func() (l Lookup, err error) {
			h, err := b.schemas.Lookup(sourceID(srcID), b.cfg.InstitutionDID, schemaID)
			if err != nil {
				return l, err
			}
			attrs, err := b.schemas.Attributes(h)
			if err != nil {
				return l, err
			}
			data, err := json.Marshal(attrs)
			if err != nil {
				return l, errcode.Schema.New(errcode.InvalidJSON, "%v", err)
			}
			return Lookup{Handle: h, Attrs: string(data)}, nil
		})
}

// SchemaGetData copies the schema JSON to buf. The payload is the count of
// the bytes written including the terminating zero. If buf is too short
// nothing is written and the payload is the required size.
func (b *Bridge) SchemaGetData(cmd cmdh.Handle, h registry.Handle, buf []byte, cb Callback[int]) errcode.Code {
	return dispatch(b, "schema_get_data", cmd, cb,
		func() error { return b.schemas.Check(h) },
		func() (int, error) {
			data, err := b.schemas.Data(h)
			if err != nil {
				return 0, err
			}
			return copyOut(errcode.Schema, buf, data)
		})
}

func (b *Bridge) SchemaSerialize(cmd cmdh.Handle, h registry.Handle, cb Callback[string]) errcode.Code {
	return dispatch(b, "schema_serialize", cmd, cb,
		func() error { return b.schemas.Check(h) },
		func() (string, error) { return b.schemas.Serialize(h) })
}

func (b *Bridge) SchemaDeserialize(cmd cmdh.Handle, data string, cb Callback[registry.Handle]) errcode.Code {
	return dispatch(b, "schema_deserialize", cmd, cb,
		func() error { return required(errcode.Schema, "data", data) },
		func() (registry.Handle, error) { return b.schemas.Deserialize(data) })
}

// SchemaRelease releases the handle synchronously.
func (b *Bridge) SchemaRelease(h registry.Handle) errcode.Code {
	return b.release("schema_release", func() error { return b.schemas.Release(h) })
}
