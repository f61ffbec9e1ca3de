package creddef

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// CreateCmd creates the credential definition for the schema and writes it
// to the ledger.
type CreateCmd struct {
	cmds.Cmd
	SchemaID string
	Tag      string
}

func (c CreateCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.SchemaID == "" {
		return errors.New("schema id cannot be empty")
	}
	return nil
}

type CreateResult struct {
	ID string `json:"id"`
}

func (r CreateResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c CreateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "cred def create")

	return c.Cmd.Exec(func(e cmds.Edge) (cmds.Result, error) {
		h := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[registry.Handle]) errcode.Code {
			return e.CredDefCreate(cmd, "", c.SchemaID, c.Tag, cb)
		}))
		defer e.CredDefRelease(h)

		id := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[string]) errcode.Code {
			return e.CredDefCommit(cmd, h, e.Wallet, cb)
		}))
		cmds.Fprintln(w, "cred def id:", id)
		return CreateResult{ID: id}, nil
	})
}
