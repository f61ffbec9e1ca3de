package schema

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

// CreateCmd creates the schema and writes it to the ledger.
type CreateCmd struct {
	cmds.Cmd
	Name    string
	Version string
	Attrs   []string
}

func (c CreateCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Name == "" || c.Version == "" {
		return errors.New("schema name and version are required")
	}
	if len(c.Attrs) == 0 {
		return errors.New("attrs cannot be empty")
	}
	return nil
}

type CreateResult struct {
	ID    string `json:"id"`
	SeqNo int    `json:"seqNo"`
}

func (r CreateResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c CreateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "schema create")

	attrs := string(try.To1(json.Marshal(c.Attrs)))

	return c.Cmd.Exec(func(e cmds.Edge) (cmds.Result, error) {
		h := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[registry.Handle]) errcode.Code {
			return e.SchemaCreate(cmd, "", c.Name, c.Version, attrs, cb)
		}))
		defer e.SchemaRelease(h)

		id := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[string]) errcode.Code {
			return e.SchemaCommit(cmd, h, e.Wallet, cb)
		}))
		seqNo := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[int]) errcode.Code {
			return e.SchemaGetSeqNo(cmd, h, cb)
		}))
		cmds.Fprintln(w, "schema id:", id)
		cmds.Fprintln(w, "seq no:", seqNo)
		return CreateResult{ID: id, SeqNo: seqNo}, nil
	})
}
