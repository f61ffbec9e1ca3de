package schema

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// GetCmd reads the schema attributes by the ledger ID.
type GetCmd struct {
	cmds.Cmd
	ID string
}

func (c GetCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		return errors.New("schema id cannot be empty")
	}
	return nil
}

type GetResult struct {
	ID    string   `json:"id"`
	Attrs []string `json:"attrNames"`
}

func (r GetResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c GetCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "schema get %s", c.ID)

	return c.ExecBridge(func(b *bridge.Bridge) (cmds.Result, error) {
		l := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[bridge.Lookup]) errcode.Code {
			return b.SchemaGetAttributes(cmd, "", c.ID, cb)
		}))
		defer b.SchemaRelease(l.Handle)

		var attrs []string
		try.To(json.Unmarshal([]byte(l.Attrs), &attrs))
		cmds.Fprintln(w, "schema id:", c.ID)
		cmds.Fprintln(w, "attributes:", l.Attrs)
		return GetResult{ID: c.ID, Attrs: attrs}, nil
	})
}
