package connection

import (
	"encoding/json"
	"io"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// InviteCmd creates a connection with a new pairwise DID and prints its
// invitation.
type InviteCmd struct {
	cmds.Cmd
	Label string
}

type InviteResult struct {
	Invitation json.RawMessage `json:"invitation"`
}

func (r InviteResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c InviteCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "connection invite")

	return c.Cmd.Exec(func(e cmds.Edge) (cmds.Result, error) {
		h := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[registry.Handle]) errcode.Code {
			return e.ConnectionCreate(cmd, c.Label, cb)
		}))
		defer e.ConnectionRelease(h)

		details := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[string]) errcode.Code {
			return e.ConnectionConnect(cmd, h, e.Wallet, cb)
		}))
		cmds.Fprintln(w, details)
		return InviteResult{Invitation: json.RawMessage(details)}, nil
	})
}
