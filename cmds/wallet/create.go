package wallet

import (
	"encoding/json"
	"io"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/findy-network/findy-vcx/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type CreateCmd struct {
	cmds.Cmd
}

type CreateResult struct {
	Name    string `json:"name"`
	Existed bool   `json:"existed"`
}

func (r CreateResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c CreateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "wallet create")

	return c.ExecBridge(func(b *bridge.Bridge) (cmds.Result, error) {
		existed := try.To1(cmds.Call(func(cmd cmdh.Handle, cb bridge.Callback[bool]) errcode.Code {
			return b.WalletCreate(cmd, c.WalletName, c.WalletKey, cb)
		}))
		if existed {
			cmds.Fprintln(w, "wallet", c.WalletName, "already exists")
		} else {
			cmds.Fprintln(w, "wallet", c.WalletName, "created")
		}
		return CreateResult{Name: c.WalletName, Existed: existed}, nil
	})
}
