/*
Package cmds implements the CLI commands as plain structs. Every command has
Validate and Exec, and Exec runs the bridge synchronously: the bridge is
created for the command, the wallet is opened, the operations are called and
waited one by one, and everything is released before Exec returns.
*/
package cmds

import (
	"errors"
	"fmt"
	"io"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const walletKeyLength = 44

var ErrInvalid = errors.New("invalid command, check arguments")

// Cmd is the base of the commands which need an open wallet.
type Cmd struct {
	Config     string `cmd_usage:"bridge config JSON"`
	WalletName string `cmd_usage:"wallet name is required"`
	WalletKey  string `cmd_usage:"wallet key is required"`

	// SDK is the identity SDK the bridge runs on. The binaries set it to the
	// libindy adapter.
	SDK sdk.SDK `json:"-"`
}

func (c Cmd) Validate() error {
	if c.WalletName == "" {
		return errors.New("wallet name cannot be empty")
	}
	if err := ValidateKey(c.WalletKey); err != nil {
		return err
	}
	if c.SDK == nil {
		return errors.New("SDK is not set")
	}
	_, err := bridge.ParseConfig(c.Config)
	return err
}

func ValidateKey(k string) error {
	if k == "" {
		return errors.New("wallet key cannot be empty")
	}
	if len(k) != walletKeyLength {
		return errors.New("wallet key is not valid")
	}
	return nil
}

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// Edge is the open session of a command: the bridge and the wallet handle.
type Edge struct {
	*bridge.Bridge
	Wallet registry.Handle
}

// Exec creates the bridge, opens the wallet, calls f and cleans up.
func (c Cmd) Exec(f func(e Edge) (Result, error)) (r Result, err error) {
	return c.ExecBridge(func(b *bridge.Bridge) (r Result, err error) {
		defer err2.Handle(&err, "wallet %s", c.WalletName)

		wh := try.To1(Call(func(cmd cmdh.Handle, cb bridge.Callback[registry.Handle]) errcode.Code {
			return b.WalletOpen(cmd, c.WalletName, c.WalletKey, cb)
		}))
		defer func() {
			_, e := Call(func(cmd cmdh.Handle, cb bridge.Callback[bridge.None]) errcode.Code {
				return b.WalletClose(cmd, wh, cb)
			})
			if e != nil {
				glog.Warningln("wallet close:", e)
			}
		}()

		return f(Edge{Bridge: b, Wallet: wh})
	})
}

// ExecBridge creates the bridge for f and shuts it down after.
func (c Cmd) ExecBridge(f func(b *bridge.Bridge) (Result, error)) (r Result, err error) {
	defer err2.Handle(&err)

	cfg := try.To1(bridge.ParseConfig(c.Config))
	cfg.StatsInterval = 0 // too short lived for the stats job
	b := try.To1(bridge.New(cfg, c.SDK))
	defer func() {
		if e := b.Shutdown(); e != nil {
			glog.Warningln("shutdown:", e)
		}
	}()

	return f(b)
}

type reply[R any] struct {
	code errcode.Code
	r    R
}

// Call runs the bridge operation and waits for its callback. A synchronous
// failure and a failed callback are both returned as the error.
func Call[R any](op func(cmd cmdh.Handle, cb bridge.Callback[R]) errcode.Code) (r R, err error) {
	ch := make(chan reply[R], 1)
	cmd := cmdh.Next()
	code := op(cmd, func(_ cmdh.Handle, code errcode.Code, r R) {
		ch <- reply[R]{code: code, r: r}
	})
	if code != errcode.Success {
		// the callback is called before the return in this case, drain it
		select {
		case <-ch:
		default:
		}
		return r, &errcode.Error{Code: code, Msg: "call rejected"}
	}
	rep := <-ch
	if rep.code != errcode.Success {
		return rep.r, &errcode.Error{Code: rep.code}
	}
	return rep.r, nil
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}
