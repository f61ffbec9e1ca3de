package cmds

import (
	"testing"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk/sdktest"
	"github.com/findy-network/findy-vcx/bridge"
	"github.com/lainio/err2/assert"
)

const testKey = "6cih1cVgRH8yHD54nEYyPKLmdv67o8QbufxaTHot3Qxp"

func TestCmd_Validate(t *testing.T) {
	mem := sdktest.New()
	tests := []struct {
		name string
		cmd  Cmd
		ok   bool
	}{
		{"ok", Cmd{WalletName: "w", WalletKey: testKey, SDK: mem}, true},
		{"no name", Cmd{WalletKey: testKey, SDK: mem}, false},
		{"short key", Cmd{WalletName: "w", WalletKey: "abc", SDK: mem}, false},
		{"no SDK", Cmd{WalletName: "w", WalletKey: testKey}, false},
		{"bad config", Cmd{WalletName: "w", WalletKey: testKey, SDK: mem, Config: "{"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			err := tt.cmd.Validate()
			if tt.ok {
				assert.NoError(err)
			} else {
				assert.Error(err)
			}
		})
	}
}

func TestCall(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	b, err := bridge.New(bridge.Config{}, sdktest.New())
	assert.NoError(err)
	defer b.Shutdown()

	existed, err := Call(func(cmd cmdh.Handle, cb bridge.Callback[bool]) errcode.Code {
		return b.WalletCreate(cmd, "call_wallet", testKey, cb)
	})
	assert.NoError(err)
	assert.That(!existed)

	// rejected synchronously
	_, err = Call(func(cmd cmdh.Handle, cb bridge.Callback[registry.Handle]) errcode.Code {
		return b.WalletOpen(cmd, "", testKey, cb)
	})
	assert.Error(err)

	// failed in the callback
	_, err = Call(func(cmd cmdh.Handle, cb bridge.Callback[registry.Handle]) errcode.Code {
		return b.WalletOpen(cmd, "no_such_wallet", testKey, cb)
	})
	assert.Equal(errcode.Of(err), errcode.Code(sdktest.WalletNotFound))
}

func TestCmd_Exec(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	mem := sdktest.New()
	c := Cmd{WalletName: "exec_wallet", WalletKey: testKey, SDK: mem}

	_, err := c.Exec(func(Edge) (Result, error) { return nil, nil })
	assert.Error(err, "wallet is not created yet")

	_, err = c.ExecBridge(func(b *bridge.Bridge) (Result, error) {
		_, err := Call(func(cmd cmdh.Handle, cb bridge.Callback[bool]) errcode.Code {
			return b.WalletCreate(cmd, c.WalletName, c.WalletKey, cb)
		})
		return nil, err
	})
	assert.NoError(err)

	var walletH registry.Handle
	_, err = c.Exec(func(e Edge) (Result, error) {
		walletH = e.Wallet
		return nil, nil
	})
	assert.NoError(err)
	assert.That(walletH != 0)
	assert.Equal(mem.Count(sdktest.OpCloseWallet), 1)
}
