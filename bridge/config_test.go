package bridge

import (
	"testing"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/wallet"
	"github.com/lainio/err2/assert"
)

func TestParseConfig(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	cfg, err := ParseConfig("")
	assert.NoError(err)
	assert.Equal(cfg.MaxOpenWallets, wallet.DefaultMaxOpen)
	assert.Equal(cfg.StatsInterval, 5)
	assert.Equal(cfg.PoolName, "")

	cfg, err = ParseConfig(`{"pool_name":"findy","institution_did":"V4SGRU86Z58d6TV7PBUe6f",
		"service_endpoint":"http://localhost:8080","max_open_wallets":2,"stats_interval":0}`)
	assert.NoError(err)
	assert.Equal(cfg.PoolName, "findy")
	assert.Equal(cfg.InstitutionDID, "V4SGRU86Z58d6TV7PBUe6f")
	assert.Equal(cfg.ServiceEndpoint, "http://localhost:8080")
	assert.Equal(cfg.MaxOpenWallets, 2)
	assert.Equal(cfg.StatsInterval, 0)
}

func TestParseConfig_Env(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	t.Setenv("VCX_POOL_NAME", "from_env")
	cfg, err := ParseConfig(`{"pool_name":"findy"}`)
	assert.NoError(err)
	assert.Equal(cfg.PoolName, "from_env")
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errcode.Code
	}{
		{"not json", "{", errcode.InvalidJSON},
		{"bad did", `{"institution_did":"0OIl"}`, errcode.InvalidDID},
		{"short did", `{"institution_did":"abc"}`, errcode.InvalidDID},
		{"bad type", `{"max_open_wallets":"many"}`, errcode.InvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			_, err := ParseConfig(tt.data)
			assert.Equal(errcode.Of(err), tt.want)
		})
	}
}

func TestCheckDID(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.NoError(checkDID(errcode.Schema, "V4SGRU86Z58d6TV7PBUe6f"))
	assert.Equal(errcode.Of(checkDID(errcode.Schema, "")), errcode.InvalidDID)
	assert.Equal(errcode.Of(checkDID(errcode.Schema, "0OIl")), errcode.NotBase58)
	assert.Equal(errcode.Of(checkDID(errcode.Schema, "abc")), errcode.InvalidDID)
	assert.That(sourceID("") != sourceID(""))
	assert.Equal(sourceID("src"), "src")
}
