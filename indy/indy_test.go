package indy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2/assert"
)

func TestLedgerErrCode(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	rejected := dto.Result{Er: dto.Err{
		Code:  sdk.LedgerInvalidTransactionError,
		Error: "rejected",
	}}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"indy result", rejected, sdk.LedgerInvalidTransactionError},
		// the way the wrapper's pool.Write reports a plugin error
		{"wrapped", fmt.Errorf("plugin write error: %w", rejected), sdk.LedgerInvalidTransactionError},
		{"no code", dto.Result{Er: dto.Err{Error: "no code"}}, int(errcode.SDKSubmitError)},
		{"plain", errors.New("no plugins open"), int(errcode.SDKSubmitError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()
			assert.Equal(ledgerErrCode(tt.err), tt.want)
		})
	}
}

func TestLedgerCall_NoPool(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	i := &Indy{Pool: func() int { return 0 }}
	r := <-i.ReadCredDef("did", "id")
	assert.Equal(r.ErrCode(), int(errcode.NoPoolOpen))

	i.Pool = func() int { return 1 }
	r = <-i.ledgerCall("test", func(int) (dto.Data, error) {
		return dto.Data{}, fmt.Errorf("write: %w", dto.Result{Er: dto.Err{Code: 307, Error: "timeout"}})
	})
	assert.Equal(r.ErrCode(), 307)
}
