package sdkmock

import (
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
)

// Ok returns a completed channel with the data, to be used with
// EXPECT().X().Return(...).
func Ok(d dto.Data) findy.Channel {
	ch := make(findy.Channel, 1)
	ch <- dto.Result{Data: d}
	return ch
}

// Fail returns a completed channel with the SDK error code.
func Fail(code int, msg string) findy.Channel {
	ch := make(findy.Channel, 1)
	ch <- dto.Result{Er: dto.Err{Code: code, Error: msg}}
	return ch
}
