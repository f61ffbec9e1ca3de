package key

import (
	"errors"
	"io"

	"github.com/findy-network/findy-vcx/cmds"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// CreateCmd generates a wallet key which the wallet commands accept.
type CreateCmd struct {
	Seed string
}

func (c *CreateCmd) Validate() error {
	if c.Seed != "" && len(c.Seed) != 32 {
		return errors.New("seed must be empty or length of 32")
	}
	return nil
}

func (c *CreateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "key create")

	result := <-wallet.GenerateKey(c.Seed)
	try.To(result.Err())
	cmds.Fprintln(w, result.Str1())

	return r, nil
}
