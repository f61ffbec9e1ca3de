// Package pool has the commands for the ledger pool config and connection.
package pool

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/pool"
	"github.com/findy-network/findy-vcx/cmds"
	findypool "github.com/findy-network/findy-wrapper-go/pool"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// reserved by the wrapper for its own ledger implementations
var reserved = map[string]bool{
	"FINDY_MEM_LEDGER":  true,
	"FINDY_ECHO_LEDGER": true,
}

func validName(name string) error {
	if name == "" {
		return errors.New("pool name cannot be empty")
	}
	return nil
}

// CreateCmd creates the pool config from the genesis file. The bridge config's
// pool_name refers to it.
type CreateCmd struct {
	Name string
	Txn  string
}

func (c *CreateCmd) Validate() error {
	if err := validName(c.Name); err != nil {
		return err
	}
	if reserved[c.Name] {
		return fmt.Errorf("%s is reserved", c.Name)
	}
	if c.Txn == "" {
		return errors.New("genesis file is required")
	}
	if _, err := os.Stat(c.Txn); err != nil {
		return fmt.Errorf("genesis file: %w", err)
	}
	return nil
}

func (c *CreateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "pool create %s", c.Name)

	f := async.NewFuture(findypool.CreateConfig(c.Name, findypool.Config{GenesisTxn: c.Txn}))
	if code, e := f.Err(); e != nil {
		return nil, fmt.Errorf("%w (%d)", e, code)
	}
	cmds.Fprintln(w, "pool created:", c.Name)
	return r, nil
}

// PingCmd opens and closes the pool connection. The wrapper's memory ledger
// names are accepted, which makes the command usable without a real ledger.
type PingCmd struct {
	Name string
}

func (c *PingCmd) Validate() error {
	return validName(c.Name)
}

func (c *PingCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "pool ping %s", c.Name)

	h := try.To1(pool.Open(c.Name))
	cmds.Fprintf(w, "pool %s open, handle: %d\n", c.Name, h)
	pool.Close()
	cmds.Fprintln(w, "pool closed")
	return r, nil
}
