/*
Package indy is the production implementation of the sdk.SDK contract. It calls
libindy through findy-wrapper-go. The anoncreds, wallet and did calls of the
wrapper are asynchronous already, the ledger calls are synchronous and they are
run on their own goroutines here so that every call completes through a
findy.Channel.

The package needs libindy and its cgo build, which is why nothing else in the
module imports it except the binaries.
*/
package indy

import (
	"encoding/json"
	"errors"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/pool"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/findy-network/findy-wrapper-go/ledger"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
)

// KeyDerivationMethod of the wallet keys.
const KeyDerivationMethod = "ARGON2I_MOD"

// Indy is the libindy SDK. The zero value uses the pool of the pool package.
type Indy struct {
	// Pool returns the ledger pool handle. Defaults to pool.Handle.
	Pool func() int
}

var _ sdk.SDK = (*Indy)(nil)

func New() *Indy {
	return &Indy{Pool: pool.Handle}
}

func (i *Indy) pool() int {
	if i.Pool == nil {
		return pool.Handle()
	}
	return i.Pool()
}

// ledgerCall runs the synchronous ledger function and completes the channel
// with its result. The libindy code of the error is passed through when the
// wrapper gives it, otherwise the error is reported as SDKSubmitError.
func (i *Indy) ledgerCall(name string, f func(h int) (dto.Data, error)) findy.Channel {
	ch := make(findy.Channel, 1)
	go func() {
		h := i.pool()
		if h == 0 {
			ch <- errResult(int(errcode.NoPoolOpen), "no pool open")
			return
		}
		d, err := f(h)
		if err != nil {
			glog.V(3).Infoln(name, "error:", err)
			ch <- errResult(ledgerErrCode(err), err.Error())
			return
		}
		ch <- dto.Result{Data: d}
	}()
	return ch
}

// ledgerErrCode digs the libindy code from the wrapper's error chain. The
// ledger plugins report libindy failures as dto.Result errors.
func ledgerErrCode(err error) int {
	var ce interface{ ErrCode() int }
	if errors.As(err, &ce) && ce.ErrCode() > 0 {
		return ce.ErrCode()
	}
	return int(errcode.SDKSubmitError)
}

func errResult(code int, msg string) dto.Result {
	return dto.Result{Er: dto.Err{Code: code, Error: msg}}
}

func (i *Indy) CreateSchema(issuerDID, name, version string, attrs []string) findy.Channel {
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		ch := make(findy.Channel, 1)
		ch <- errResult(int(errcode.InvalidJSON), err.Error())
		return ch
	}
	return anoncreds.IssuerCreateSchema(issuerDID, name, version, string(attrsJSON))
}

func (i *Indy) WriteSchema(w int, submitterDID, schemaJSON string) findy.Channel {
	return i.ledgerCall("write schema", func(h int) (dto.Data, error) {
		return dto.Data{}, ledger.WriteSchema(h, w, submitterDID, schemaJSON)
	})
}

func (i *Indy) ReadSchema(submitterDID, schemaID string) findy.Channel {
	return i.ledgerCall("read schema", func(h int) (dto.Data, error) {
		id, sc, err := ledger.ReadSchema(h, submitterDID, schemaID)
		return dto.Data{Str1: id, Str2: sc}, err
	})
}

func (i *Indy) CreateCredDef(w int, issuerDID, schemaJSON, tag string) findy.Channel {
	return anoncreds.IssuerCreateAndStoreCredentialDef(w, issuerDID, schemaJSON,
		tag, findy.NullString, findy.NullString)
}

func (i *Indy) WriteCredDef(w int, submitterDID, credDefJSON string) findy.Channel {
	return i.ledgerCall("write cred def", func(h int) (dto.Data, error) {
		return dto.Data{}, ledger.WriteCredDef(h, w, submitterDID, credDefJSON)
	})
}

func (i *Indy) ReadCredDef(submitterDID, credDefID string) findy.Channel {
	return i.ledgerCall("read cred def", func(h int) (dto.Data, error) {
		id, cd, err := ledger.ReadCredDef(h, submitterDID, credDefID)
		return dto.Data{Str1: id, Str2: cd}, err
	})
}

func walletCfg(name, key string) (wallet.Config, wallet.Credentials) {
	return wallet.Config{ID: name}, wallet.Credentials{
		Key:                 key,
		KeyDerivationMethod: KeyDerivationMethod,
	}
}

func (i *Indy) CreateWallet(name, key string) findy.Channel {
	return wallet.Create(walletCfg(name, key))
}

func (i *Indy) OpenWallet(name, key string) findy.Channel {
	return wallet.Open(walletCfg(name, key))
}

func (i *Indy) CloseWallet(w int) findy.Channel {
	return wallet.Close(w)
}

func (i *Indy) CreateDID(w int, seed string) findy.Channel {
	return did.CreateAndStore(w, did.Did{Seed: seed})
}
