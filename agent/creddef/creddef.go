/*
Package creddef implements the credential definition object:

	Built --commit--> Committed
	Built --commit--> AlreadyCreated

Only one cred def can be committed for an issuer and schema pair. The second
one ends to AlreadyCreated without anything submitted to the ledger. A commit
which fails after the wallet has created the cred def resumes from the ledger
write.
*/
package creddef

import (
	"encoding/json"
	"sync"

	"github.com/findy-network/findy-vcx/agent/errcode"
)

type State int

const (
	Built State = 1 + iota
	Committed
	AlreadyCreated
)

func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case Committed:
		return "committed"
	case AlreadyCreated:
		return "already created"
	}
	return "unknown"
}

type CredDef struct {
	l sync.Mutex

	SourceID  string `json:"source_id"`
	SchemaID  string `json:"schema_id"`
	Tag       string `json:"tag"`
	IssuerDID string `json:"issuer_did"`
	ID        string `json:"cred_def_id,omitempty"`
	State     State  `json:"state"`
	JSON      string `json:"data,omitempty"`

	// Created is set when the wallet has the cred def but the ledger write
	// hasn't succeeded yet. ID and JSON are the wallet's then.
	Created bool `json:"created,omitempty"`
}

const serialVersion = "1.0"

type serialized struct {
	Version string   `json:"version"`
	Data    *CredDef `json:"data"`
}

func (cd *CredDef) serialize() (string, error) {
	b, err := json.Marshal(serialized{Version: serialVersion, Data: cd})
	if err != nil {
		return "", errcode.CredDef.New(errcode.InvalidJSON, "%v", err)
	}
	return string(b), nil
}

func deserialize(data string) (*CredDef, error) {
	var v serialized
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, errcode.CredDef.New(errcode.InvalidCredDefJSON, "%v", err)
	}
	switch {
	case v.Version != serialVersion:
		return nil, errcode.CredDef.New(errcode.InvalidCredDefJSON, "unsupported version %q", v.Version)
	case v.Data == nil:
		return nil, errcode.CredDef.New(errcode.InvalidCredDefJSON, "no data")
	case v.Data.State < Built || v.Data.State > AlreadyCreated:
		return nil, errcode.CredDef.New(errcode.InvalidCredDefJSON, "state %d", v.Data.State)
	case v.Data.State == Committed && v.Data.ID == "":
		return nil, errcode.CredDef.New(errcode.InvalidCredDefJSON, "committed without ID")
	}
	return v.Data, nil
}
