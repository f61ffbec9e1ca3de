/*
Package schema implements the schema object and its life cycle:

	Built --commit--> Committed

A schema is built locally by the SDK and committed to the ledger once. The
ledger assigns it a sequence number which is read back after the write.
*/
package schema

import (
	"encoding/json"
	"sync"

	"github.com/findy-network/findy-vcx/agent/errcode"
)

type State int

const (
	Built State = 1 + iota
	Committed
)

func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case Committed:
		return "committed"
	}
	return "unknown"
}

// Schema is a registry owned schema object. All the access goes through its
// lock, which serializes commits and queries of the same object.
type Schema struct {
	l sync.Mutex

	SourceID string   `json:"source_id"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Attrs    []string `json:"attrs"`
	ID       string   `json:"schema_id"`
	SeqNo    int      `json:"seq_no,omitempty"`
	State    State    `json:"state"`
	JSON     string   `json:"data"`

	// Written is set when the ledger has accepted the write but the seqNo
	// is not read back yet. The next commit only reads.
	Written bool `json:"written,omitempty"`
}

// ledgerSchema is the part of the ledger's schema JSON we read.
type ledgerSchema struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
	SeqNo     int      `json:"seqNo"`
}

func parseLedgerSchema(data string) (ls ledgerSchema, err error) {
	if err = json.Unmarshal([]byte(data), &ls); err != nil {
		return ls, errcode.Schema.New(errcode.InvalidSchema, "ledger schema: %v", err)
	}
	return ls, nil
}

func validate(name, version string, attrs []string) error {
	if name == "" || version == "" {
		return errcode.Schema.New(errcode.InvalidSchema, "name and version are required")
	}
	if len(attrs) == 0 {
		return errcode.Schema.New(errcode.InvalidSchema, "no attributes")
	}
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if a == "" {
			return errcode.Schema.New(errcode.InvalidSchema, "empty attribute name")
		}
		if _, dup := seen[a]; dup {
			return errcode.Schema.New(errcode.InvalidSchema, "duplicate attribute %s", a)
		}
		seen[a] = struct{}{}
	}
	return nil
}

func (s *Schema) seqNo() (int, error) {
	if s.State != Committed {
		return 0, errcode.Schema.New(errcode.SchemaNotCommitted, "schema %s", s.SourceID)
	}
	return s.SeqNo, nil
}

const serialVersion = "1.0"

type serialized struct {
	Version string  `json:"version"`
	Data    *Schema `json:"data"`
}

func (s *Schema) serialize() (string, error) {
	b, err := json.Marshal(serialized{Version: serialVersion, Data: s})
	if err != nil {
		return "", errcode.Schema.New(errcode.InvalidJSON, "%v", err)
	}
	return string(b), nil
}

func deserialize(data string) (*Schema, error) {
	var v serialized
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, errcode.Schema.New(errcode.InvalidJSON, "%v", err)
	}
	switch {
	case v.Version != serialVersion:
		return nil, errcode.Schema.New(errcode.InvalidJSON, "unsupported version %q", v.Version)
	case v.Data == nil:
		return nil, errcode.Schema.New(errcode.InvalidJSON, "no data")
	case v.Data.State != Built && v.Data.State != Committed:
		return nil, errcode.Schema.New(errcode.InvalidJSON, "state %d", v.Data.State)
	case v.Data.State == Committed && v.Data.SeqNo == 0:
		return nil, errcode.Schema.New(errcode.InvalidSchemaSeqNo, "committed without seqNo")
	}
	return v.Data, nil
}
