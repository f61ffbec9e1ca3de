/*
Package sdktest offers an in-memory implementation of the sdk.SDK interface for
tests. It keeps a ledger and wallets in maps, completes every call from its own
goroutine like the real SDK does, counts the calls per operation, and lets tests
inject failures.
*/
package sdktest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/mr-tron/base58"
)

// Operation names used with Count and FailNext.
const (
	OpCreateSchema  = "CreateSchema"
	OpWriteSchema   = "WriteSchema"
	OpReadSchema    = "ReadSchema"
	OpCreateCredDef = "CreateCredDef"
	OpWriteCredDef  = "WriteCredDef"
	OpReadCredDef   = "ReadCredDef"
	OpCreateWallet  = "CreateWallet"
	OpOpenWallet    = "OpenWallet"
	OpCloseWallet   = "CloseWallet"
	OpCreateDID     = "CreateDID"
)

// libindy codes the fake reports
const (
	CommonInvalidStructure = 113
	WalletInvalidHandle    = 200
	WalletNotFound         = 204
	WalletAccessFailed     = 207
	LedgerInvalidTxn       = sdk.LedgerInvalidTransactionError
)

const firstSeqNo = 10

type walletData struct {
	key      string
	open     bool
	credDefs map[string]string // ID -> JSON
	dids     map[string]string // DID -> verkey
}

// Mem is the in-memory SDK. Use New to create one.
type Mem struct {
	// Delay is slept before each result is delivered.
	Delay time.Duration

	l        sync.Mutex
	counts   map[string]int
	fails    map[string][]int
	schemas  map[string]string // ledger: ID -> JSON with seqNo
	credDefs map[string]string // ledger: ID -> JSON
	wallets  map[string]*walletData
	handles  map[int]string
	seqNo    int
	handleNo int
	didNo    int
}

var _ sdk.SDK = (*Mem)(nil)

func New() *Mem {
	return &Mem{
		counts:   make(map[string]int),
		fails:    make(map[string][]int),
		schemas:  make(map[string]string),
		credDefs: make(map[string]string),
		wallets:  make(map[string]*walletData),
		handles:  make(map[int]string),
		seqNo:    firstSeqNo,
	}
}

// Count returns how many times the operation is called.
func (m *Mem) Count(op string) int {
	m.l.Lock()
	defer m.l.Unlock()
	return m.counts[op]
}

// FailNext makes the next call of the operation fail with the SDK code.
func (m *Mem) FailNext(op string, code int) {
	m.l.Lock()
	defer m.l.Unlock()
	m.fails[op] = append(m.fails[op], code)
}

// AddCredDef puts a cred def straight to the ledger, i.e. someone else has
// written it.
func (m *Mem) AddCredDef(id, credDefJSON string) {
	m.l.Lock()
	defer m.l.Unlock()
	m.credDefs[id] = credDefJSON
}

type opFn func() (dto.Data, int, string)

func (m *Mem) submit(op string, f opFn) findy.Channel {
	ch := make(findy.Channel, 1)

	m.l.Lock()
	m.counts[op]++
	var r dto.Result
	if codes := m.fails[op]; len(codes) > 0 {
		m.fails[op] = codes[1:]
		r = errResult(codes[0], "injected failure: "+op)
	} else {
		d, code, msg := f()
		if code != 0 {
			r = errResult(code, msg)
		} else {
			r = dto.Result{Data: d}
		}
	}
	m.l.Unlock()

	go func() {
		if m.Delay > 0 {
			time.Sleep(m.Delay)
		}
		ch <- r
	}()
	return ch
}

func errResult(code int, msg string) dto.Result {
	return dto.Result{Er: dto.Err{Code: code, Error: msg}}
}

type schemaJSON struct {
	Ver       string   `json:"ver"`
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
	SeqNo     *int     `json:"seqNo"`
}

type credDefJSON struct {
	Ver      string          `json:"ver"`
	ID       string          `json:"id"`
	SchemaID string          `json:"schemaId"`
	Type     string          `json:"type"`
	Tag      string          `json:"tag"`
	Value    json.RawMessage `json:"value"`
}

func (m *Mem) CreateSchema(issuerDID, name, version string, attrs []string) findy.Channel {
	return m.submit(OpCreateSchema, func() (dto.Data, int, string) {
		if issuerDID == "" || name == "" || len(attrs) == 0 {
			return dto.Data{}, CommonInvalidStructure, "invalid schema"
		}
		id := fmt.Sprintf("%s:2:%s:%s", issuerDID, name, version)
		b, _ := json.Marshal(schemaJSON{
			Ver: "1.0", ID: id, Name: name, Version: version, AttrNames: attrs,
		})
		return dto.Data{Str1: id, Str2: string(b)}, 0, ""
	})
}

func (m *Mem) WriteSchema(wallet int, _, scJSON string) findy.Channel {
	return m.submit(OpWriteSchema, func() (dto.Data, int, string) {
		if _, ok := m.handles[wallet]; !ok {
			return dto.Data{}, WalletInvalidHandle, "invalid wallet handle"
		}
		var sc schemaJSON
		if err := json.Unmarshal([]byte(scJSON), &sc); err != nil {
			return dto.Data{}, CommonInvalidStructure, err.Error()
		}
		if _, exists := m.schemas[sc.ID]; exists {
			return dto.Data{}, LedgerInvalidTxn, "schema already on ledger"
		}
		seqNo := m.seqNo
		m.seqNo++
		sc.SeqNo = &seqNo
		b, _ := json.Marshal(sc)
		m.schemas[sc.ID] = string(b)
		return dto.Data{}, 0, ""
	})
}

func (m *Mem) ReadSchema(_, schemaID string) findy.Channel {
	return m.submit(OpReadSchema, func() (dto.Data, int, string) {
		sc, ok := m.schemas[schemaID]
		if !ok {
			return dto.Data{}, sdk.LedgerNotFoundError, "schema not found"
		}
		return dto.Data{Str1: schemaID, Str2: sc}, 0, ""
	})
}

func (m *Mem) CreateCredDef(wallet int, issuerDID, scJSON, tag string) findy.Channel {
	return m.submit(OpCreateCredDef, func() (dto.Data, int, string) {
		w, ok := m.walletByHandle(wallet)
		if !ok {
			return dto.Data{}, WalletInvalidHandle, "invalid wallet handle"
		}
		var sc schemaJSON
		if err := json.Unmarshal([]byte(scJSON), &sc); err != nil || sc.SeqNo == nil {
			return dto.Data{}, CommonInvalidStructure, "invalid schema json"
		}
		id := fmt.Sprintf("%s:3:CL:%d:%s", issuerDID, *sc.SeqNo, tag)
		if _, exists := w.credDefs[id]; exists {
			return dto.Data{}, sdk.AnoncredsCredDefAlreadyExistsError, "cred def exists"
		}
		b, _ := json.Marshal(credDefJSON{
			Ver: "1.0", ID: id, SchemaID: fmt.Sprint(*sc.SeqNo), Type: "CL",
			Tag: tag, Value: json.RawMessage(`{"primary":{}}`),
		})
		w.credDefs[id] = string(b)
		return dto.Data{Str1: id, Str2: string(b)}, 0, ""
	})
}

func (m *Mem) WriteCredDef(wallet int, _, cdJSON string) findy.Channel {
	return m.submit(OpWriteCredDef, func() (dto.Data, int, string) {
		if _, ok := m.handles[wallet]; !ok {
			return dto.Data{}, WalletInvalidHandle, "invalid wallet handle"
		}
		var cd credDefJSON
		if err := json.Unmarshal([]byte(cdJSON), &cd); err != nil {
			return dto.Data{}, CommonInvalidStructure, err.Error()
		}
		if _, exists := m.credDefs[cd.ID]; exists {
			return dto.Data{}, LedgerInvalidTxn, "cred def already on ledger"
		}
		m.credDefs[cd.ID] = cdJSON
		return dto.Data{}, 0, ""
	})
}

func (m *Mem) ReadCredDef(_, credDefID string) findy.Channel {
	return m.submit(OpReadCredDef, func() (dto.Data, int, string) {
		cd, ok := m.credDefs[credDefID]
		if !ok {
			return dto.Data{}, sdk.LedgerNotFoundError, "cred def not found"
		}
		return dto.Data{Str1: credDefID, Str2: cd}, 0, ""
	})
}

func (m *Mem) CreateWallet(name, key string) findy.Channel {
	return m.submit(OpCreateWallet, func() (dto.Data, int, string) {
		if _, exists := m.wallets[name]; exists {
			return dto.Data{}, sdk.WalletAlreadyExistsError, "wallet exists"
		}
		m.wallets[name] = &walletData{
			key:      key,
			credDefs: make(map[string]string),
			dids:     make(map[string]string),
		}
		return dto.Data{}, 0, ""
	})
}

func (m *Mem) OpenWallet(name, key string) findy.Channel {
	return m.submit(OpOpenWallet, func() (dto.Data, int, string) {
		w, exists := m.wallets[name]
		switch {
		case !exists:
			return dto.Data{}, WalletNotFound, "wallet not found"
		case w.key != key:
			return dto.Data{}, WalletAccessFailed, "wallet access failed"
		case w.open:
			return dto.Data{}, sdk.WalletAlreadyOpenedError, "wallet already opened"
		}
		w.open = true
		m.handleNo++
		m.handles[m.handleNo] = name
		return dto.Data{Handle: m.handleNo}, 0, ""
	})
}

func (m *Mem) CloseWallet(wallet int) findy.Channel {
	return m.submit(OpCloseWallet, func() (dto.Data, int, string) {
		w, ok := m.walletByHandle(wallet)
		if !ok {
			return dto.Data{}, WalletInvalidHandle, "invalid wallet handle"
		}
		w.open = false
		delete(m.handles, wallet)
		return dto.Data{}, 0, ""
	})
}

func (m *Mem) CreateDID(wallet int, seed string) findy.Channel {
	return m.submit(OpCreateDID, func() (dto.Data, int, string) {
		w, ok := m.walletByHandle(wallet)
		if !ok {
			return dto.Data{}, WalletInvalidHandle, "invalid wallet handle"
		}
		if seed == "" {
			m.didNo++
			seed = fmt.Sprintf("%032d", m.didNo)
		}
		sum := sha256.Sum256([]byte(strings.TrimSpace(seed)))
		verkey := base58.Encode(sum[:])
		did := base58.Encode(sum[:16])
		w.dids[did] = verkey
		return dto.Data{Str1: did, Str2: verkey}, 0, ""
	})
}

// walletByHandle must be called with the lock held.
func (m *Mem) walletByHandle(h int) (*walletData, bool) {
	name, ok := m.handles[h]
	if !ok {
		return nil, false
	}
	return m.wallets[name], true
}
