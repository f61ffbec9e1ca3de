package schema

import (
	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-vcx/agent/store"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Service owns the schema registry and runs the state machine against the SDK.
type Service struct {
	sdk   sdk.SDK
	store store.Index
	reg   *registry.Registry[*Schema]
}

// NewService creates a schema service. The index receives the snapshots of
// the committed schemas and it's used by Lookup before the ledger.
func NewService(s sdk.SDK, idx store.Index) *Service {
	if idx == nil {
		idx = store.NewMemory()
	}
	return &Service{
		sdk:   s,
		store: idx,
		reg:   registry.New[*Schema](errcode.Schema, errcode.InvalidSchemaHandle),
	}
}

// Create builds the schema with the SDK and registers it in Built state.
func (s *Service) Create(sourceID, issuerDID, name, version string, attrs []string) (h registry.Handle, err error) {
	defer err2.Handle(&err, "create schema %s", sourceID)

	try.To(validate(name, version, attrs))

	f := async.NewFuture(s.sdk.CreateSchema(issuerDID, name, version, attrs))
	try.To(f.Check(errcode.Schema))

	sc := &Schema{
		SourceID: sourceID,
		Name:     name,
		Version:  version,
		Attrs:    append([]string(nil), attrs...),
		ID:       f.Str1(),
		State:    Built,
		JSON:     f.Str2(),
	}
	h = s.reg.Insert(sc)
	glog.V(3).Infoln("schema", sourceID, "built:", sc.ID, "handle:", h)
	return h, nil
}

// Commit writes the schema to the ledger and reads its seqNo back. A committed
// schema is not written again, the call returns the same ID without touching
// the SDK. If only the read back failed, the retry only reads.
func (s *Service) Commit(h registry.Handle, wallet int, submitterDID string) (id string, err error) {
	defer err2.Handle(&err, "commit schema")

	sc := try.To1(s.reg.Get(h))
	sc.l.Lock()
	defer sc.l.Unlock()

	if sc.State == Committed {
		glog.V(3).Infoln("schema", sc.ID, "already committed")
		return sc.ID, nil
	}

	if !sc.Written {
		wf := async.NewFuture(s.sdk.WriteSchema(wallet, submitterDID, sc.JSON))
		try.To(wf.Check(errcode.Schema))
		sc.Written = true
	} else {
		glog.V(3).Infoln("schema", sc.ID, "written, reading seqNo")
	}

	rf := async.NewFuture(s.sdk.ReadSchema(submitterDID, sc.ID))
	try.To(rf.Check(errcode.Schema))

	ls := try.To1(parseLedgerSchema(rf.Str2()))
	if ls.SeqNo <= 0 {
		return "", errcode.Schema.New(errcode.InvalidSchemaSeqNo, "schema %s", sc.ID)
	}
	sc.SeqNo = ls.SeqNo
	sc.JSON = rf.Str2()
	sc.State = Committed
	sc.Written = false
	glog.V(1).Infoln("schema", sc.ID, "committed, seqNo:", sc.SeqNo)

	s.snapshot(sc)
	return sc.ID, nil
}

// snapshot must be called with the schema lock held.
func (s *Service) snapshot(sc *Schema) {
	data, err := sc.serialize()
	if err == nil {
		err = s.store.PutObject(store.KindSchema, sc.ID, []byte(data))
	}
	if err != nil {
		glog.Warningln("schema", sc.ID, "snapshot:", err)
	}
}

// Lookup registers a committed schema by its ledger ID. The local store is
// checked before the ledger.
func (s *Service) Lookup(sourceID, submitterDID, schemaID string) (h registry.Handle, err error) {
	defer err2.Handle(&err, "lookup schema %s", schemaID)

	if data, found, _ := s.store.Object(store.KindSchema, schemaID); found {
		if sc, err := deserialize(string(data)); err == nil && sc.State == Committed {
			sc.SourceID = sourceID
			glog.V(3).Infoln("schema", schemaID, "from store")
			return s.reg.Insert(sc), nil
		}
	}

	f := async.NewFuture(s.sdk.ReadSchema(submitterDID, schemaID))
	try.To(f.Check(errcode.Schema))

	ls := try.To1(parseLedgerSchema(f.Str2()))
	if ls.SeqNo <= 0 {
		return 0, errcode.Schema.New(errcode.InvalidSchemaSeqNo, "schema %s", schemaID)
	}
	sc := &Schema{
		SourceID: sourceID,
		Name:     ls.Name,
		Version:  ls.Version,
		Attrs:    ls.AttrNames,
		ID:       schemaID,
		SeqNo:    ls.SeqNo,
		State:    Committed,
		JSON:     f.Str2(),
	}
	s.snapshot(sc)
	return s.reg.Insert(sc), nil
}

func (s *Service) get(h registry.Handle) (*Schema, func(), error) {
	sc, err := s.reg.Get(h)
	if err != nil {
		return nil, nil, err
	}
	sc.l.Lock()
	return sc, sc.l.Unlock, nil
}

// SeqNo returns the ledger sequence number. It fails with SchemaNotCommitted
// before commit.
func (s *Service) SeqNo(h registry.Handle) (int, error) {
	sc, unlock, err := s.get(h)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return sc.seqNo()
}

func (s *Service) ID(h registry.Handle) (string, error) {
	sc, unlock, err := s.get(h)
	if err != nil {
		return "", err
	}
	defer unlock()
	return sc.ID, nil
}

func (s *Service) State(h registry.Handle) (State, error) {
	sc, unlock, err := s.get(h)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return sc.State, nil
}

func (s *Service) Attributes(h registry.Handle) ([]string, error) {
	sc, unlock, err := s.get(h)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return append([]string(nil), sc.Attrs...), nil
}

// Data returns the schema JSON. After the commit it's the ledger's version.
func (s *Service) Data(h registry.Handle) (string, error) {
	sc, unlock, err := s.get(h)
	if err != nil {
		return "", err
	}
	defer unlock()
	return sc.JSON, nil
}

func (s *Service) Serialize(h registry.Handle) (string, error) {
	sc, unlock, err := s.get(h)
	if err != nil {
		return "", err
	}
	defer unlock()
	return sc.serialize()
}

// Deserialize registers a schema from the output of Serialize.
func (s *Service) Deserialize(data string) (registry.Handle, error) {
	sc, err := deserialize(data)
	if err != nil {
		return 0, err
	}
	return s.reg.Insert(sc), nil
}

func (s *Service) Release(h registry.Handle) error {
	return s.reg.Release(h)
}

func (s *Service) ReleaseAll() error {
	return s.reg.ReleaseAll()
}

// Len returns the count of live schema objects.
func (s *Service) Len() int {
	return s.reg.Len()
}

// Check returns the invalid handle error if the handle is not live.
func (s *Service) Check(h registry.Handle) error {
	_, err := s.reg.Get(h)
	return err
}
