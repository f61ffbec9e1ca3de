package schema

import (
	"errors"
	"flag"
	"os"
	"sync"
	"testing"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-vcx/agent/sdk/sdkmock"
	"github.com/findy-network/findy-vcx/agent/sdk/sdktest"
	"github.com/findy-network/findy-vcx/agent/store"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

const issuerDID = "V4SGRU86Z58d6TV7PBUe6f"

var attrs = []string{"email", "name"}

func TestMain(m *testing.M) {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("stderrthreshold", "WARNING"))
	try.To(flag.Set("v", "3"))
	flag.Parse()
	os.Exit(m.Run())
}

func openWallet(t *testing.T, m *sdktest.Mem) int {
	t.Helper()
	assert.NoError(async.NewFuture(m.CreateWallet("w", "key")).Check(errcode.Wallet))
	f := async.NewFuture(m.OpenWallet("w", "key"))
	assert.NoError(f.Check(errcode.Wallet))
	return f.Int()
}

func TestService_CreateCommit(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	w := openWallet(t, m)
	s := NewService(m, nil)

	h, err := s.Create("src1", issuerDID, "email", "1.0", attrs)
	assert.NoError(err)
	assert.That(h != 0)

	st, err := s.State(h)
	assert.NoError(err)
	assert.Equal(st, Built)

	_, err = s.SeqNo(h)
	assert.That(errors.Is(err, errcode.ErrSchemaNotCommitted))

	id, err := s.Commit(h, w, issuerDID)
	assert.NoError(err)
	assert.Equal(id, issuerDID+":2:email:1.0")

	seqNo, err := s.SeqNo(h)
	assert.NoError(err)
	assert.That(seqNo > 0)

	// second commit doesn't reach the ledger
	id2, err := s.Commit(h, w, issuerDID)
	assert.NoError(err)
	assert.Equal(id2, id)
	assert.Equal(m.Count(sdktest.OpWriteSchema), 1)
	assert.Equal(m.Count(sdktest.OpReadSchema), 1)

	got, err := s.Attributes(h)
	assert.NoError(err)
	assert.DeepEqual(got, attrs)
}

func TestService_ConcurrentCommit(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	w := openWallet(t, m)
	s := NewService(m, nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Commit(h, w, issuerDID)
			if err != nil {
				t.Error(err)
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(id, ids[0])
	}
	assert.Equal(m.Count(sdktest.OpWriteSchema), 1)
}

func TestService_CreateInvalid(t *testing.T) {
	s := NewService(sdktest.New(), nil)
	tests := []struct {
		name    string
		scName  string
		version string
		attrs   []string
	}{
		{"no name", "", "1.0", attrs},
		{"no version", "email", "", attrs},
		{"no attrs", "email", "1.0", nil},
		{"empty attr", "email", "1.0", []string{"a", ""}},
		{"dup attr", "email", "1.0", []string{"a", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			_, err := s.Create("src", issuerDID, tt.scName, tt.version, tt.attrs)
			assert.Equal(errcode.Of(err), errcode.InvalidSchema)
		})
	}
	assert.PushTester(t)
	defer assert.PopTester()
	assert.Equal(s.Len(), 0)
}

func TestService_CommitSDKError(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	w := openWallet(t, m)
	s := NewService(m, nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))

	m.FailNext(sdktest.OpWriteSchema, sdktest.LedgerInvalidTxn)
	_, err := s.Commit(h, w, issuerDID)
	assert.Equal(errcode.Of(err), errcode.Code(sdktest.LedgerInvalidTxn))

	st := try.To1(s.State(h))
	assert.Equal(st, Built)

	// the failed commit can be retried
	_, err = s.Commit(h, w, issuerDID)
	assert.NoError(err)
	assert.Equal(m.Count(sdktest.OpWriteSchema), 2)
}

func TestService_CommitReadBackError(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	w := openWallet(t, m)
	s := NewService(m, nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))

	// the write goes through but the seqNo can't be read
	m.FailNext(sdktest.OpReadSchema, 307)
	_, err := s.Commit(h, w, issuerDID)
	assert.Equal(errcode.Of(err), errcode.Code(307))
	assert.Equal(try.To1(s.State(h)), Built)

	// the retry only reads, the ledger would reject the second write
	id, err := s.Commit(h, w, issuerDID)
	assert.NoError(err)
	assert.Equal(id, issuerDID+":2:email:1.0")
	assert.Equal(try.To1(s.State(h)), Committed)
	assert.That(try.To1(s.SeqNo(h)) > 0)
	assert.Equal(m.Count(sdktest.OpWriteSchema), 1)
	assert.Equal(m.Count(sdktest.OpReadSchema), 2)
}

func TestService_CommitZeroSeqNoRetry(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mock := sdkmock.NewMockSDK(ctrl)

	const id = issuerDID + ":2:email:1.0"
	mock.EXPECT().CreateSchema(issuerDID, "email", "1.0", attrs).
		Return(sdkmock.Ok(dto.Data{Str1: id, Str2: `{"id":"` + id + `"}`}))
	mock.EXPECT().WriteSchema(1, issuerDID, gomock.Any()).
		Return(sdkmock.Ok(dto.Data{})).Times(1)
	gomock.InOrder(
		mock.EXPECT().ReadSchema(issuerDID, id).
			Return(sdkmock.Ok(dto.Data{Str1: id, Str2: `{"id":"` + id + `","seqNo":0}`})),
		mock.EXPECT().ReadSchema(issuerDID, id).
			Return(sdkmock.Ok(dto.Data{Str1: id, Str2: `{"id":"` + id + `","seqNo":12}`})),
	)

	s := NewService(mock, nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))
	_, err := s.Commit(h, 1, issuerDID)
	assert.Equal(errcode.Of(err), errcode.InvalidSchemaSeqNo)

	_, err = s.Commit(h, 1, issuerDID)
	assert.NoError(err)
	assert.Equal(try.To1(s.SeqNo(h)), 12)
}

func TestService_CommitWithMock(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mock := sdkmock.NewMockSDK(ctrl)

	const id = issuerDID + ":2:email:1.0"
	mock.EXPECT().CreateSchema(issuerDID, "email", "1.0", attrs).
		Return(sdkmock.Ok(dto.Data{Str1: id, Str2: `{"id":"` + id + `"}`}))
	mock.EXPECT().WriteSchema(1, issuerDID, gomock.Any()).
		Return(sdkmock.Ok(dto.Data{}))
	mock.EXPECT().ReadSchema(issuerDID, id).
		Return(sdkmock.Ok(dto.Data{Str1: id, Str2: `{"id":"` + id + `","seqNo":0}`}))

	s := NewService(mock, nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))
	_, err := s.Commit(h, 1, issuerDID)
	assert.Equal(errcode.Of(err), errcode.InvalidSchemaSeqNo)
}

func TestService_Lookup(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	w := openWallet(t, m)
	idx := store.NewMemory()
	writer := NewService(m, idx)
	h := try.To1(writer.Create("src", issuerDID, "email", "1.0", attrs))
	id := try.To1(writer.Commit(h, w, issuerDID))

	// from the store
	h2, err := writer.Lookup("other", issuerDID, id)
	assert.NoError(err)
	assert.Equal(m.Count(sdktest.OpReadSchema), 1)
	seq1 := try.To1(writer.SeqNo(h))
	seq2 := try.To1(writer.SeqNo(h2))
	assert.Equal(seq2, seq1)

	// from the ledger
	reader := NewService(m, nil)
	h3, err := reader.Lookup("other", issuerDID, id)
	assert.NoError(err)
	assert.Equal(m.Count(sdktest.OpReadSchema), 2)
	got := try.To1(reader.Attributes(h3))
	assert.DeepEqual(got, attrs)

	_, err = reader.Lookup("x", issuerDID, "no:2:such:1.0")
	assert.Equal(errcode.Of(err), errcode.Code(sdk.LedgerNotFoundError))
}

func TestService_SerializeDeserialize(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	w := openWallet(t, m)
	s := NewService(m, nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))
	try.To1(s.Commit(h, w, issuerDID))

	data, err := s.Serialize(h)
	assert.NoError(err)

	h2, err := s.Deserialize(data)
	assert.NoError(err)
	assert.That(h2 != h)
	assert.Equal(try.To1(s.SeqNo(h2)), try.To1(s.SeqNo(h)))
	assert.Equal(try.To1(s.ID(h2)), try.To1(s.ID(h)))

	for _, bad := range []string{
		"", "{", `{"version":"2.0","data":{}}`, `{"version":"1.0"}`,
		`{"version":"1.0","data":{"state":2}}`,
	} {
		_, err := s.Deserialize(bad)
		assert.Error(err, bad)
	}
}

func TestService_Release(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	s := NewService(sdktest.New(), nil)
	h := try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))
	assert.NoError(s.Release(h))

	_, err := s.ID(h)
	assert.That(errors.Is(err, errcode.ErrInvalidSchemaHandle))
	_, err = s.Commit(h, 1, issuerDID)
	assert.That(errors.Is(err, errcode.ErrInvalidSchemaHandle))
	assert.That(errors.Is(s.Release(h), errcode.ErrInvalidSchemaHandle))

	try.To1(s.Create("src", issuerDID, "email", "1.0", attrs))
	assert.NoError(s.ReleaseAll())
	assert.Equal(s.Len(), 0)
}
