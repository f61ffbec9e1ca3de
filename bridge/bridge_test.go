package bridge

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/findy-network/findy-vcx/agent/cmdh"
	"github.com/findy-network/findy-vcx/agent/creddef"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk/sdkmock"
	"github.com/findy-network/findy-vcx/agent/sdk/sdktest"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const (
	issuerDID = "V4SGRU86Z58d6TV7PBUe6f"
	timeout   = 5 * time.Second
)

var testConfig = Config{
	InstitutionDID:  issuerDID,
	ServiceEndpoint: "http://localhost:8080",
}

func TestMain(m *testing.M) {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("stderrthreshold", "WARNING"))
	try.To(flag.Set("v", "3"))
	flag.Parse()
	os.Exit(m.Run())
}

type res[R any] struct {
	cmd  cmdh.Handle
	code errcode.Code
	val  R
}

// collect returns a callback which sends its arguments to the channel.
func collect[R any]() (Callback[R], chan res[R]) {
	ch := make(chan res[R], 8)
	return func(cmd cmdh.Handle, code errcode.Code, r R) {
		ch <- res[R]{cmd, code, r}
	}, ch
}

func wait[R any](t *testing.T, ch chan res[R]) res[R] {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(timeout):
		t.Fatal("callback timeout")
	}
	return res[R]{}
}

var cmdNo cmdh.Allocator

// do calls the operation, asserts that it is accepted and waits the callback.
func do[R any](t *testing.T, op func(cmd cmdh.Handle, cb Callback[R]) errcode.Code) res[R] {
	t.Helper()
	cb, ch := collect[R]()
	cmd := cmdNo.Next()
	code := op(cmd, cb)
	r := wait(t, ch)
	if r.cmd != cmd {
		t.Fatalf("callback command handle %d, want %d", r.cmd, cmd)
	}
	if code != errcode.Success && code != r.code {
		t.Fatalf("returned %d but callback got %d", code, r.code)
	}
	return r
}

func newBridge(t *testing.T, m *sdktest.Mem) *Bridge {
	t.Helper()
	b, err := New(testConfig, m)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = b.Shutdown() })
	return b
}

func openWallet(t *testing.T, b *Bridge, name string) registry.Handle {
	t.Helper()
	r := do(t, func(cmd cmdh.Handle, cb Callback[bool]) errcode.Code {
		return b.WalletCreate(cmd, name, "key", cb)
	})
	if r.code != errcode.Success {
		t.Fatal("wallet create", r.code)
	}
	w := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.WalletOpen(cmd, name, "key", cb)
	})
	if w.code != errcode.Success {
		t.Fatal("wallet open", w.code)
	}
	return w.val
}

func createSchema(t *testing.T, b *Bridge, name string) registry.Handle {
	t.Helper()
	r := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.SchemaCreate(cmd, "src-"+name, name, "1.0", `["email","name"]`, cb)
	})
	if r.code != errcode.Success {
		t.Fatal("schema create", r.code)
	}
	return r.val
}

func TestBridge_SchemaScenario(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	b := newBridge(t, m)
	w := openWallet(t, b, "issuer")
	h := createSchema(t, b, "email")

	seq := do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.SchemaGetSeqNo(cmd, h, cb)
	})
	assert.Equal(seq.code, errcode.SchemaNotCommitted)

	commit := func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.SchemaCommit(cmd, h, w, cb)
	}
	c1 := do(t, commit)
	c2 := do(t, commit)
	assert.Equal(c1.code, errcode.Success)
	assert.Equal(c2.code, errcode.Success)
	assert.Equal(c2.val, c1.val)
	assert.Equal(m.Count(sdktest.OpWriteSchema), 1)

	seq = do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.SchemaGetSeqNo(cmd, h, cb)
	})
	assert.Equal(seq.code, errcode.Success)
	assert.That(seq.val > 0)

	id := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.SchemaGetID(cmd, h, cb)
	})
	assert.Equal(id.val, c1.val)

	short := make([]byte, 4)
	d := do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.SchemaGetData(cmd, h, short, cb)
	})
	assert.Equal(d.code, errcode.BufferTooSmall)
	assert.That(d.val > len(short))
	assert.DeepEqual(short, make([]byte, 4))

	buf := make([]byte, d.val)
	d = do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.SchemaGetData(cmd, h, buf, cb)
	})
	assert.Equal(d.code, errcode.Success)
	assert.Equal(d.val, len(buf))
	assert.Equal(buf[len(buf)-1], byte(0))
	assert.That(json.Valid(buf[:len(buf)-1]))

	assert.Equal(b.SchemaRelease(h), errcode.Success)
	assert.Equal(b.SchemaRelease(h), errcode.InvalidSchemaHandle)
}

func TestBridge_SchemaSerializeAndLookup(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	b := newBridge(t, m)
	w := openWallet(t, b, "issuer")
	h := createSchema(t, b, "email")
	id := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.SchemaCommit(cmd, h, w, cb)
	}).val

	s := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.SchemaSerialize(cmd, h, cb)
	})
	assert.Equal(s.code, errcode.Success)
	h2 := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.SchemaDeserialize(cmd, s.val, cb)
	})
	assert.Equal(h2.code, errcode.Success)
	assert.That(h2.val != h)

	l := do(t, func(cmd cmdh.Handle, cb Callback[Lookup]) errcode.Code {
		return b.SchemaGetAttributes(cmd, "", id, cb)
	})
	assert.Equal(l.code, errcode.Success)
	assert.That(l.val.Handle != 0)
	assert.Equal(l.val.Attrs, `["email","name"]`)

	bad := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.SchemaDeserialize(cmd, "{", cb)
	})
	assert.Equal(bad.code, errcode.InvalidJSON)
}

func TestBridge_NilCallback(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	b := newBridge(t, m)
	assert.Equal(b.SchemaCreate(1, "", "email", "1.0", `["a"]`, nil), errcode.InvalidOption)
	assert.Equal(b.WalletOpen(2, "w", "key", nil), errcode.InvalidOption)
	assert.Equal(m.Count(sdktest.OpCreateSchema), 0)
}

func TestBridge_SyncValidation(t *testing.T) {
	m := sdktest.New()
	b := newBridge(t, m)

	tests := []struct {
		name string
		want errcode.Code
		call func(cb Callback[registry.Handle]) errcode.Code
	}{
		{"bad attrs", errcode.InvalidJSON, func(cb Callback[registry.Handle]) errcode.Code {
			return b.SchemaCreate(7, "", "email", "1.0", `not json`, cb)
		}},
		{"no name", errcode.InvalidOption, func(cb Callback[registry.Handle]) errcode.Code {
			return b.SchemaCreate(7, "", "", "1.0", `["a"]`, cb)
		}},
		{"no schema id", errcode.InvalidOption, func(cb Callback[registry.Handle]) errcode.Code {
			return b.CredDefCreate(7, "", "", "tag", cb)
		}},
		{"no wallet key", errcode.InvalidOption, func(cb Callback[registry.Handle]) errcode.Code {
			return b.WalletOpen(7, "w", "", cb)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			cb, ch := collect[registry.Handle]()
			code := tt.call(cb)
			assert.Equal(code, tt.want)
			// the callback is already called when the call returns
			assert.Equal(len(ch), 1)
			r := <-ch
			assert.Equal(r.cmd, cmdh.Handle(7))
			assert.Equal(r.code, tt.want)
			assert.Equal(r.val, registry.Handle(0))
		})
	}
	assert.PushTester(t)
	defer assert.PopTester()
	assert.Equal(m.Count(sdktest.OpCreateSchema), 0)
}

func TestBridge_InvalidHandles(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	b := newBridge(t, sdktest.New())
	w := openWallet(t, b, "w")
	h := createSchema(t, b, "email")

	cb, ch := collect[string]()
	assert.Equal(b.SchemaCommit(1, h, 12345, cb), errcode.InvalidWalletHandle)
	assert.Equal(len(ch), 1)
	<-ch
	assert.Equal(b.SchemaCommit(2, 12345, w, cb), errcode.InvalidSchemaHandle)
	assert.Equal(len(ch), 1)
	<-ch
	assert.Equal(b.CredDefGetID(3, 12345, cb), errcode.InvalidCredDefHandle)
	<-ch
	assert.Equal(b.ConnectionInviteDetails(4, 12345, cb), errcode.InvalidConnectionHandle)
	<-ch
	assert.Equal(b.CredDefRelease(12345), errcode.InvalidCredDefHandle)
	assert.Equal(b.ConnectionRelease(0), errcode.InvalidConnectionHandle)
}

func TestBridge_CredDef(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	b := newBridge(t, m)
	w := openWallet(t, b, "issuer")
	sh := createSchema(t, b, "email")
	schemaID := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.SchemaCommit(cmd, sh, w, cb)
	}).val

	create := func(src string) registry.Handle {
		r := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
			return b.CredDefCreate(cmd, src, schemaID, "tag", cb)
		})
		assert.Equal(r.code, errcode.Success)
		return r.val
	}
	h1 := create("cd1")
	c := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.CredDefCommit(cmd, h1, w, cb)
	})
	assert.Equal(c.code, errcode.Success)
	assert.NotEmpty(c.val)

	id := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.CredDefGetID(cmd, h1, cb)
	})
	assert.Equal(id.val, c.val)

	h2 := create("cd2")
	dup := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.CredDefCommit(cmd, h2, w, cb)
	})
	assert.Equal(dup.code, errcode.CredDefAlreadyCreated)
	assert.Equal(dup.val, "")
	assert.Equal(m.Count(sdktest.OpCreateCredDef), 1)
	assert.Equal(m.Count(sdktest.OpWriteCredDef), 1)

	st := do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.CredDefGetState(cmd, h2, cb)
	})
	assert.Equal(st.val, int(creddef.AlreadyCreated))

	d := do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.CredDefGetData(cmd, h1, nil, cb)
	})
	assert.Equal(d.code, errcode.BufferTooSmall)
	assert.That(d.val > 1)

	s := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.CredDefSerialize(cmd, h1, cb)
	})
	h3 := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.CredDefDeserialize(cmd, s.val, cb)
	})
	assert.Equal(h3.code, errcode.Success)
	assert.Equal(b.CredDefRelease(h3.val), errcode.Success)
}

func TestBridge_ConcurrentWalletOpen(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	m.Delay = 10 * time.Millisecond
	b := newBridge(t, m)
	do(t, func(cmd cmdh.Handle, cb Callback[bool]) errcode.Code {
		return b.WalletCreate(cmd, "shared", "key", cb)
	})

	const n = 6
	cb, ch := collect[registry.Handle]()
	for i := 0; i < n; i++ {
		assert.Equal(b.WalletOpen(cmdh.Handle(100+i), "shared", "key", cb), errcode.Success)
	}
	ok, dup := 0, 0
	cmds := make(map[cmdh.Handle]bool)
	for i := 0; i < n; i++ {
		r := wait(t, ch)
		cmds[r.cmd] = true
		switch r.code {
		case errcode.Success:
			ok++
		case errcode.DuplicateWallet:
			dup++
		default:
			t.Errorf("unexpected code %d", r.code)
		}
	}
	assert.Equal(ok, 1)
	assert.Equal(dup, n-1)
	assert.Equal(len(cmds), n)
}

func TestBridge_WalletClose(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	b := newBridge(t, sdktest.New())
	w := openWallet(t, b, "w")
	closeW := func(cmd cmdh.Handle, cb Callback[None]) errcode.Code {
		return b.WalletClose(cmd, w, cb)
	}
	assert.Equal(do(t, closeW).code, errcode.Success)
	assert.Equal(do(t, closeW).code, errcode.InvalidWalletHandle)

	exists := do(t, func(cmd cmdh.Handle, cb Callback[bool]) errcode.Code {
		return b.WalletCreate(cmd, "w", "key", cb)
	})
	assert.Equal(exists.code, errcode.Success)
	assert.That(exists.val)
}

func TestBridge_Connection(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	b := newBridge(t, sdktest.New())
	w := openWallet(t, b, "w")

	h := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.ConnectionCreate(cmd, "", cb)
	}).val

	details := func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.ConnectionInviteDetails(cmd, h, cb)
	}
	assert.Equal(do(t, details).code, errcode.ConnectionNotReady)

	c := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.ConnectionConnect(cmd, h, w, cb)
	})
	assert.Equal(c.code, errcode.Success)
	var inv map[string]any
	assert.NoError(json.Unmarshal([]byte(c.val), &inv))
	assert.Equal(inv["serviceEndpoint"], any("http://localhost:8080"))

	d := do(t, details)
	assert.Equal(d.val, c.val)

	st := do(t, func(cmd cmdh.Handle, cb Callback[int]) errcode.Code {
		return b.ConnectionGetState(cmd, h, cb)
	})
	assert.Equal(st.val, 2)

	s := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.ConnectionSerialize(cmd, h, cb)
	})
	assert.Equal(s.code, errcode.Success)
	assert.Equal(b.ConnectionRelease(h), errcode.Success)
}

func TestBridge_PanicIsUnknownError(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mock := sdkmock.NewMockSDK(ctrl)
	mock.EXPECT().CreateSchema(issuerDID, "email", "1.0", []string{"a"}).
		DoAndReturn(func(string, string, string, []string) findy.Channel {
			panic("boom")
		})

	b, err := New(testConfig, mock)
	assert.NoError(err)
	defer b.Shutdown()

	r := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.SchemaCreate(cmd, "", "email", "1.0", `["a"]`, cb)
	})
	assert.Equal(r.code, errcode.UnknownError)
	assert.Equal(b.Stats()[errcode.Schema], 0)
}

func TestBridge_CallbackPanicIsNotCalledTwice(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	reg := prometheus.NewRegistry()
	b, err := New(testConfig, sdktest.New(), WithRegisterer(reg))
	assert.NoError(err)
	defer b.Shutdown()

	var calls sync.WaitGroup
	calls.Add(1)
	count := 0
	b.ConnectionCreate(1, "x", func(cmdh.Handle, errcode.Code, registry.Handle) {
		count++
		calls.Done()
		panic("callback panics")
	})
	calls.Wait()
	// let the recover run
	assert.NoError(b.Shutdown())
	assert.Equal(count, 1)
	assert.Equal(testutil.ToFloat64(b.metrics.dropped), float64(1))
}

func TestBridge_Shutdown(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	m := sdktest.New()
	b, err := New(testConfig, m)
	assert.NoError(err)
	openWallet(t, b, "w")
	createSchema(t, b, "email")
	assert.Equal(b.Stats()[errcode.Wallet], 1)

	assert.NoError(b.Shutdown())
	assert.Equal(m.Count(sdktest.OpCloseWallet), 1)
	for _, n := range b.Stats() {
		assert.Equal(n, 0)
	}
	assert.That(errors.Is(b.Shutdown(), errcode.ErrNotInitialized))

	cb, ch := collect[registry.Handle]()
	assert.Equal(b.ConnectionCreate(1, "", cb), errcode.NotInitialized)
	assert.Equal(len(ch), 1)
	assert.Equal(b.SchemaRelease(1), errcode.NotInitialized)
}

func TestBridge_Metrics(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	reg := prometheus.NewRegistry()
	b, err := New(testConfig, sdktest.New(), WithRegisterer(reg))
	assert.NoError(err)
	defer b.Shutdown()

	openWallet(t, b, "w")
	createSchema(t, b, "email")
	b.collectStats()

	assert.Equal(testutil.ToFloat64(b.metrics.calls.WithLabelValues("schema_create", "0")), float64(1))
	assert.Equal(testutil.ToFloat64(b.metrics.objects.WithLabelValues("schema")), float64(1))
	assert.Equal(testutil.ToFloat64(b.metrics.objects.WithLabelValues("wallet")), float64(1))

	// second bridge to the same registry fails to register
	_, err = New(testConfig, sdktest.New(), WithRegisterer(reg))
	assert.Error(err)
}

func TestBridge_PersistentStore(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	cfg := testConfig
	cfg.StorePath = t.TempDir()
	cfg.StoreKey = "15308490f1e4026284594dd08d31291bc8ef2aeac730d0daf6ff87bb92d4336c"
	m := sdktest.New()

	b, err := New(cfg, m)
	assert.NoError(err)
	w := openWallet(t, b, "issuer")
	sh := createSchema(t, b, "email")
	schemaID := do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.SchemaCommit(cmd, sh, w, cb)
	}).val
	cd := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b.CredDefCreate(cmd, "", schemaID, "tag", cb)
	}).val
	assert.Equal(do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b.CredDefCommit(cmd, cd, w, cb)
	}).code, errcode.Success)
	assert.NoError(b.Shutdown())

	// the restarted bridge knows the cred def without asking the SDK
	b2, err := New(cfg, m)
	assert.NoError(err)
	defer b2.Shutdown()
	w2 := openWallet(t, b2, "issuer")
	cd2 := do(t, func(cmd cmdh.Handle, cb Callback[registry.Handle]) errcode.Code {
		return b2.CredDefCreate(cmd, "", schemaID, "tag", cb)
	}).val
	assert.Equal(do(t, func(cmd cmdh.Handle, cb Callback[string]) errcode.Code {
		return b2.CredDefCommit(cmd, cd2, w2, cb)
	}).code, errcode.CredDefAlreadyCreated)
	assert.Equal(m.Count(sdktest.OpCreateCredDef), 1)
}

func TestErrorMessage(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.Equal(ErrorMessage(errcode.Success), "Success")
	assert.NotEmpty(ErrorMessage(errcode.CredDefAlreadyCreated))
}
