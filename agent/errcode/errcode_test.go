package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lainio/err2/assert"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Success},
		{"plain", errors.New("plain"), UnknownError},
		{"schema", Schema.New(InvalidSchemaHandle, "handle %d", 5), InvalidSchemaHandle},
		{"wrapped", fmt.Errorf("commit: %w", ErrCredDefAlreadyCreated), CredDefAlreadyCreated},
		{"external", Wallet.Common(203, "WalletAlreadyExistsError"), Code(203)},
		{"external zero", Wallet.Common(0, "no code"), SDKSubmitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			assert.Equal(Of(tt.err), tt.want)
		})
	}
}

func TestError_IsByCode(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	a := Wallet.New(DuplicateWallet, "wallet %s", "alice")
	b := Wallet.New(DuplicateWallet, "wallet %s", "bob")
	assert.That(errors.Is(a, b))
	assert.That(errors.Is(a, ErrDuplicateWallet))
	assert.That(!errors.Is(a, ErrInvalidWalletHandle))
	assert.That(a.Error() != b.Error())

	c1 := Schema.Common(306, "one")
	c2 := CredDef.Common(306, "two")
	assert.That(errors.Is(c1, c2))
	assert.That(c1.IsExternal())
}

func TestDomain_Owns(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	owned := map[Domain][]Code{
		Common:     {UnknownError, InvalidOption, BufferTooSmall, StoreError},
		Schema:     {InvalidSchemaHandle, SchemaNotCommitted, InvalidSchemaSeqNo},
		CredDef:    {InvalidCredDefHandle, CredDefAlreadyCreated, CredDefNotCommitted},
		Wallet:     {InvalidWalletHandle, DuplicateWallet, TooManyOpenWallets},
		Connection: {InvalidConnectionHandle, ConnectionNotReady, ConnectionError},
	}
	for d, codes := range owned {
		for _, c := range codes {
			assert.That(d.Owns(c), "%s should own %d", d, c)
			for other := range owned {
				if other != d {
					assert.That(!other.Owns(c), "%s should not own %d", other, c)
				}
			}
		}
	}
}

func TestText(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	assert.Equal(Text(Success), "Success")
	assert.Equal(Text(BufferTooSmall), "Output buffer is too small")
	assert.Equal(Text(212), "Identity SDK error 212")
	assert.Equal(Text(4242), "Unknown error code")
	for c := range messages {
		assert.NotEmpty(Text(c))
	}
}
