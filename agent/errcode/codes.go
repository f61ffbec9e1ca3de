package errcode

import "fmt"

// Code is the stable numeric error code handed to foreign callers. Codes are
// partitioned by domain: 1-999 are passed through from the external SDK, the
// rest are ours and each domain owns one hundred codes.
type Code uint32

const Success Code = 0

// Common codes, 1000-1099.
const (
	UnknownError       Code = 1001
	InvalidOption      Code = 1007
	InvalidDID         Code = 1008
	NotBase58          Code = 1014
	InvalidJSON        Code = 1016
	BufferTooSmall     Code = 1019
	SDKSubmitError     Code = 1028
	NoPoolOpen         Code = 1030
	InvalidState       Code = 1040
	NotInitialized     Code = 1050
	AlreadyInitialized Code = 1051
	StoreError         Code = 1060
)

// Schema codes, 1100-1199.
const (
	InvalidSchemaHandle Code = 1101 + iota
	InvalidSchema
	SchemaNotCommitted
	SchemaCreateError
	InvalidSchemaSeqNo
)

// Credential definition codes, 1200-1299.
const (
	InvalidCredDefHandle Code = 1201 + iota
	CredDefAlreadyCreated
	CredDefCreateError
	InvalidCredDefJSON
	CredDefNotCommitted
)

// Wallet codes, 1300-1399.
const (
	InvalidWalletHandle Code = 1301 + iota
	DuplicateWallet
	WalletOpenError
	WalletCreateError
	TooManyOpenWallets
)

// Connection codes, 1400-1499.
const (
	InvalidConnectionHandle Code = 1401 + iota
	ConnectionNotReady
	ConnectionError
)

const (
	externalMax = 999
	domainWidth = 100
)

var messages = map[Code]string{
	Success:            "Success",
	UnknownError:       "Unknown Error",
	InvalidOption:      "Invalid Option",
	InvalidDID:         "Invalid DID",
	NotBase58:          "Value needs to be base58",
	InvalidJSON:        "Invalid JSON string",
	BufferTooSmall:     "Output buffer is too small",
	SDKSubmitError:     "Call to the identity SDK failed",
	NoPoolOpen:         "No Pool open. Can't return handle.",
	InvalidState:       "Object is not in a state for this operation",
	NotInitialized:     "Library is not initialized",
	AlreadyInitialized: "Library is already initialized",
	StoreError:         "Local object store failed",

	InvalidSchemaHandle: "Invalid Schema Handle",
	InvalidSchema:       "Invalid Schema",
	SchemaNotCommitted:  "Schema is not yet committed to the ledger",
	SchemaCreateError:   "Call to create Schema failed",
	InvalidSchemaSeqNo:  "No Schema for that schema sequence number",

	InvalidCredDefHandle:  "Invalid Credential Definition handle",
	CredDefAlreadyCreated: "Credential Definition already exists for this schema and issuer",
	CredDefCreateError:    "Call to create Credential Definition failed",
	InvalidCredDefJSON:    "Credential Def not in valid json",
	CredDefNotCommitted:   "Credential Definition is not yet committed to the ledger",

	InvalidWalletHandle: "Invalid Wallet or Search Handle",
	DuplicateWallet:     "Wallet with that name is already open",
	WalletOpenError:     "Error opening the wallet",
	WalletCreateError:   "Error Creating a wallet",
	TooManyOpenWallets:  "Too many wallets are open",

	InvalidConnectionHandle: "Invalid Connection Handle",
	ConnectionNotReady:      "Connection is not ready, connect it first",
	ConnectionError:         "Error with Connection",
}

// Text returns the catalog message of the code. Unknown codes of the external
// range get a generic text because their meaning is owned by the SDK.
func Text(c Code) string {
	if m, ok := messages[c]; ok {
		return m
	}
	if c > 0 && c <= externalMax {
		return fmt.Sprintf("Identity SDK error %d", c)
	}
	return "Unknown error code"
}

// IsExternal tells if the code is a pass-through code from the SDK.
func (c Code) IsExternal() bool {
	return c > 0 && c <= externalMax
}

func (c Code) String() string {
	return fmt.Sprintf("%d", uint32(c))
}
