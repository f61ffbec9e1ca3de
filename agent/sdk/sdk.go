// Package sdk defines the contract to the external identity SDK. Every call is
// submitted asynchronously and completes exactly once through the returned
// findy.Channel with a dto.Result carrying the SDK's error code and payload.
// The production implementation is in the indy package.
package sdk

import (
	"github.com/findy-network/findy-wrapper-go"
)

// SDK error codes the bridge needs to recognize. The codes are libindy's.
const (
	WalletAlreadyExistsError           = 203
	WalletAlreadyOpenedError           = 206
	LedgerInvalidTransactionError      = 304
	LedgerNotFoundError                = 309
	AnoncredsCredDefAlreadyExistsError = 404
)

// SDK is the narrow submit-and-complete interface to the ledger and wallet
// operations.
//
// Result payloads:
//   - CreateSchema: Str1 schema ID, Str2 schema JSON
//   - ReadSchema: Str1 schema ID, Str2 schema JSON including seqNo
//   - CreateCredDef: Str1 cred def ID, Str2 cred def JSON
//   - ReadCredDef: Str1 cred def ID, Str2 cred def JSON
//   - OpenWallet: Handle
//   - CreateDID: Str1 DID, Str2 verkey
//
// WriteSchema, WriteCredDef, CreateWallet and CloseWallet only report the
// error status.
type SDK interface {
	CreateSchema(issuerDID, name, version string, attrs []string) findy.Channel
	WriteSchema(wallet int, submitterDID, schemaJSON string) findy.Channel
	ReadSchema(submitterDID, schemaID string) findy.Channel

	CreateCredDef(wallet int, issuerDID, schemaJSON, tag string) findy.Channel
	WriteCredDef(wallet int, submitterDID, credDefJSON string) findy.Channel
	ReadCredDef(submitterDID, credDefID string) findy.Channel

	CreateWallet(name, key string) findy.Channel
	OpenWallet(name, key string) findy.Channel
	CloseWallet(wallet int) findy.Channel

	CreateDID(wallet int, seed string) findy.Channel
}
