/*
Package agent holds the object services of the bridge. The agent package is
empty itself, all the functionality is inside sub-packages:

	errcode    error taxonomy and the stable numeric codes
	cmdh       command handle allocator
	registry   generic handle registry with generation counted handles
	async      futures over the SDK result channels and one-shot slots
	sdk        the identity SDK contract, sdktest and sdkmock for tests
	store      the persistent and in-memory indexes of the committed objects
	pool       the process wide ledger pool connection
	schema     schema state machine and service
	creddef    credential definition state machine and service
	wallet     wallet open/close bookkeeping
	connection pairwise connection and its invitation

The bridge package ties them together and the capi package exports them as
the C ABI.
*/
package agent
