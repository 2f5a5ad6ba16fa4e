package state

import "errors"

// ErrOutOfFund is returned by transfer when the sender's balance is
// insufficient. No balance has changed when this error is raised; both
// accounts have already been loaded and touched.
var ErrOutOfFund = errors.New("state: out of fund")

// ErrOverflowPayment is returned by transfer when crediting the recipient
// would overflow 256 bits. It is raised after the sender has already been
// debited; this asymmetry is consensus-legal since mainnet balances cannot
// reach 2^256.
var ErrOverflowPayment = errors.New("state: overflow payment")
