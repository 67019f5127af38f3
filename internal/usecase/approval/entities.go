package approval

// Options toggles the optional hardening of the confirm step.
type Options struct {
	// VerifyConfirmations checks the disbursement receipt on chain before
	// activating the loan.
	VerifyConfirmations bool
	// AdminWallet is recorded as the sender when the approving admin has no
	// linked wallet.
	AdminWallet string
}
