package repayment

type Options struct {
	// AdminWallet receives repayments when the approving admin has no wallet.
	AdminWallet         string
	VerifyConfirmations bool
}
