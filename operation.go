package wallet

// Operation is the normalized kind of a ledger row.
type Operation string

// Normalized operations. Raw labels outside the mapping normalize to OpUnknown:
// unknown rows still move holdings but never touch fiat-basis accounting.
const (
	OpBuyFiat      Operation = "buy_fiat"
	OpSellFiat     Operation = "sell_fiat"
	OpBuy          Operation = "buy"
	OpSell         Operation = "sell"
	OpRevenue      Operation = "revenue"
	OpSpend        Operation = "spend"
	OpFee          Operation = "fee"
	OpCashback     Operation = "cashback"
	OpDeposit      Operation = "deposit"
	OpWithdraw     Operation = "withdraw"
	OpWithdrawFiat Operation = "withdraw_fiat"
	OpDistribution Operation = "distribution"
	OpStaking      Operation = "staking"
	OpConvert      Operation = "convert"
	OpAirdrop      Operation = "airdrop"
	OpUnknown      Operation = "unknown"
)

// operationMapping maps the exchange's raw operation labels to normalized operations.
var operationMapping = map[string]Operation{
	"Buy Crypto With Fiat":          OpBuyFiat,
	"Sell Crypto For Fiat":          OpSellFiat,
	"Transaction Buy":               OpBuy,
	"Transaction Sold":              OpSell,
	"Transaction Revenue":           OpRevenue,
	"Transaction Spend":             OpSpend,
	"Transaction Fee":               OpFee,
	"Cashback Voucher":              OpCashback,
	"Deposit":                       OpDeposit,
	"Withdraw":                      OpWithdraw,
	"Distribution":                  OpDistribution,
	"Staking Rewards":               OpStaking,
	"Binance Convert":               OpConvert,
	"Crypto Box":                    OpAirdrop,
	"Simple Earn Flexible Interest": OpStaking,
	"Fiat Withdraw":                 OpWithdrawFiat,
}

// ignoredOperations are non-economic reclassification rows (moving funds
// between spot and earn wallets, loan collateral shuffling). They are filtered
// out before processing.
var ignoredOperations = map[string]bool{
	"Simple Earn Flexible Subscription":   true,
	"Simple Earn Flexible Redemption":     true,
	"Simple Earn Locked Subscription":     true,
	"Simple Earn Locked Redemption":       true,
	"Flexible Loan - Collateral Transfer": true,
}

// NormalizeOperation maps a raw operation label to its normalized Operation.
func NormalizeOperation(label string) Operation {
	if op, ok := operationMapping[label]; ok {
		return op
	}
	return OpUnknown
}

// Ignored reports whether a raw operation label is filtered out before processing.
func Ignored(label string) bool { return ignoredOperations[label] }

// fiatCurrencies is the fixed set of legal-tender (state-issued) currencies.
// A disposal of crypto into one of these is a taxable realization event.
// Stablecoins (USDT, USDC, ...) are deliberately NOT in this set: they are
// crypto assets, and converting into them defers taxation.
var fiatCurrencies = map[string]bool{
	"EUR": true,
	"USD": true,
	"GBP": true,
	"CHF": true,
	"JPY": true,
	"CAD": true,
	"AUD": true,
	"NZD": true,
	"SGD": true,
}

// IsFiat reports whether the asset is a legal-tender currency.
func IsFiat(asset string) bool { return fiatCurrencies[asset] }
