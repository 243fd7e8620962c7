package services

// segmentMap resolves (instrument type, exchange segment letter) pairs
// from the scrip master to the Dhan annexure codes the option chain API
// expects. Only underlyings with listed derivatives belong here.
var segmentMap = map[[2]string]string{
	{"INDEX", "I"}: "IDX_I",   // NIFTY, BANKNIFTY, FINNIFTY, SENSEX...
	{"EQ", "E"}:    "NSE_FNO", // stock option underlyings
}

// ToExchangeSegment maps a scrip master row to its annexure segment code.
// The second return is false when the instrument has no option chain.
func ToExchangeSegment(instrumentType, segment string) (string, bool) {
	code, ok := segmentMap[[2]string{instrumentType, segment}]
	return code, ok
}
