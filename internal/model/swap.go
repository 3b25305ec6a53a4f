package model

// Side identifies the direction of a batched trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// BuyRequest spends Amount of the native coin on Token.
type BuyRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// SellRequest sells Amount (token units) of Token for the native coin.
type SellRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// SwapLeg is a decoded SwapExecuted log. Amounts are base units.
type SwapLeg struct {
	Token     string `json:"token"`
	Symbol    string `json:"symbol"`
	Decimals  int32  `json:"decimals"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
	LogIndex  uint64 `json:"log_index"`
}

// LegResult is the display form of one leg of a trade.
type LegResult struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
	Amount  string `json:"amount"`
}

// TradeOutcome summarizes a mined batch transaction.
type TradeOutcome struct {
	TxHash      string      `json:"tx_hash"`
	Side        Side        `json:"side"`
	BlockNumber uint64      `json:"block_number"`
	Paid        string      `json:"paid,omitempty"`
	Received    string      `json:"received,omitempty"`
	Fee         string      `json:"fee,omitempty"`
	Tokens      []LegResult `json:"tokens"`
}
