package model

// SwapLegRecord is a SwapExecuted leg located on chain, produced by the scanner.
type SwapLegRecord struct {
	ChainID     uint64 `json:"chain_id"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint64 `json:"log_index"`
	Contract    string `json:"contract"`
	Token       string `json:"token"`
	Symbol      string `json:"symbol"`
	AmountIn    string `json:"amount_in"`
	AmountOut   string `json:"amount_out"`
	Timestamp   uint64 `json:"timestamp"`
}
