package model

import (
	"encoding/json"
	"testing"
)

func TestSwapLegJSONStringAmounts(t *testing.T) {
	leg := SwapLeg{
		Token:     "0xba2ae424d960c26247dd6c32edc70b295c744c43",
		Symbol:    "DOGE",
		Decimals:  8,
		AmountIn:  "500000000000000000",
		AmountOut: "12345678901234567890123",
		LogIndex:  4,
	}

	data, err := json.Marshal(leg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, ok := decoded["amount_in"].(string); !ok {
		t.Fatalf("amount_in should be string")
	}
	if _, ok := decoded["amount_out"].(string); !ok {
		t.Fatalf("amount_out should be string")
	}
}

func TestTradeOutcomeOmitsUnusedTotals(t *testing.T) {
	outcome := TradeOutcome{
		TxHash:   "0x01",
		Side:     SideSell,
		Received: "0.25",
		Tokens:   []LegResult{{Address: "0x02", Symbol: "DOGE", Amount: "10"}},
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["paid"]; ok {
		t.Fatalf("paid should be omitted for sells")
	}
	if decoded["side"] != "sell" {
		t.Fatalf("side mismatch: %v", decoded["side"])
	}
}
