package indexer

import "testing"

func TestParseAddresses(t *testing.T) {
	got, err := ParseAddresses([]string{
		" 0x342309bEcaD50D2de2Ad2C88d4E9B6392c7AbEBB ",
		"",
		"0x342309becad50d2de2ad2c88d4e9b6392c7abebb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one address, got %d", len(got))
	}
}

func TestParseAddressesInvalid(t *testing.T) {
	if _, err := ParseAddresses([]string{"0x1234"}); err == nil {
		t.Fatalf("expected error for short address")
	}
	if _, err := ParseAddresses([]string{" "}); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
