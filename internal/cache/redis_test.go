package cache

import "testing"

func TestStockLockKey(t *testing.T) {
	if got := StockLockKey(1001); got != "lock:stock:1001" {
		t.Errorf("Unexpected lock key: %q", got)
	}

	// Sales and transfers derive their lock from the same builder, so two
	// engines touching the same store always contend on one key.
	if StockLockKey(1002) == StockLockKey(1003) {
		t.Error("Expected distinct stores to lock distinct keys")
	}
}
