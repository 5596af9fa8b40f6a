package dto

// AccountFailure records why a single account could not be resynced during a
// batch recalculation.
type AccountFailure struct {
	AccountID string `json:"accountId"`
	Reason    string `json:"reason"`
}

// RecalculateResult reports per-account outcomes of a full recalculation.
// One failing account never aborts the rest; callers surface partial failure
// instead of a single opaque error.
type RecalculateResult struct {
	Succeeded []string         `json:"succeeded"`
	Failed    []AccountFailure `json:"failed"`
}

type SyncBalanceResponse struct {
	Balance float64 `json:"balance"`
}
