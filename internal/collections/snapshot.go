package collections

// State keys for persisted collections records. The records are
// best-effort caches: there is no expiry and no compatibility contract,
// each run simply overwrites the previous one.
const (
	KeyBeforeIBuy        = "findez.smart_collections.before_i_buy"
	KeyRestock           = "findez.smart_collections.restock_essentials"
	KeyRestockHistory    = "findez.smart_collections.restock_history"
	KeyRestockDismissals = "findez.smart_collections.restock_dismissals"
)

// BeforeIBuySnapshot summarizes the most recent duplicate check.
type BeforeIBuySnapshot struct {
	ExactCount   int    `json:"exactCount"`
	SimilarCount int    `json:"similarCount"`
	UsedAtMs     int64  `json:"usedAtMs"`
	Query        string `json:"query"`
}

// RestockSnapshot summarizes the most recent restock scan.
type RestockSnapshot struct {
	LowOrEmptyCount int   `json:"lowOrEmptyCount"`
	ForgottenCount  int   `json:"forgottenCount"`
	UsedAtMs        int64 `json:"usedAtMs"`
}
