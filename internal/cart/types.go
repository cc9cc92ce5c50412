package cart

// PendingCartItem is one guest-cart line waiting to be merged into the
// user's server-side cart after login.
type PendingCartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PendingSavedItem is one guest saved-for-later entry waiting to be merged.
type PendingSavedItem struct {
	ProductID string `json:"product_id"`
}

// PendingSync is the explicit queue of guest state handed to Merge on
// login. The client drains its local storage into this structure.
type PendingSync struct {
	CartItems  []PendingCartItem  `json:"cart_items"`
	SavedItems []PendingSavedItem `json:"saved_items"`
}

// FailedItem records a single merge failure.
type FailedItem struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// MergeResult summarizes a best-effort merge.
type MergeResult struct {
	MergedCartItems  int          `json:"merged_cart_items"`
	MergedSavedItems int          `json:"merged_saved_items"`
	Failed           []FailedItem `json:"failed,omitempty"`
}
