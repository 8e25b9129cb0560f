package ledger

// Stock bookkeeping for the order-item lifecycle. Each function maps a
// product's current stock to its new stock, or rejects the write with
// *InsufficientStockError. Callers must apply the result in the same
// transaction as the item write itself.

// ReserveStock validates an item creation of the given quantity against the
// product's current stock and returns the decremented stock.
func ReserveStock(stock, quantity int) (int, error) {
	if quantity > stock {
		return stock, &InsufficientStockError{Available: stock, Requested: quantity}
	}
	return clampStock(stock - quantity), nil
}

// AdjustStock validates an item quantity edit. The old quantity's reservation
// is returned to the pool before the new quantity is checked, so shrinking an
// item always succeeds and growing it may use the units it already holds.
func AdjustStock(stock, oldQuantity, newQuantity int) (int, error) {
	available := stock + oldQuantity
	if newQuantity > available {
		return stock, &InsufficientStockError{Available: available, Requested: newQuantity}
	}
	return clampStock(stock + oldQuantity - newQuantity), nil
}

// ReleaseStock returns an item's reserved quantity to the product on item
// deletion. Always succeeds.
func ReleaseStock(stock, quantity int) int {
	return stock + quantity
}

// clampStock floors stock at zero. The preconditions above never ask stock to
// go negative; the clamp guards against concurrent edits racing past them.
func clampStock(stock int) int {
	if stock < 0 {
		return 0
	}
	return stock
}
