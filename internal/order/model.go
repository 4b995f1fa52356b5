package order

// State is a step of one placement attempt.
type State string

const (
	StateReceived         State = "RECEIVED"
	StateValidatedSyntax  State = "VALIDATED_SYNTAX"
	StateUserChecked      State = "USER_CHECKED"
	StateProductChecked   State = "PRODUCT_CHECKED"
	StateStockSufficient  State = "STOCK_SUFFICIENT"
	StateInventoryUpdated State = "INVENTORY_UPDATED"
	StateOrderPersisted   State = "ORDER_PERSISTED"
	StateRejected         State = "REJECTED"
)

var validNext = map[State]map[State]bool{
	StateReceived:         {StateValidatedSyntax: true, StateRejected: true},
	StateValidatedSyntax:  {StateUserChecked: true, StateRejected: true},
	StateUserChecked:      {StateProductChecked: true, StateRejected: true},
	StateProductChecked:   {StateStockSufficient: true, StateRejected: true},
	StateStockSufficient:  {StateInventoryUpdated: true, StateRejected: true},
	StateInventoryUpdated: {StateOrderPersisted: true, StateRejected: true},
	StateOrderPersisted:   {},
	StateRejected:         {},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}

func (s State) Terminal() bool {
	return s == StateOrderPersisted || s == StateRejected
}

// Order is the record fabricated once inventory has been decremented.
type Order struct {
	ID        int
	UserID    int
	ProductID int
	Quantity  int
}
