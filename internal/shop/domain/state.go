package domain

// State is the persisted session blob: the four keys written to local
// storage after every mutation. It is a plain data snapshot; the live cart
// and ledger are owned by the application service.
type State struct {
	LoggedIn  bool       `json:"logged_in"`
	CartLines []CartLine `json:"cart_lines"`
	Orders    []Order    `json:"orders"`
	Theme     string     `json:"theme"`
}
