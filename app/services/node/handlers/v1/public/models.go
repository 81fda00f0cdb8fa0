package public

import (
	"github.com/ardanlabs/pallets/foundation/runtime"
)

type account struct {
	Account runtime.AccountID `json:"account"`
	Balance runtime.Balance   `json:"balance"`
	Nonce   runtime.Nonce     `json:"nonce"`
}

type claim struct {
	Content runtime.Content   `json:"content"`
	Owner   runtime.AccountID `json:"owner"`
}

type stateInfo struct {
	BlockNumber runtime.BlockNumber `json:"block_number"`
	LatestBlock string              `json:"latest_block"`
	StateRoot   string              `json:"state_root"`
	Accounts    []account           `json:"accounts"`
	Claims      []claim             `json:"claims"`
}

type blockResult struct {
	Number    runtime.BlockNumber   `json:"number"`
	Hash      string                `json:"hash"`
	StateRoot string                `json:"state_root"`
	Receipts  []runtime.ReceiptData `json:"receipts"`
}
