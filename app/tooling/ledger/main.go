// This program executes blocks against the ledger runtime, offline or
// through a running node.
package main

import "github.com/ardanlabs/pallets/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
