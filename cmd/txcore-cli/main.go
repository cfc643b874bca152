// Command line front end of the wallet transaction core.
// Usage: go run ./cmd/txcore-cli --help
package main

import "github.com/AlexZinkM/wallet-txcore/cmd/txcore-cli/cmd"

func main() {
	cmd.Execute()
}
