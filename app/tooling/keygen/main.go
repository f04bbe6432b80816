// This program provides the keygen CLI for generating accounts, printing
// addresses, and signing transfers against a running leader.
package main

import "github.com/ardanlabs/pohledger/app/tooling/keygen/cmd"

func main() {
	cmd.Execute()
}
