package cmd

import (
	"crypto/ed25519"
	"fmt"
	"log"

	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the public key for the configured account",
	Run:   addressRun,
}

func init() {
	rootCmd.AddCommand(addressCmd)
}

func addressRun(cmd *cobra.Command, args []string) {
	priv, err := loadPrivateKey(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	pub := priv.Public().(ed25519.PublicKey)

	var pk signature.PublicKey
	copy(pk[:], pub)
	fmt.Println(pk.String())
}
