package cmd

import (
	"crypto/ed25519"
	"crypto/rand"
	"log"

	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new account key pair",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal(err)
	}

	if err := savePrivateKey(getPrivateKeyPath(), priv); err != nil {
		log.Fatal(err)
	}

	var pk signature.PublicKey
	copy(pk[:], pub)
	log.Printf("account generated: %s", pk.String())
}
