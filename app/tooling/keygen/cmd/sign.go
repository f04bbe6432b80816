package cmd

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/spf13/cobra"
)

var (
	leaderURL  string
	toHex      string
	amount     uint64
	recentHash string
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transfer, fetching recent_hash from the leader if not given",
	Run:   signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&leaderURL, "url", "u", "http://localhost:8080", "URL of the leader.")
	signCmd.Flags().StringVarP(&toHex, "to", "t", "", "Recipient public key, hex encoded.")
	signCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Amount to transfer.")
	signCmd.Flags().StringVarP(&recentHash, "recent-hash", "r", "", "Recent hash to sign against; fetched from the leader if empty.")
}

// transferWire is the exact wire shape the leader's /v1/transfer endpoint
// expects.
type transferWire struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     uint64 `json:"amount"`
	RecentHash string `json:"recent_hash"`
	Sig        string `json:"sig"`
}

func signRun(cmd *cobra.Command, args []string) {
	priv, err := loadPrivateKey(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	to, err := signature.ParsePublicKey(toHex)
	if err != nil {
		log.Fatal(err)
	}

	rh, err := resolveRecentHash()
	if err != nil {
		log.Fatal(err)
	}

	pub := priv.Public().(ed25519.PublicKey)
	var from signature.PublicKey
	copy(from[:], pub)

	signable := signature.Signable{From: from, To: to, Amount: amount, RecentHash: rh}
	sig := signature.Sign(priv, signable)

	wire := transferWire{
		From:       from.String(),
		To:         to.String(),
		Amount:     amount,
		RecentHash: rh.String(),
		Sig:        sig.String(),
	}

	out, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func resolveRecentHash() (hash.Hash, error) {
	if recentHash != "" {
		return hash.Parse(recentHash)
	}

	resp, err := http.Get(leaderURL + "/v1/poh")
	if err != nil {
		return hash.Hash{}, fmt.Errorf("requesting recent hash: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return hash.Hash{}, fmt.Errorf("decoding recent hash response: %w", err)
	}

	return hash.Parse(body.Hash)
}
