package public

// AirdropRequest is the wire shape of a POST /v1/airdrop body.
type AirdropRequest struct {
	To     string `json:"to" validate:"required,len=64,hexadecimal"`
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

// TransferRequest is the wire shape of a POST /v1/transfer body. Every
// field arrives as hex/decimal text; the handler converts the hex fields
// with signature.ParsePublicKey, hash.Parse, and signature.ParseSignature.
type TransferRequest struct {
	From       string `json:"from" validate:"required,len=64,hexadecimal"`
	To         string `json:"to" validate:"required,len=64,hexadecimal"`
	Amount     uint64 `json:"amount" validate:"required,gt=0"`
	RecentHash string `json:"recent_hash" validate:"required,len=64,hexadecimal"`
	Sig        string `json:"sig" validate:"required,len=128,hexadecimal"`
}

// statusResponse is the generic {"status": "..."} body returned by
// write endpoints on success.
type statusResponse struct {
	Status string `json:"status"`
}
