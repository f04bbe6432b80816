package public

import "github.com/ardanlabs/pohledger/foundation/ledger/slot"

// IngestRequest is the wire shape of a POST /v1/ingest body: one sealed
// slot, exactly as produced by the leader's ledger.
type IngestRequest struct {
	Slot slot.Slot `json:"slot" validate:"required"`
}

// statusResponse is the generic {"status": "..."} body returned by write
// endpoints on success.
type statusResponse struct {
	Status string `json:"status"`
}
