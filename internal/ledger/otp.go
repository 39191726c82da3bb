package ledger

import (
	"math/big"

	"github.com/google/uuid"
)

// generateOTP derives a 6-digit code from the decimal digits of a random
// UUID. Deliberately not hardened: the code is a shared secret exchanged
// verbally or by email between people who already trust each other, and there
// is no expiry or attempt limit.
func generateOTP() string {
	u := uuid.New()

	// A v4 UUID always has its version nibble set, so the integer value is
	// far above six digits.
	digits := new(big.Int).SetBytes(u[:]).String()

	return digits[:6]
}
