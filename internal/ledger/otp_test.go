package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		otp := generateOTP()

		assert.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9', "non-digit %q in OTP %s", c, otp)
		}

		seen[otp] = true
	}

	// 100 draws from a million values should essentially never all collide.
	assert.Greater(t, len(seen), 1)
}
