package checkout

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ConfirmationLength is the number of characters in a confirmation id.
const ConfirmationLength = 12

const confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewConfirmationID draws a random alphanumeric identifier. Uniqueness is not
// guaranteed here; callers check the store and regenerate on collision.
func NewConfirmationID() (string, error) {
	out := make([]byte, ConfirmationLength)
	max := big.NewInt(int64(len(confirmationAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("drawing confirmation char: %w", err)
		}
		out[i] = confirmationAlphabet[n.Int64()]
	}
	return string(out), nil
}
