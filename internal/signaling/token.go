package signaling

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
)

// NewRoomToken creates a random, memorable room token.
// Format: adjective-noun-NN (e.g. "fuzzy-otter-42").
// Tokens are shareable identifiers; uniqueness against live rooms
// is the caller's concern.
func NewRoomToken() string {
	adj := adjectives[randomIndex(len(adjectives))]
	noun := nouns[randomIndex(len(nouns))]
	return fmt.Sprintf("%s-%s-%02d", adj, noun, randomIndex(100))
}

// randomIndex returns a cryptographically secure random index for a slice of given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		log.Panic("Failed to generate random index:", err)
	}
	return int(n.Int64())
}
