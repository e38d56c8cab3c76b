package sqlite

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// randomIndex returns a uniformly random integer in [0, n), using
// crypto/rand in the same style as internal/idgen's suffix generator
// rather than math/rand, since pick_task's fairness guarantee is a
// stated property (§8) and crypto/rand avoids any process-global seed
// state shared with other packages.
func randomIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("randomIndex: n must be positive, got %d", n)
	}
	if n == 1 {
		return 0, nil
	}
	max := big.NewInt(int64(n))
	i, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, fmt.Errorf("randomIndex: %w", err)
	}
	return int(i.Int64()), nil
}
