// Package device derives a stable hex identity for the appliance, used
// in the identify acknowledgment.
package device

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
)

// ID derives a 16-character hex id from the machine id, falling back to
// the hostname.
func ID() (string, error) {
	seed, err := os.ReadFile("/etc/machine-id")
	if err != nil {
		host, herr := os.Hostname()
		if herr != nil {
			return "", fmt.Errorf("derive device id: %w", herr)
		}
		seed = []byte(host)
	}

	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(string(seed))))
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
