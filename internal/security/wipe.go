package security

import "crypto/rand"

// WipeBytes overwrites a byte slice with random data and then zeros.
func WipeBytes(data []byte) {
	if len(data) == 0 {
		return
	}
	rand.Read(data)
	for i := range data {
		data[i] = 0
	}
}
