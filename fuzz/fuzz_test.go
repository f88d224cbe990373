package fuzz

import (
	"testing"

	"github.com/rbaliyan/symkey"
)

// FuzzParseKey throws arbitrary bytes at the parser. Inputs that parse must
// serialize back to a blob that parses to an equal key.
func FuzzParseKey(f *testing.F) {
	f.Add([]byte{0x00, 0x01})
	f.Add(append([]byte{0x00, 0x01}, make([]byte, 80)...))
	f.Fuzz(func(t *testing.T, data []byte) {
		key, err := symkey.ParseKey(data)
		if err != nil {
			return
		}
		again, err := symkey.ParseKey(key.Raw())
		if err != nil {
			t.Fatalf("reparse failed: %v", err)
		}
		if !again.Equal(key) {
			t.Fatal("round trip produced an unequal key")
		}
	})
}
