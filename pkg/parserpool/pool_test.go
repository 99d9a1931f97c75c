package parserpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenus verifies genus recovery from binomial names and the empty
// result for names without one.
func TestGenus(t *testing.T) {
	p := New(2)
	defer p.Close()

	tests := []struct {
		msg, name, genus string
	}{
		{"binomial", "Orchis mascula (L.) L.", "Orchis"},
		{"trinomial", "Anacamptis morio subsp. picta (Loisel.) Jacquet & Scappat.", "Anacamptis"},
		{"uninomial family", "Orchidaceae", ""},
		{"uninomial genus", "Cypripedium", ""},
		{"unparseable", "BOLD:ACF1358", ""},
		{"empty", "", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.genus, p.Genus(v.name), v.msg)
	}
}

// TestGenus_Concurrent verifies parser checkout is safe under
// concurrent callers.
func TestGenus_Concurrent(t *testing.T) {
	p := New(2)
	defer p.Close()

	done := make(chan string)
	for range 8 {
		go func() {
			done <- p.Genus("Orchis mascula (L.) L.")
		}()
	}
	for range 8 {
		assert.Equal(t, "Orchis", <-done)
	}
}
