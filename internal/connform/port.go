package connform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/acolita/hdfs-connect/internal/protocol"
)

var (
	// ErrInvalidPort is returned when a pending port edit is not a number.
	ErrInvalidPort = errors.New("invalid port")

	// ErrPortOutOfRange is returned when a pending port edit is outside 1..65535.
	ErrPortOutOfRange = errors.New("port out of range")
)

// portField models a bounded numeric input: a committed value plus the text
// currently being edited.
type portField struct {
	committed int
	pending   string
	dirty     bool
}

func newPortField(value int) portField {
	return portField{committed: value}
}

// edit records text typed into the field without committing it.
func (p *portField) edit(text string) {
	p.pending = text
	p.dirty = true
}

// commit flushes the pending edit. On failure the committed value is kept
// and the pending edit is discarded.
func (p *portField) commit() error {
	if !p.dirty {
		return nil
	}
	text := strings.TrimSpace(p.pending)
	p.pending = ""
	p.dirty = false

	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPort, text)
	}
	if !protocol.ValidPort(v) {
		return fmt.Errorf("%w: %d", ErrPortOutOfRange, v)
	}
	p.committed = v
	return nil
}

func (p *portField) value() int {
	return p.committed
}
