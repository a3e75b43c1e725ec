package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_TTY(t *testing.T) {
	var buf bytes.Buffer
	p := NewWriter(&buf, "Importing", 10, true)

	p.Increment()
	p.Print()
	assert.Equal(t, "\rImporting... 1/10 (10%)", buf.String())

	for range 20 {
		p.Increment()
	}
	assert.Equal(t, 10, p.Current())

	buf.Reset()
	p.Done()
	assert.Equal(t, "\r"+string(bytes.Repeat([]byte(" "), len("Importing... 1/10 (10%)")))+"\r", buf.String())
}

func TestProgress_Quiet(t *testing.T) {
	var buf bytes.Buffer

	small := NewWriter(&buf, "Importing", minItems-1, true)
	small.Increment()
	small.Print()
	small.Done()

	pipe := NewWriter(&buf, "Importing", 100, false)
	pipe.Increment()
	pipe.Print()
	pipe.Done()

	assert.Empty(t, buf.String())
}
