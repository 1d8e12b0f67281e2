package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkruglov/chitalka/internal/reader"
)

/*
TestIdentity verifies the deterministic book identity derivation: same
inputs collide, any changed component diverges.
*/
func TestIdentity(t *testing.T) {
	base := reader.Identity(42, "Метро 2033", "Глуховский", "Метро", 1)

	assert.Len(t, base, 64)
	assert.Regexp(t, "^[a-f0-9]{64}$", base)

	assert.Equal(t, base, reader.Identity(42, "Метро 2033", "Глуховский", "Метро", 1))

	assert.NotEqual(t, base, reader.Identity(43, "Метро 2033", "Глуховский", "Метро", 1))
	assert.NotEqual(t, base, reader.Identity(42, "Метро 2034", "Глуховский", "Метро", 1))
	assert.NotEqual(t, base, reader.Identity(42, "Метро 2033", "Глуховский", "Метро", 2))
}

/*
TestShortID checks prefix truncation and the short-input passthrough.
*/
func TestShortID(t *testing.T) {
	id := reader.Identity(1, "a", "b", "c", -1)

	short := reader.ShortID(id)
	assert.Len(t, short, reader.ShortIDLength)
	assert.Equal(t, id[:reader.ShortIDLength], short)

	assert.Equal(t, "abc", reader.ShortID("abc"))
}
