package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/dmgcore/internal/gberr"
)

func minimalROM(checksumByte byte) []byte {
	data := make([]byte, minROMSize)
	data[checksumAddress] = checksumByte
	// cartType, ROM size, RAM size all zero: ROM-only, matching TypeROMOnly.
	return data
}

func TestLoadValidChecksum(t *testing.T) {
	data := minimalROM(0xE7)
	cart, err := Load("test.gb", data)
	assert.NoError(t, err)
	assert.NotNil(t, cart)
}

func TestLoadInvalidChecksum(t *testing.T) {
	data := minimalROM(0xE6)
	_, err := Load("test.gb", data)
	assert.Error(t, err)
	var loadErr *gberr.LoadFailure
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadTooSmall(t *testing.T) {
	_, err := Load("test.gb", make([]byte, 10))
	assert.Error(t, err)
}

func TestLoadRejectsMBC(t *testing.T) {
	data := minimalROM(0xE7)
	data[cartTypeAddress] = 0x01 // MBC1
	// recompute checksum byte so only the type rejection fails
	data[checksumAddress] = checksumFor(data)
	_, err := Load("test.gb", data)
	assert.Error(t, err)
}

func checksumFor(data []byte) byte {
	var sum byte
	for i := headerStart; i < headerEnd; i++ {
		sum += data[i]
	}
	return byte(-int(sum) - 0x19)
}

func TestReadOutOfBounds(t *testing.T) {
	data := minimalROM(0xE7)
	cart, err := Load("test.gb", data)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xFF), cart.Read(uint16(len(data)+1000)))
}

func TestCleanTitleStopsAtNull(t *testing.T) {
	raw := []byte{'T', 'E', 'S', 'T', 0, 'X', 'X'}
	assert.Equal(t, "TEST", cleanTitle(raw))
}

func TestCleanTitleEmpty(t *testing.T) {
	assert.Equal(t, "(untitled)", cleanTitle(make([]byte, 16)))
}
