package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"

func TestParseKey(t *testing.T) {
	key, err := ParseKey(testKey)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = ParseKey("zz")
	assert.Error(t, err)
	_, err = ParseKey("a1b2")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	key, err := ParseKey(testKey)
	require.NoError(t, err)

	sealed, err := Encrypt("s3cret", key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "s3cret")

	again, err := Encrypt("s3cret", key)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ")

	plain, err := Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", plain)
}

func TestDecrypt_Errors(t *testing.T) {
	key, err := ParseKey(testKey)
	require.NoError(t, err)

	_, err = Encrypt("", key)
	assert.Error(t, err)
	_, err = Decrypt("", key)
	assert.Error(t, err)
	_, err = Decrypt("nothex", key)
	assert.Error(t, err)
	_, err = Decrypt("abcd", key)
	assert.Error(t, err)

	sealed, err := Encrypt("s3cret", key)
	require.NoError(t, err)
	tampered := sealed[:len(sealed)-2] + "00"
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "11"
	}
	_, err = Decrypt(tampered, key)
	assert.Error(t, err)
}

func TestRenderNotes(t *testing.T) {
	out, err := RenderNotes("Pay **rent** on time\nsee https://example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>rent</strong>")
	assert.Contains(t, out, "<br>")
	assert.Contains(t, out, `<a href="https://example.com">`)

	out, err = RenderNotes("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "<script>"))

	out, err = RenderNotes("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
