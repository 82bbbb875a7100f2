package http

import (
	"bytes"
	"io"
	"io/ioutil"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "chunk.parquet")
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File["file"], 1)

	return form.File["file"][0]
}

func TestNewReader(t *testing.T) {
	t.Parallel()

	r, err := NewReader(uploadedFile(t, []byte("PAR1page")))
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = r.Seek(-4, io.SeekEnd)
	require.NoError(t, err)

	data, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("page"), data)
}
