package article

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleForm_Validate(t *testing.T) {
	valid := ArticleForm{Title: "t", Content: "c", CategoryID: 1, YourSanta: "nick"}
	require.NoError(t, valid.ValidateCreate())

	noSanta := valid
	noSanta.YourSanta = ""
	assert.NoError(t, noSanta.ValidateUpdate())

	fields, err := FieldErrors(noSanta.ValidateCreate())
	require.NoError(t, err)
	assert.Contains(t, fields, "your_santa")

	long := valid
	long.Title = strings.Repeat("x", 256)
	fields, err = FieldErrors(long.ValidateCreate())
	require.NoError(t, err)
	assert.Contains(t, fields, "title")

	tagged := valid
	tagged.Tags = strings.Repeat("x", MaxTagLength+1) + ", go"
	fields, err = FieldErrors(tagged.ValidateUpdate())
	require.NoError(t, err)
	assert.Contains(t, fields, "tags")

	tagged.Tags = strings.Repeat("x", MaxTagLength) + ", go"
	assert.NoError(t, tagged.ValidateUpdate())

	fields, err = FieldErrors(ArticleForm{}.ValidateUpdate())
	require.NoError(t, err)
	assert.Len(t, fields, 3)
}

func TestFieldErrors_PassesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := FieldErrors(boom)
	assert.ErrorIs(t, err, boom)
}

func TestGetHTTPStatusCode(t *testing.T) {
	assert.Equal(t, 400, GetHTTPStatusCode(&FormError{}))
	assert.Equal(t, 404, GetHTTPStatusCode(ErrArticleNotFound))
	assert.Equal(t, 403, GetHTTPStatusCode(ErrForbidden))
	assert.Equal(t, 500, GetHTTPStatusCode(errors.New("db")))
	assert.Equal(t, "ARTICLE_NOT_FOUND", GetErrorCode(ErrArticleNotFound))
}
