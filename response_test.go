package members

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithStatusCode_NoSerializer(t *testing.T) {
	for _, code := range []int{http.StatusCreated, http.StatusNoContent, http.StatusNotFound, http.StatusBadRequest} {
		resp, err := WithStatusCode(code, nil)(Member{"id": "1"})
		require.NoError(t, err)

		assert.Equal(t, code, resp.StatusCode)
		assert.False(t, resp.HasBody())
		assert.Nil(t, resp.Body)
	}
}

func TestWithStatusCode_JSON(t *testing.T) {
	ok := WithStatusCode(http.StatusOK, SerializeJSON)

	resp, err := ok(Member{"id": "3", "name": "B"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"3","name":"B"}`, resp.BodyString())

	resp, err = ok(make([]Member, 0))
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.BodyString())
}

func TestWithStatusCode_SerializerError(t *testing.T) {
	failing := func(v interface{}) (string, error) { return "", errors.New("cannot encode") }

	resp, err := WithStatusCode(http.StatusOK, failing)(nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to serialize response")
}

func TestResponse_BodyStringWithoutBody(t *testing.T) {
	var nilResp *Response
	assert.False(t, nilResp.HasBody())
	assert.Equal(t, "", nilResp.BodyString())
	assert.Equal(t, "", (&Response{StatusCode: http.StatusNoContent}).BodyString())
}
