package ocr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"kyc-gateway/pkg/platform/sentinel"
)

func TestRecognize(t *testing.T) {
	t.Run("parses a successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/recognize", r.URL.Path)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.Equal(t, []byte("image-bytes"), body)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"text":"Name John Smith","words":[{"text":"Name","confidence":90},{"text":"John"}]}`))
		}))
		defer server.Close()

		result, err := NewClient(server.URL).Recognize(context.Background(), []byte("image-bytes"))
		require.NoError(t, err)
		require.Equal(t, "Name John Smith", result.Text)
		require.Len(t, result.Words, 2)
		require.NotNil(t, result.Words[0].Confidence)
		require.Nil(t, result.Words[1].Confidence)
	})

	t.Run("non-200 maps to a recognition error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Recognize(context.Background(), []byte("x"))
		require.ErrorIs(t, err, sentinel.ErrRecognition)
	})

	t.Run("unreachable engine maps to a recognition error", func(t *testing.T) {
		_, err := NewClient("http://127.0.0.1:1").Recognize(context.Background(), []byte("x"))
		require.ErrorIs(t, err, sentinel.ErrRecognition)
	})
}
