package oci

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreauthenticatedRequest(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns full url", func(t *testing.T) {
		var gotBody parRequest
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/n/axaxnpcrorw5/b/media/p/", r.URL.Path)

			raw, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(raw, &gotBody))

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"accessUri": "/p/abc123/n/axaxnpcrorw5/b/media/o/photo.jpg"}`))
		}))

		url := client.CreatePreauthenticatedRequest(context.Background(), "photo.jpg", expires)
		assert.Equal(t, client.endpoint+"/p/abc123/n/axaxnpcrorw5/b/media/o/photo.jpg", url)

		assert.Equal(t, "ocifs-req-test", gotBody.Name)
		assert.Equal(t, "photo.jpg", gotBody.ObjectName)
		assert.Equal(t, "ObjectRead", gotBody.AccessType)
		assert.Equal(t, "2026-03-01T12:00:00Z", gotBody.TimeExpires)
	})

	t.Run("server refusal yields empty string", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		url := client.CreatePreauthenticatedRequest(context.Background(), "photo.jpg", expires)
		assert.Empty(t, url)
	})

	t.Run("unreadable response yields empty string", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"accessUri": `))
		}))

		url := client.CreatePreauthenticatedRequest(context.Background(), "photo.jpg", expires)
		assert.Empty(t, url)
	})

	t.Run("missing accessUri yields empty string", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))

		url := client.CreatePreauthenticatedRequest(context.Background(), "photo.jpg", expires)
		assert.Empty(t, url)
	})
}
