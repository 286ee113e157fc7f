package verse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaquran/internal/quran"
)

const (
	ayatAlKursiTranslation = `{"verse":{"id":262,"verse_key":"2:255","translations":[{"id":1,"resource_id":85,"text":"God: there is no god but Him, the Ever Living, the Ever Watchful.<sup foot_note=\"1\">a</sup> Neither slumber nor sleep overtakes Him."}]}}`
	ayatAlKursiUthmani     = `{"verses":[{"id":262,"verse_key":"2:255","text_uthmani":"ٱللَّهُ لَآ إِلَـٰهَ إِلَّا هُوَ ٱلْحَىُّ ٱلْقَيُّومُ"}]}`
)

type fakeAPI struct {
	translation   string
	uthmani       string
	status        int
	delay         time.Duration
	translationQS atomic.Value
	hits          atomic.Int32
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}
	if r.Header.Get("Accept") != "application/json" {
		http.Error(w, "bad accept", http.StatusNotAcceptable)
		return
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	switch r.URL.Path {
	case "/verses/by_key/2:255":
		f.translationQS.Store(r.URL.Query().Get("translations"))
		_, _ = w.Write([]byte(f.translation))
	case "/quran/verses/uthmani":
		if r.URL.Query().Get("verse_key") != "2:255" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(f.uthmani))
	default:
		http.NotFound(w, r)
	}
}

func newServer(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
}

var ayatAlKursi = quran.Reference{Chapter: 2, Verse: 255}

func TestFetch_ParsesBothEndpoints(t *testing.T) {
	api := &fakeAPI{translation: ayatAlKursiTranslation, uthmani: ayatAlKursiUthmani}
	client := newServer(t, api)

	got, err := client.Fetch(context.Background(), ayatAlKursi)
	require.NoError(t, err)

	want := Verse{
		Reference:   ayatAlKursi,
		Arabic:      "ٱللَّهُ لَآ إِلَـٰهَ إِلَّا هُوَ ٱلْحَىُّ ٱلْقَيُّومُ",
		Translation: "God: there is no god but Him, the Ever Living, the Ever Watchful. Neither slumber nor sleep overtakes Him.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verse mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "85", api.translationQS.Load())
	assert.EqualValues(t, 2, api.hits.Load())
}

func TestFetch_TranslationOption(t *testing.T) {
	api := &fakeAPI{translation: ayatAlKursiTranslation, uthmani: ayatAlKursiUthmani}
	srv := httptest.NewServer(api)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithTranslation(20))
	_, err := client.Fetch(context.Background(), ayatAlKursi)
	require.NoError(t, err)
	assert.Equal(t, "20", api.translationQS.Load())
}

func TestFetch_ServerError(t *testing.T) {
	client := newServer(t, &fakeAPI{status: http.StatusBadGateway})

	_, err := client.Fetch(context.Background(), ayatAlKursi)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ayatAlKursi, fe.Reference)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFetch_EmptyPayloads(t *testing.T) {
	tests := []struct {
		name     string
		api      *fakeAPI
		endpoint string
	}{
		{
			name:     "no translations",
			api:      &fakeAPI{translation: `{"verse":{"translations":[]}}`, uthmani: ayatAlKursiUthmani},
			endpoint: EndpointTranslation,
		},
		{
			name:     "translation is only a footnote",
			api:      &fakeAPI{translation: `{"verse":{"translations":[{"text":"<sup>1</sup>"}]}}`, uthmani: ayatAlKursiUthmani},
			endpoint: EndpointTranslation,
		},
		{
			name:     "no verses",
			api:      &fakeAPI{translation: ayatAlKursiTranslation, uthmani: `{"verses":[]}`},
			endpoint: EndpointUthmani,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, tt.api)
			_, err := client.Fetch(context.Background(), ayatAlKursi)

			var fe *FetchError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.endpoint, fe.Endpoint)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestFetch_BadJSON(t *testing.T) {
	client := newServer(t, &fakeAPI{translation: `{"verse":`, uthmani: ayatAlKursiUthmani})

	_, err := client.Fetch(context.Background(), ayatAlKursi)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, EndpointTranslation, fe.Endpoint)
	assert.Contains(t, err.Error(), "decode")
}

func TestFetch_Timeout(t *testing.T) {
	api := &fakeAPI{translation: ayatAlKursiTranslation, uthmani: ayatAlKursiUthmani, delay: time.Second}
	srv := httptest.NewServer(api)
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := client.Fetch(context.Background(), ayatAlKursi)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch_CancelledContext(t *testing.T) {
	client := newServer(t, &fakeAPI{translation: ayatAlKursiTranslation, uthmani: ayatAlKursiUthmani})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Fetch(ctx, ayatAlKursi)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{Reference: ayatAlKursi, Endpoint: EndpointUthmani, Err: ErrEmptyResponse}
	assert.Equal(t, "fetch uthmani 2:255: empty response", err.Error())
}
