package cfapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/cfwatch/cfapi"
	"github.com/programme-lv/cfwatch/srvcerror"
	"github.com/stretchr/testify/require"
)

const userStatusBody = `{
  "status": "OK",
  "result": [
    {
      "id": 287654321,
      "contestId": 1950,
      "creationTimeSeconds": 1712000000,
      "problem": {"contestId": 1950, "index": "A", "name": "Stair, Peak, or Neither?", "rating": 800, "tags": ["implementation"]},
      "programmingLanguage": "GNU C++20 (64)",
      "verdict": "OK",
      "passedTestCount": 12,
      "timeConsumedMillis": 15,
      "memoryConsumedBytes": 0
    },
    {
      "id": 287654000,
      "contestId": 1950,
      "creationTimeSeconds": 1711999000,
      "problem": {"contestId": 1950, "index": "B", "name": "Upscaling"},
      "programmingLanguage": "Python 3"
    }
  ]
}`

func newFakeApi(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/user.status", handler)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestSubmissions(t *testing.T) {
	var gotHandle, gotCount string
	srv := newFakeApi(t, func(w http.ResponseWriter, r *http.Request) {
		gotHandle = r.URL.Query().Get("handle")
		gotCount = r.URL.Query().Get("count")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(userStatusBody))
	})

	client := cfapi.NewClient(cfapi.WithBaseURL(srv.URL + "/api/"))
	subms, err := client.LatestSubmissions(context.Background(), "tourist", 5)
	require.NoError(t, err)

	require.Equal(t, "tourist", gotHandle)
	require.Equal(t, "5", gotCount)
	require.Len(t, subms, 2)

	require.Equal(t, cfapi.SubmissionID(287654321), subms[0].ID)
	require.Equal(t, cfapi.VerdictOK, subms[0].Verdict)
	require.Equal(t, "A", subms[0].Problem.Index)
	require.Equal(t, "Stair, Peak, or Neither?", subms[0].Problem.Name)
	require.Equal(t, []string{"implementation"}, subms[0].Problem.Tags)
	require.Equal(t, 12, subms[0].PassedTestCount)

	// queued submissions come without a verdict field
	require.Equal(t, cfapi.Verdict(""), subms[1].Verdict)
}

func TestLatestSubmissionsEscapesHandle(t *testing.T) {
	var gotHandle string
	srv := newFakeApi(t, func(w http.ResponseWriter, r *http.Request) {
		gotHandle = r.URL.Query().Get("handle")
		w.Write([]byte(`{"status":"OK","result":[]}`))
	})

	client := cfapi.NewClient(cfapi.WithBaseURL(srv.URL + "/api"))
	subms, err := client.LatestSubmissions(context.Background(), "a&count=1000", 5)
	require.NoError(t, err)
	require.Empty(t, subms)
	require.Equal(t, "a&count=1000", gotHandle)
}

func TestLatestSubmissionsErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{
			name:     "api reports failure",
			status:   http.StatusBadRequest,
			body:     `{"status":"FAILED","comment":"handle: User with handle nobody not found"}`,
			wantCode: cfapi.ErrCodeApiFailure,
		},
		{
			name:     "gateway error page",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			wantCode: cfapi.ErrCodeNetworkFailure,
		},
		{
			name:     "malformed json",
			status:   http.StatusOK,
			body:     `{"status":"OK","result":[`,
			wantCode: cfapi.ErrCodeNetworkFailure,
		},
		{
			name:     "result of wrong shape",
			status:   http.StatusOK,
			body:     `{"status":"OK","result":{"id":1}}`,
			wantCode: cfapi.ErrCodeNetworkFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeApi(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			client := cfapi.NewClient(cfapi.WithBaseURL(srv.URL + "/api"))
			subms, err := client.LatestSubmissions(context.Background(), "nobody", 5)
			require.Error(t, err)
			require.Nil(t, subms)

			var srvcErr *srvcerror.Error
			require.ErrorAs(t, err, &srvcErr)
			require.Equal(t, tt.wantCode, srvcErr.ErrorCode())
		})
	}
}

func TestLatestSubmissionsTimeout(t *testing.T) {
	srv := newFakeApi(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	client := cfapi.NewClient(
		cfapi.WithBaseURL(srv.URL+"/api"),
		cfapi.WithTimeout(50*time.Millisecond),
	)
	_, err := client.LatestSubmissions(context.Background(), "tourist", 5)
	require.ErrorIs(t, err, srvcerror.New(cfapi.ErrCodeNetworkFailure, ""))
}

func TestLatestSubmissionsRejectsBadCount(t *testing.T) {
	client := cfapi.NewClient()
	_, err := client.LatestSubmissions(context.Background(), "tourist", 0)
	require.ErrorIs(t, err, srvcerror.New(cfapi.ErrCodeInvalidCount, ""))
}
