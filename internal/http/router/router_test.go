package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/api"
	"github.com/aanand-mishra/student-roster/internal/http/router"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/seed"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
	"github.com/aanand-mishra/student-roster/internal/types"
)

const aliceJSON = `{"name":"Alice Johnson","fatherName":"John Johnson","motherName":"Mary Johnson",
	"brotherName":"Jack Johnson","email":"alice@example.com","grade":"10th Grade"}`

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "router.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = seed.IfEmpty(context.Background(), db)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(db, router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func list(t *testing.T, srv *httptest.Server) []types.Student {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/students")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var students []types.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&students))
	return students
}

func create(t *testing.T, srv *httptest.Server, body string) (*http.Response, types.Student) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/students", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var s types.Student
	if resp.StatusCode == http.StatusCreated {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	}
	return resp, s
}

func getRaw(t *testing.T, srv *httptest.Server, id int64) (int, string) {
	t.Helper()
	resp, err := http.Get(fmt.Sprintf("%s/api/students/%d", srv.URL, id))
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, mustReadAll(t, resp)
}

func mustReadAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	srv := setupServer(t)

	resp, created := create(t, srv, aliceJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.GreaterOrEqual(t, created.ID, int64(1))
	require.NotNil(t, created.CreatedAt)

	status, body := getRaw(t, srv, created.ID)
	require.Equal(t, http.StatusOK, status)

	var got types.Student
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.FatherName, got.FatherName)
	assert.Equal(t, created.MotherName, got.MotherName)
	assert.Equal(t, created.BrotherName, got.BrotherName)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.Grade, got.Grade)
	assert.True(t, created.CreatedAt.Equal(*got.CreatedAt))

	// Repeated reads are byte identical.
	status2, body2 := getRaw(t, srv, created.ID)
	assert.Equal(t, status, status2)
	assert.Equal(t, body, body2)
}

func TestListGrowsByOnePerCreate(t *testing.T) {
	srv := setupServer(t)

	before := list(t, srv)
	assert.Len(t, before, len(seed.Students))

	for i := 1; i <= 3; i++ {
		resp, created := create(t, srv, aliceJSON)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		after := list(t, srv)
		assert.Len(t, after, len(before)+i)
		assert.Equal(t, created.ID, after[len(after)-1].ID)
	}

	// A rejected create does not change the list.
	resp, _ := create(t, srv, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, list(t, srv), len(before)+3)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	srv := setupServer(t)

	status, body := getRaw(t, srv, 1_000_000)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Student not found"}`, body)
}

func TestInvalidID(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/students/abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Invalid student ID"}`, mustReadAll(t, resp))
}

func TestCORS(t *testing.T) {
	srv := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/students", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

type panickingStore struct{ storage.Storage }

func (panickingStore) GetStudents(context.Context) ([]types.Student, error) {
	panic("boom")
}

func TestRecoversFromPanics(t *testing.T) {
	srv := httptest.NewServer(router.New(panickingStore{}, router.Options{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/students")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Internal server error"}`, mustReadAll(t, resp))
}

func TestEveryContractRouteIsServed(t *testing.T) {
	srv := setupServer(t)

	for _, route := range api.Routes {
		t.Run(route.Name, func(t *testing.T) {
			var body io.Reader
			if route.Method == http.MethodPost {
				body = strings.NewReader(aliceJSON)
			}
			req, err := http.NewRequest(route.Method, srv.URL+route.URL(map[string]string{"id": "1"}), body)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, route.SuccessStatus(), resp.StatusCode)
		})
	}
}
