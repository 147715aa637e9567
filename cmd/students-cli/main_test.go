package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/client"
	"github.com/aanand-mishra/student-roster/internal/http/router"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
)

func setup(t *testing.T) *client.Client {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(router.New(db, router.Options{}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestCreateListGet(t *testing.T) {
	ctx := context.Background()
	c := setup(t)

	var out bytes.Buffer
	require.NoError(t, runList(ctx, c, nil, &out))
	assert.Equal(t, "No students found.\n", out.String())

	out.Reset()
	err := runCreate(ctx, c, []string{
		"--name", "Bob Smith", "--fatherName", "Robert Smith", "--motherName", "Linda Smith",
		"--brotherName", "Billy Smith", "--email", "bob@example.com", "--grade", "9th Grade",
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"name": "Bob Smith"`)

	out.Reset()
	require.NoError(t, runList(ctx, c, nil, &out))
	assert.True(t, strings.HasPrefix(out.String(), "1\tBob Smith\tbob@example.com\t9th Grade"))

	out.Reset()
	require.NoError(t, runGet(ctx, c, []string{"1"}, &out))
	assert.Contains(t, out.String(), `"fatherName": "Robert Smith"`)

	assert.Error(t, runGet(ctx, c, []string{"2"}, &out))
	assert.Error(t, runGet(ctx, c, []string{"abc"}, &out))
}

func TestCreateReportsInvalidField(t *testing.T) {
	err := runCreate(context.Background(), setup(t), []string{"--name", "Bob Smith"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--fatherName")
}

func TestListSearch(t *testing.T) {
	ctx := context.Background()
	c := setup(t)

	for _, args := range [][]string{
		{"--name", "Bob Smith", "--fatherName", "Robert Smith", "--motherName", "Linda Smith",
			"--brotherName", "Billy Smith", "--email", "bob@example.com", "--grade", "9th Grade"},
		{"--name", "Charlie Davis", "--fatherName", "Charles Davis", "--motherName", "Susan Davis",
			"--brotherName", "Chris Davis", "--email", "charlie@example.com", "--grade", "11th Grade"},
	} {
		require.NoError(t, runCreate(ctx, c, args, &bytes.Buffer{}))
	}

	var out bytes.Buffer
	require.NoError(t, runList(ctx, c, []string{"--search", "CHARLIE"}, &out))
	assert.Equal(t, "2\tCharlie Davis\tcharlie@example.com\t11th Grade\n", out.String())

	out.Reset()
	require.NoError(t, runList(ctx, c, []string{"--search", "nobody"}, &out))
	assert.Equal(t, "No students found.\n", out.String())
}
