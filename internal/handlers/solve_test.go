package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deducibleBoard = `
1 1 1 0
1 M 1 0
2 2 1 0
M 1 0 0
`

const coinFlipBoard = `
M 1
1 1
`

func newTestSolveHandler() *SolveHandler {
	return NewSolveHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postSolve(t *testing.T, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestSolveHandler().Solve(rec, req)
	return rec
}

func TestSolveFindsSafeStart(t *testing.T) {
	t.Parallel()

	rec := postSolve(t, "/solve", deducibleBoard)
	require.Equal(t, http.StatusOK, rec.Code)

	var result SolveResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Solvable)
	require.NotNil(t, result.Start)
	assert.Equal(t, 3, result.Start.X)
	assert.Equal(t, 0, result.Start.Y)
	assert.Equal(t, "solved", result.Status)
}

func TestSolveReportsUnsolvableBoard(t *testing.T) {
	t.Parallel()

	rec := postSolve(t, "/solve", coinFlipBoard)
	require.Equal(t, http.StatusOK, rec.Code)

	var result SolveResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Solvable)
	assert.Nil(t, result.Start)
}

func TestSolveSimulatesGivenStart(t *testing.T) {
	t.Parallel()

	rec := postSolve(t, "/solve?x=3&y=0", deducibleBoard)
	require.Equal(t, http.StatusOK, rec.Code)

	var result SolveResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Solvable)
	assert.Equal(t, "solved", result.Status)
}

func TestSolveRejectsMalformedBoard(t *testing.T) {
	t.Parallel()

	rec := postSolve(t, "/solve", "1 2\n3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveRejectsMalformedBudget(t *testing.T) {
	t.Parallel()

	rec := postSolve(t, "/solve?step_limit=lots", deducibleBoard)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveRejectsMineStart(t *testing.T) {
	t.Parallel()

	rec := postSolve(t, "/solve?x=1&y=1", deducibleBoard)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
