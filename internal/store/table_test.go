package store

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type row struct {
	Name  string
	Count int
}

func TestTable_InsertGetConflict(t *testing.T) {
	tbl := NewTable[row]()

	require.NoError(t, tbl.Insert(1, row{Name: "a", Count: 1}))
	assert.ErrorIs(t, tbl.Insert(1, row{Name: "b"}), ErrConflict)

	got, err := tbl.Get(1)
	require.NoError(t, err)
	assert.Equal(t, row{Name: "a", Count: 1}, got)

	_, err = tbl.Get(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTable_UpdateErrorLeavesRecordUntouched(t *testing.T) {
	tbl := NewTable[row]()
	require.NoError(t, tbl.Insert(1, row{Name: "a", Count: 1}))

	boom := errors.New("boom")
	_, err := tbl.Update(1, func(cur row) (row, error) {
		cur.Name = "changed"
		return cur, boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := tbl.Get(1)
	assert.Equal(t, "a", got.Name)

	_, err = tbl.Update(9, func(cur row) (row, error) { return cur, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTable_DeleteCheck(t *testing.T) {
	tbl := NewTable[row]()
	require.NoError(t, tbl.Insert(1, row{Name: "a"}))

	err := tbl.Delete(1, func(cur row) error { return ErrUnauthorized })
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, tbl.Len())

	require.NoError(t, tbl.Delete(1, nil))
	assert.Equal(t, 0, tbl.Len())
	assert.ErrorIs(t, tbl.Delete(1, nil), ErrNotFound)
}

func TestTable_ConcurrentUpdatesAreSerialized(t *testing.T) {
	defer goleak.VerifyNone(t)

	tbl := NewTable[row]()
	require.NoError(t, tbl.Insert(1, row{}))

	const workers, perWorker = 16, 200
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, _ = tbl.Update(1, func(cur row) (row, error) {
					cur.Count++
					return cur, nil
				})
			}
		}()
	}
	wg.Wait()

	got, err := tbl.Get(1)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, got.Count)
}

func TestParseEnvelope(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		cmd     Command
		id      int
		wantErr bool
	}{
		{name: "create", body: `{"command":"create","id":3}`, cmd: CommandCreate, id: 3},
		{name: "mixed case", body: `{"command":"UpDate","id":0}`, cmd: CommandUpdate, id: 0},
		{name: "missing id", body: `{"command":"delete"}`, wantErr: true},
		{name: "negative id", body: `{"command":"delete","id":-1}`, wantErr: true},
		{name: "string id", body: `{"command":"delete","id":"4"}`, wantErr: true},
		{name: "fractional id", body: `{"command":"delete","id":4.5}`, wantErr: true},
		{name: "unknown command", body: `{"command":"purge","id":1}`, wantErr: true},
		{name: "not json", body: `command=create`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, id, err := ParseEnvelope([]byte(tc.body))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cmd, cmd)
			assert.Equal(t, tc.id, id)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrInvalid))
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(ErrConflict))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(ErrUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("x")))
}

func TestParseID(t *testing.T) {
	ok := map[string]int{"/0": 0, "/42": 42, "7": 7}
	for in, want := range ok {
		id, good := ParseID(in)
		assert.True(t, good, in)
		assert.Equal(t, want, id, in)
	}
	for _, in := range []string{"", "/", "/abc", "/1/2", "/-3", "/1.5"} {
		_, good := ParseID(in)
		assert.False(t, good, in)
	}
}
