package sqlerr

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/joke-api/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite3lib "modernc.org/sqlite/lib"
)

func TestConstraintKindFromMessage(t *testing.T) {
	assert.Equal(t, CheckViolation, constraintKindFromMessage("constraint failed: CHECK constraint failed: jokes_text_not_blank"))
	assert.Equal(t, NotNullViolation, constraintKindFromMessage("NOT NULL constraint failed: jokes.text"))
	assert.Equal(t, Other, constraintKindFromMessage("disk I/O error"))
}

func TestMapSQLiteCode(t *testing.T) {
	tests := []struct {
		code int
		want Code
	}{
		{sqlite3lib.SQLITE_CONSTRAINT_NOTNULL, NotNullViolation},
		{sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, UniqueViolation},
		{sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, UniqueViolation},
		{sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY, ForeignKeyViolation},
		{sqlite3lib.SQLITE_CONSTRAINT_CHECK, CheckViolation},
		{sqlite3lib.SQLITE_BUSY, Busy},
		{sqlite3lib.SQLITE_BUSY_SNAPSHOT, Busy},
		{sqlite3lib.SQLITE_IOERR, Other},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code_%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, MapSQLiteCode(tt.code))
		})
	}
}

func TestConstraintTarget(t *testing.T) {
	assert.Equal(t, "jokes.text", constraintTarget("NOT NULL constraint failed: jokes.text (1299)"))
	assert.Equal(t, "jokes_text_not_blank", constraintTarget("constraint failed: CHECK constraint failed: jokes_text_not_blank (275)"))
	assert.Empty(t, constraintTarget("disk I/O error"))
}

func TestHandleErrorPostgres(t *testing.T) {
	t.Run("check violation is a bad request", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{
			Code:           "23514",
			Severity:       "ERROR",
			TableName:      "jokes",
			ConstraintName: "jokes_text_not_blank",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "JOKE_INVALID", httpErr.Code)
	})

	t.Run("not null violation carries a field error", func(t *testing.T) {
		err := HandleError(fmt.Errorf("insert: %w", &pgconn.PgError{
			Code:       "23502",
			Severity:   "ERROR",
			TableName:  "jokes",
			ColumnName: "text",
		}))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "The Text is required", httpErr.Message)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "text", httpErr.Errors[0].Field)
	})

	t.Run("unknown sqlstate is internal", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "XX000", Severity: "ERROR"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})
}

func TestHandleErrorPassthroughAndFallbacks(t *testing.T) {
	original := errs.NewNotFoundError("gone", true, nil)
	assert.Same(t, original, HandleError(original))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(sql.ErrNoRows), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	require.ErrorAs(t, HandleError(fmt.Errorf("boom")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, CheckViolation, ErrCode(&Error{Code: CheckViolation}))
	assert.Equal(t, Other, ErrCode(fmt.Errorf("plain")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "text", extractColumnForUniqueViolation("unique_jokes_text"))
	assert.Equal(t, "text", extractColumnForUniqueViolation("jokes_text_key"))
	assert.Empty(t, extractColumnForUniqueViolation("jokes_pkey"))
}
