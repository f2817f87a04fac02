package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/joke-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	if sqlErr := Classify(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// Classify normalizes a raw driver error. It returns nil when err does not
// come from a supported driver.
func Classify(err error) *Error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}

	return nil
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertSQLiteError converts a modernc SQLite error into our custom sqlerr.Error.
//
// SQLite only reports the constraint target inside the message text, e.g.
// "NOT NULL constraint failed: jokes.text", so table and column are parsed
// from there.
func ConvertSQLiteError(src *msqlite.Error) *Error {
	code := src.Code()
	sqlErr := &Error{
		Code:         MapSQLiteCode(code),
		Severity:     SeverityError,
		DatabaseCode: fmt.Sprintf("%d", code),
		Message:      src.Error(),
		driverErr:    src,
	}

	if sqlErr.Code == Other && code&0xff == sqlite3lib.SQLITE_CONSTRAINT {
		sqlErr.Code = constraintKindFromMessage(src.Error())
	}

	target := constraintTarget(src.Error())
	switch sqlErr.Code {
	case NotNullViolation, UniqueViolation:
		if table, column, ok := strings.Cut(target, "."); ok {
			sqlErr.TableName = table
			sqlErr.ColumnName = column
		}
	case CheckViolation:
		sqlErr.ConstraintName = target
		if table, column, ok := splitConstraintName(target); ok {
			sqlErr.TableName = table
			sqlErr.ColumnName = column
		}
	}

	return sqlErr
}

// MapSQLiteCode maps an extended SQLite result code onto a Code.
func MapSQLiteCode(code int) Code {
	switch code {
	case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	}

	switch code & 0xff {
	case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
		return Busy
	}

	return Other
}

// constraintKindFromMessage covers connections opened without extended
// result codes, where every violation is plain SQLITE_CONSTRAINT.
func constraintKindFromMessage(message string) Code {
	switch {
	case strings.Contains(message, "NOT NULL constraint failed"):
		return NotNullViolation
	case strings.Contains(message, "UNIQUE constraint failed"):
		return UniqueViolation
	case strings.Contains(message, "FOREIGN KEY constraint failed"):
		return ForeignKeyViolation
	case strings.Contains(message, "CHECK constraint failed"):
		return CheckViolation
	}
	return Other
}

var constraintFailed = regexp.MustCompile(`constraint failed: ([^\s(]+)`)

func constraintTarget(message string) string {
	matches := constraintFailed.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// splitConstraintName reads "<table>_<column>_<rule>" constraint names such
// as jokes_text_not_blank.
func splitConstraintName(name string) (string, string, bool) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// generateErrorCode creates consistent "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	jokes + CheckViolation => JOKE_INVALID
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "JOKES" -> "JOKE".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName tries to infer an entity name from table/column data.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
//
// Example:
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeySuffix = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation tries to infer the column name from a unique constraint name.
//
// It supports "unique_<table>_<column>" and "<table>_<column>_(key|ukey)".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeySuffix.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If a driver constraint error: mapped into a 400 with a friendly message
//   - If ErrNoRows: mapped to a 404
//   - Otherwise: a generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr := Classify(err); sqlErr != nil {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			columnName := sqlErr.ColumnName
			if columnName == "" {
				columnName = extractColumnForUniqueViolation(sqlErr.ConstraintName)
			}
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
