package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/joke-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/jokes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateAddJoke(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"text":"why?"}`},
		{name: "missing text", body: `{}`, wantErr: "text is required"},
		{name: "empty text", body: `{"text":""}`, wantErr: "text is required"},
		{name: "blank text", body: `{"text":"   "}`, wantErr: "text is required"},
		{name: "malformed json", body: `{"text":`, wantErr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AddJokeRequest{}
			err := BindAndValidate(newContext(tt.body), req)

			if tt.name == "valid" {
				require.NoError(t, err)
				assert.Equal(t, "why?", req.Text)
				return
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, httpErr.Message)
				require.Len(t, httpErr.Errors, 1)
				assert.Equal(t, "text", httpErr.Errors[0].Field)
			} else {
				assert.NotEmpty(t, httpErr.Message)
			}
		})
	}
}

func TestBindAndValidateKeepsSurroundingWhitespace(t *testing.T) {
	req := &AddJokeRequest{}
	require.NoError(t, BindAndValidate(newContext(`{"text":"  hi  "}`), req))
	assert.Equal(t, "  hi  ", req.Text)
}

func TestBindErrorsHideDecoderDetails(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "array body", body: `[]`, want: "invalid request body"},
		{name: "syntax error", body: `{"text":`, want: "invalid request body"},
		{name: "wrong field type", body: `{"text":42}`, want: "text has an invalid type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body), &AddJokeRequest{})

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, tt.want, httpErr.Message)
		})
	}
}

func TestEmptyRequest(t *testing.T) {
	assert.NoError(t, (&EmptyRequest{}).Validate())
}
