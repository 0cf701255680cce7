package binder

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Title  string   `json:"title" mod:"trim" validate:"required,max=9"`
	Pages  int      `json:"pages" validate:"min=0"`
	Link   *string  `json:"link" validate:"omitempty,url"`
	Status string   `json:"status" default:"not_started" validate:"oneof=not_started in_progress completed"`
	Omit   struct{} `json:"-"`
}

type queryParams struct {
	Limit int     `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=100"`
	Skip  int     `query:"skip" json:"skip,omitempty" validate:"min=0"`
	Q     *string `query:"q" json:"q,omitempty"`
}

var (
	goodJSON             = `{"title":" dune ","pages":412}`
	unknownFieldsErrJSON = `{"title":"dune","foo":"bar"}`
	typeErrJSON          = `{"title":123}`
	validationErrJSON    = `{"title":"0123456789"}`
	badURLJSON           = `{"title":"dune","link":"not a url"}`
	badEnumJSON          = `{"title":"dune","status":"paused"}`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json bodies", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"title" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "dune", p.Title)
	})

	t.Run("applies defaults", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "not_started", p.Status)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})

	t.Run("validates urls", func(tt *testing.T) {
		c := newContext(badURLJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"link" is not a valid URL`)
	})

	t.Run("validates enums", func(tt *testing.T) {
		c := newContext(badEnumJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"status" must be one of the following`)
	})

	t.Run("rejects empty bodies on mutating methods", func(tt *testing.T) {
		c := newContext("", echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Request body can't be empty")
	})
}

func TestBindQuery(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	t.Run("decodes and defaults query params", func(tt *testing.T) {
		c := newGetContext("/?skip=10&q=gatsby")
		p := queryParams{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, 100, p.Limit)
		assert.Equal(tt, 10, p.Skip)
		require.NotNil(tt, p.Q)
		assert.Equal(tt, "gatsby", *p.Q)
	})

	t.Run("rejects unknown query params", func(tt *testing.T) {
		c := newGetContext("/?bogus=1")
		p := queryParams{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "bogus"`)
	})

	t.Run("returns a good message for conversion errors", func(tt *testing.T) {
		c := newGetContext("/?limit=abc")
		p := queryParams{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"limit" should be of type int`)
	})

	t.Run("enforces the limit cap", func(tt *testing.T) {
		c := newGetContext("/?limit=500")
		p := queryParams{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"limit" must be less than or equal to 100`)
	})
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}

func newGetContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.GET, target, nil)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
