package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolanti/rfqflow/internal/data/store"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
	"github.com/akolanti/rfqflow/internal/rfq/render"
	"github.com/akolanti/rfqflow/internal/rfq/textextract"
	"github.com/akolanti/rfqflow/internal/testutil"
)

func newTestServer(t *testing.T, provider *testutil.MockProvider, mailer delivery.Mailer) *Server {
	t.Helper()
	service := rfq.NewService(rfq.Dependencies{
		TextExtractor:  textextract.New(),
		FieldExtractor: fields.NewExtractor(provider, time.Second),
		Renderer:       render.New(),
		Mailer:         mailer,
		RunStore:       store.InitInMemoryRunStore(time.Hour),
	})
	server, err := NewServer(service)
	require.NoError(t, err)
	return server
}

func TestNewServer_RequiresService(t *testing.T) {
	server, err := NewServer(nil)
	require.Error(t, err)
	assert.Nil(t, server)
	assert.ErrorIs(t, err, ErrMissingService)
}

func TestServer_handleExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("returns extracted fields", func(t *testing.T) {
		provider := &testutil.MockProvider{
			OnComplete: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
				return `{"quantities": 50, "products": ["widgets"]}`, nil
			},
		}
		server := newTestServer(t, provider, delivery.NewLogMailer())

		input := ExtractInput{
			Filename:      "request.docx",
			ContentBase64: base64.StdEncoding.EncodeToString(testutil.DOCX("Need 50 widgets")),
		}
		_, output, err := server.handleExtract(ctx, nil, input)

		require.NoError(t, err)
		assert.NotEmpty(t, output.RunId)
		assert.Equal(t, json.Number("50"), output.Fields["quantities"])
		assert.Equal(t, []any{"widgets"}, output.Fields["products"])
		assert.Equal(t, 1, provider.Calls)
	})

	t.Run("keeps number literals", func(t *testing.T) {
		provider := &testutil.MockProvider{
			OnComplete: func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
				return `{"quantities": 12345678901234567890, "vendor_info": {"unit_price": 0.10}}`, nil
			},
		}
		server := newTestServer(t, provider, delivery.NewLogMailer())

		input := ExtractInput{
			Filename:      "request.docx",
			ContentBase64: base64.StdEncoding.EncodeToString(testutil.DOCX("Need 12345678901234567890 bolts")),
		}
		_, output, err := server.handleExtract(ctx, nil, input)
		require.NoError(t, err)

		encoded, err := json.Marshal(output.Fields)
		require.NoError(t, err)
		assert.JSONEq(t, `{"quantities": 12345678901234567890, "vendor_info": {"unit_price": 0.10}}`, string(encoded))
		assert.Contains(t, string(encoded), "12345678901234567890")
		assert.Contains(t, string(encoded), "0.10")
	})

	t.Run("rejects unsupported format", func(t *testing.T) {
		provider := &testutil.MockProvider{}
		server := newTestServer(t, provider, delivery.NewLogMailer())

		input := ExtractInput{Filename: "notes.txt", ContentBase64: base64.StdEncoding.EncodeToString([]byte("x"))}
		_, _, err := server.handleExtract(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, rfqModel.ErrUnsupportedFormat)
		assert.Equal(t, 0, provider.Calls)
	})

	t.Run("rejects bad base64", func(t *testing.T) {
		server := newTestServer(t, &testutil.MockProvider{}, delivery.NewLogMailer())

		_, _, err := server.handleExtract(ctx, nil, ExtractInput{Filename: "a.pdf", ContentBase64: "%%%"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "base64")
	})
}

func TestServer_handleRender(t *testing.T) {
	ctx := context.Background()

	t.Run("renders without sending", func(t *testing.T) {
		mailer := delivery.NewLogMailer()
		server := newTestServer(t, &testutil.MockProvider{}, mailer)

		input := RenderInput{Fields: map[string]any{"quantities": "10 units"}}
		_, output, err := server.handleRender(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "rfq_draft.txt", output.Filename)
		assert.Contains(t, output.Body, "Quantities: 10 units\n")
		assert.Contains(t, output.Body, "Timeline: N/A\n")
		assert.Empty(t, mailer.Sent())
	})

	t.Run("empty fields render all N/A", func(t *testing.T) {
		server := newTestServer(t, &testutil.MockProvider{}, delivery.NewLogMailer())

		_, output, err := server.handleRender(ctx, nil, RenderInput{})

		require.NoError(t, err)
		assert.Contains(t, output.Body, "Vendor Information: N/A\n")
	})

	t.Run("rejects boolean values", func(t *testing.T) {
		server := newTestServer(t, &testutil.MockProvider{}, delivery.NewLogMailer())

		_, _, err := server.handleRender(ctx, nil, RenderInput{Fields: map[string]any{"quantities": true}})

		require.Error(t, err)
		assert.ErrorIs(t, err, rfqModel.ErrRenderFailed)
	})
}
