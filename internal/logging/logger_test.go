package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("request_id", "abc").Logger()

	ctx := IntoContext(context.Background(), logger)
	FromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestFromContextWithoutLoggerIsNop(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New("trivia", "production", "debug").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("trivia", "development", "nonsense").GetLevel())
}
