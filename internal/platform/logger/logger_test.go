package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amityhq/amity-api/internal/config"
	"github.com/amityhq/amity-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"WARN", false},
		{"Error", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	// Without a logger in the context, the default is returned.
	assert.NotNil(t, logger.FromContext(context.Background()))
	assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))

	// With a logger in the context, that logger is returned.
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := logger.WithLogger(context.Background(), custom)
	assert.Equal(t, custom, logger.FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.New(slog.NewTextHandler(os.Stderr, nil))

	assert.Equal(t, def, logger.FromContextOrDefault(context.Background(), def))

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := logger.WithLogger(context.Background(), custom)
	assert.Equal(t, custom, logger.FromContextOrDefault(ctx, def))

	assert.Equal(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}
