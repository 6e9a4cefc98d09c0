package fixtures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/aware-eval/pkg/logger"
)

var indented = jsoniter.Config{ //nolint:gochecknoglobals // shared codec
	EscapeHTML:    true,
	IndentionStep: indentStep,
}.Froze()

// WriteRows writes rows to path as a JSON object in row order:
//
//	{"<profile>": {"acc": 1.5, "it": 2, ...}, ...}
func WriteRows(ctx context.Context, path string, rows []Row) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: create directory: %w", ErrWriteFixture, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%w: create file: %w", ErrWriteFixture, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close file: %w", ErrWriteFixture, cerr)
		}
	}()

	stream := jsoniter.NewStream(indented, file, streamBufferSize)
	stream.WriteObjectStart()
	for i, row := range rows {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(row.ProfileID)
		stream.WriteObjectStart()
		for j, sc := range row.Scores {
			if j > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(sc.Code)
			stream.WriteVal(sc.Value)
		}
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if err := stream.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFixture, err)
	}
	if stream.Error != nil {
		return fmt.Errorf("%w: %w", ErrWriteFixture, stream.Error)
	}

	logger.Get().Info(ctx, "fixture written", logger.String("path", path), logger.Int("profiles", len(rows)))
	return nil
}
