package adapters

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/config"
)

type ffmpegConcatenate struct {
	logger         outbound.LoggerPort
	pipelineConfig *config.PipelineConfig
}

func NewFFmpegConcatenate(pipelineConfig *config.PipelineConfig, logger outbound.LoggerPort) outbound.ConcatenateClipsPort {
	return &ffmpegConcatenate{
		logger:         logger,
		pipelineConfig: pipelineConfig,
	}
}

// Concatenate joins the clips hard-cut, in the order given, using the concat
// demuxer. Source clips are left in place; they are part of the job's
// artifact set.
func (f *ffmpegConcatenate) Concatenate(ctx context.Context, clipPaths []string, outPath string) error {
	listPath := outPath + ".list"
	fileList, err := os.Create(listPath)
	if err != nil {
		f.logger.Error(err, "Failed to create clip list file")
		return err
	}

	defer func() {
		if err := os.Remove(listPath); err != nil {
			f.logger.Error(err, "Failed to remove clip list file")
		}
	}()

	// The concat demuxer resolves entries relative to the list file, so the
	// clips are written as absolute paths.
	writer := bufio.NewWriter(fileList)
	for _, clip := range clipPaths {
		absClip, err := filepath.Abs(clip)
		if err != nil {
			_ = fileList.Close()
			return err
		}
		if _, err := writer.WriteString("file '" + absClip + "'\n"); err != nil {
			f.logger.Error(err, "Failed to write to clip list file")
			_ = fileList.Close()
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		f.logger.Error(err, "Failed to flush clip list file")
		_ = fileList.Close()
		return err
	}
	if err := fileList.Close(); err != nil {
		f.logger.Error(err, "Failed to close clip list file")
		return err
	}

	newCtx, cancel := context.WithTimeout(ctx, f.pipelineConfig.CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(newCtx, "ffmpeg", "-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		f.logger.ErrorWithFields(err, "Failed to concatenate clips", map[string]interface{}{
			"stderr": stderr.String(),
		})
		return fmt.Errorf("ffmpeg concat: %w", err)
	}

	return nil
}
