package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/config"
	"github.com/orion99879-crypto/orion99/domain"
)

const lipSyncAdapterName = "lip syncer"

type LipSyncApiRequest struct {
	ImageBase64 string `json:"image_base64"`
	AudioBase64 string `json:"audio_base64"`
}

type LipSyncApiResponse struct {
	VideoBase64 string `json:"video_base64"`
}

type lipSyncer struct {
	ContentFetcher
	logger        outbound.LoggerPort
	lipSyncConfig *config.LipSyncConfig
}

// NewLipSyncer builds the talking-head adapter over an external lip-sync
// service that accepts a base64 image and audio clip and returns a base64
// video. There is no local fallback; the executor skips the stage when the
// service is unconfigured.
func NewLipSyncer(contentFetcher ContentFetcher, lipSyncConfig *config.LipSyncConfig, logger outbound.LoggerPort) outbound.LipSyncerPort {
	return &lipSyncer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		lipSyncConfig:  lipSyncConfig,
	}
}

func (l *lipSyncer) LipSync(ctx context.Context, params outbound.LipSyncParams) error {
	req, err := l.getRequest(ctx, params)
	if err != nil {
		l.logger.Error(err, "Failed to construct the lip-sync request")
		return domain.NewAdapterUnavailable(lipSyncAdapterName, err)
	}

	rawRes, err := l.FetchContent(req)
	if err != nil {
		return domain.NewAdapterUnavailable(lipSyncAdapterName, err)
	}

	var res LipSyncApiResponse
	if err := json.Unmarshal(rawRes, &res); err != nil {
		return domain.NewAdapterOutputInvalid(lipSyncAdapterName, err)
	}
	if res.VideoBase64 == "" {
		return domain.NewAdapterOutputInvalid(lipSyncAdapterName, fmt.Errorf("response contains no video data"))
	}

	clip, err := base64.StdEncoding.DecodeString(res.VideoBase64)
	if err != nil {
		return domain.NewAdapterOutputInvalid(lipSyncAdapterName, err)
	}

	if err := os.WriteFile(params.OutPath, clip, 0644); err != nil {
		return fmt.Errorf("write lip-sync clip %s: %w", params.OutPath, err)
	}
	return nil
}

func (l *lipSyncer) getRequest(ctx context.Context, params outbound.LipSyncParams) (*http.Request, error) {
	image, err := os.ReadFile(params.ImagePath)
	if err != nil {
		return nil, err
	}
	audio, err := os.ReadFile(params.AudioPath)
	if err != nil {
		return nil, err
	}

	reqBody := LipSyncApiRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.lipSyncConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", "application/json")
	if l.lipSyncConfig.ApiKey != "" {
		req.Header.Add("Authorization", "Bearer "+l.lipSyncConfig.ApiKey)
	}

	return req, nil
}
