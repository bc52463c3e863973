package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image/color"
	"net/http"
	"os"

	"github.com/disintegration/imaging"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/config"
	"github.com/orion99879-crypto/orion99/domain"
)

const imageAdapterName = "image renderer"

type ImageApiRequest struct {
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Number         int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type ImageApiResponse struct {
	Data []struct {
		B64Json string `json:"b64_json"`
	} `json:"data"`
}

type imageRenderer struct {
	ContentFetcher
	logger      outbound.LoggerPort
	imageConfig *config.ImageConfig
}

// NewImageRenderer builds the scene image adapter. With a nil imageConfig
// the backend is unconfigured and every render uses the deterministic local
// placeholder instead; that fallback policy is invisible to the pipeline.
func NewImageRenderer(contentFetcher ContentFetcher, imageConfig *config.ImageConfig, logger outbound.LoggerPort) outbound.ImageRendererPort {
	return &imageRenderer{
		logger:         logger,
		ContentFetcher: contentFetcher,
		imageConfig:    imageConfig,
	}
}

func (i *imageRenderer) RenderImage(ctx context.Context, prompt string, outPath string) error {
	if i.imageConfig == nil {
		return i.renderLocal(prompt, outPath)
	}

	req, err := i.getRequest(ctx, prompt)
	if err != nil {
		i.logger.Error(err, "Failed to create the HTTP request")
		return domain.NewAdapterUnavailable(imageAdapterName, err)
	}

	rawRes, err := i.FetchContent(req)
	if err != nil {
		return domain.NewAdapterUnavailable(imageAdapterName, err)
	}

	var imageRes ImageApiResponse
	if err := json.Unmarshal(rawRes, &imageRes); err != nil {
		return domain.NewAdapterOutputInvalid(imageAdapterName, err)
	}
	if len(imageRes.Data) == 0 {
		return domain.NewAdapterOutputInvalid(imageAdapterName, fmt.Errorf("response contains no image data"))
	}

	decodedImage, err := base64.StdEncoding.DecodeString(imageRes.Data[0].B64Json)
	if err != nil {
		return domain.NewAdapterOutputInvalid(imageAdapterName, err)
	}

	if err := os.WriteFile(outPath, decodedImage, 0644); err != nil {
		return fmt.Errorf("write image %s: %w", outPath, err)
	}
	return nil
}

// renderLocal produces a solid-fill frame whose color is derived from the
// prompt, so the same prompt always renders the same placeholder.
func (i *imageRenderer) renderLocal(prompt string, outPath string) error {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(prompt))
	sum := hash.Sum32()

	fill := color.NRGBA{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 255,
	}

	img := imaging.New(1024, 1024, fill)
	if err := imaging.Save(img, outPath); err != nil {
		return fmt.Errorf("save placeholder image %s: %w", outPath, err)
	}
	return nil
}

func (i *imageRenderer) getRequest(ctx context.Context, prompt string) (*http.Request, error) {
	reqBody := ImageApiRequest{
		Prompt:         fmt.Sprintf("%s, %s", prompt, i.imageConfig.StyleSuffix),
		Size:           i.imageConfig.Size,
		Number:         1,
		ResponseFormat: "b64_json",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", i.imageConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+i.imageConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}
