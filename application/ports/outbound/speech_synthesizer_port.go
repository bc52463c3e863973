package outbound

import "context"

type SynthesizeSpeechParams struct {
	Speaker string
	Text    string
	OutPath string
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeSpeechParams) error
}
